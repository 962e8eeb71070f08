package models

import (
	"encoding/json"
)

// CartItem is one line of an order, stored exactly as the storefront sent
// it. Product ids may be numbers or strings and items may carry any keys.
type CartItem = json.RawMessage

// Delivery holds the address block of an order.
type Delivery struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// OrderInput is what a customer submits when placing an order. Top-level
// keys the server does not know about are kept in Extra and written back
// next to the known ones.
type OrderInput struct {
	Delivery
	CartItems   []CartItem `json:"cartItems"`
	TotalAmount float64    `json:"totalAmount"`
	OrderDate   string     `json:"orderDate"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Order is a committed order. ID is assigned by the ledger.
type Order struct {
	ID int `json:"id"`
	OrderInput
}

// orderFields has the layout of OrderInput without its JSON methods.
type orderFields OrderInput

func (o *OrderInput) UnmarshalJSON(b []byte) error {
	var f orderFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	for k := range orderKeys {
		delete(all, k)
	}
	if len(all) > 0 {
		f.Extra = all
	}

	*o = OrderInput(f)
	return nil
}

func (o OrderInput) MarshalJSON() ([]byte, error) {
	return mergeExtra(orderFields(o), o.Extra)
}

func (o *Order) UnmarshalJSON(b []byte) error {
	var head struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}

	var in OrderInput
	if err := in.UnmarshalJSON(b); err != nil {
		return err
	}
	delete(in.Extra, "id")
	if len(in.Extra) == 0 {
		in.Extra = nil
	}

	*o = Order{ID: head.ID, OrderInput: in}
	return nil
}

// MarshalJSON writes the id first, then the order fields, then any extra
// keys. A caller-supplied "id" never overrides the assigned one.
func (o Order) MarshalJSON() ([]byte, error) {
	return mergeExtra(struct {
		ID int `json:"id"`
		orderFields
	}{o.ID, orderFields(o.OrderInput)}, o.Extra)
}

// mergeExtra encodes v and adds the extra keys v does not already have.
func mergeExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return b, err
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := m[k]; !ok {
			m[k] = raw
		}
	}
	return json.Marshal(m)
}

// orderKeys are the top-level keys OrderInput decodes itself. None of its
// fields is omitempty, so the zero value carries all of them.
var orderKeys = func() map[string]json.RawMessage {
	b, _ := json.Marshal(orderFields{})
	var m map[string]json.RawMessage
	_ = json.Unmarshal(b, &m)
	return m
}()
