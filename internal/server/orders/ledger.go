// Package orders assigns sequential ids to placed orders and keeps them.
package orders

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/foodstore/internal/common"
	"github.com/dmitrijs2005/foodstore/internal/logging"
	"github.com/dmitrijs2005/foodstore/internal/server/models"
	"github.com/dmitrijs2005/foodstore/internal/server/recordstore"
)

type Ledger struct {
	store  recordstore.Store[models.Order]
	logger logging.Logger
}

func NewLedger(store recordstore.Store[models.Order], logger logging.Logger) *Ledger {
	return &Ledger{store: store, logger: logger.With("module", "orders")}
}

// Place validates and stores an order and returns its id. The id is one
// more than the number of committed orders, computed inside the same append
// cycle that writes the order.
func (l *Ledger) Place(ctx context.Context, in models.OrderInput) (int, error) {
	if err := validate(in); err != nil {
		return 0, err
	}

	order, err := l.store.Append(ctx, func(current []models.Order) (models.Order, error) {
		return models.Order{ID: len(current) + 1, OrderInput: in}, nil
	})
	if err != nil {
		return 0, err
	}

	l.logger.Info(ctx, "order placed", "order_id", order.ID, "items", len(in.CartItems))
	return order.ID, nil
}

// List returns every committed order in id order.
func (l *Ledger) List(ctx context.Context) ([]models.Order, error) {
	return l.store.Load(ctx)
}

// ListByEmail returns the orders placed with the given contact email.
func (l *Ledger) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	all, err := l.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Order, 0)
	for _, o := range all {
		if o.Email == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func validate(in models.OrderInput) error {
	switch {
	case in.FirstName == "":
		return fmt.Errorf("%w: firstName is required", common.ErrorValidation)
	case in.Email == "":
		return fmt.Errorf("%w: email is required", common.ErrorValidation)
	case len(in.CartItems) == 0:
		return fmt.Errorf("%w: cart is empty", common.ErrorValidation)
	}
	return nil
}
