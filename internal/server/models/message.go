package models

// ContactMessage is a message left through the contact form. Date is set by
// the server.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Date    string `json:"date"`
}
