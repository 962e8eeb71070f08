package common

// Collection names. Each one maps to <data_dir>/<name>.json.
const (
	UsersCollection    = "users"
	OrdersCollection   = "orders"
	MessagesCollection = "messages"
)

// RequestIDHeaderName is the HTTP header carrying the per-request id.
const RequestIDHeaderName = "X-Request-ID"

// TimestampLayout matches the millisecond UTC form produced by browsers'
// Date.toISOString, e.g. 2024-03-01T12:30:00.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
