package notification

import "context"

// Message is a plain-text notification for one recipient.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}

// Dispatcher delivers messages best-effort. Dispatch must not block on the
// transport and has no failure mode visible to the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message)
}
