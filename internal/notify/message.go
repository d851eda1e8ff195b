package notify

import "context"

type Kind string

const (
	KindPasswordReset Kind = "password_reset"
	KindEmailChange   Kind = "email_change"
)

type Message struct {
	Kind    Kind              `json:"kind"`
	To      string            `json:"to"`
	Subject string            `json:"subject"`
	Body    string            `json:"body"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// Sender delivers one message. Implementations may block; the Dispatcher
// keeps them off the request path.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
