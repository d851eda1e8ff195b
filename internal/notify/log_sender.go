package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogSender writes messages to the log instead of delivering them. Used
// whenever no broker is configured. Bodies carry single-use tokens, so they
// are only written when IncludeBody is set (development).
type LogSender struct {
	IncludeBody bool
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	entry := logrus.WithFields(logrus.Fields{
		"kind":    msg.Kind,
		"to":      msg.To,
		"subject": msg.Subject,
	})
	if s.IncludeBody {
		entry = entry.WithField("body", msg.Body)
	}
	entry.Info("notification not delivered, no broker configured")
	return nil
}
