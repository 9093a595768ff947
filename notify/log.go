package notify

import (
	"context"
	"log"
)

// LogNotifier writes notifications to the process log instead of sending
// mail. Used in development when no SMTP host is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, t Type, recipientEmail, _ string, data Data) error {
	log.Printf("📧 notification %s -> %s: %v", t, recipientEmail, data)
	return nil
}
