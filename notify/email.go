package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"sort"
	"strings"
)

var subjects = map[Type]string{
	TypeOrderCreated:    "We received your quote request",
	TypeOrderConfirmed:  "Your quote request was confirmed",
	TypeOrderProcessing: "Your order is being prepared",
	TypeOrderShipped:    "Your order is on its way",
	TypeOrderDelivered:  "Your order was delivered",
	TypeOrderCancelled:  "Your order was cancelled",
}

// EmailNotifier sends plain-text mail over SMTP.
type EmailNotifier struct {
	addr string // host:port
	from string
	auth smtp.Auth
}

func NewEmailNotifier(host, port, username, password, from string) *EmailNotifier {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &EmailNotifier{
		addr: host + ":" + port,
		from: from,
		auth: auth,
	}
}

func (n *EmailNotifier) Notify(_ context.Context, t Type, recipientEmail, recipientName string, data Data) error {
	subject, ok := subjects[t]
	if !ok {
		subject = "Order update"
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hello %s,\r\n\r\n%s.\r\n\r\n", recipientName, subject)

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&body, "%s: %v\r\n", k, data[k])
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		n.from, recipientEmail, subject, body.String())

	if err := smtp.SendMail(n.addr, n.auth, n.from, []string{recipientEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail failed: %w", err)
	}
	return nil
}
