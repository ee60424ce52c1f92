package events

import (
	"context"
	"fmt"
	"strings"

	"rentacar-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// AdminNotifier emails the administrator when money leaves custody.
// Delivery failures are logged and swallowed; events are fire-and-forget.
type AdminNotifier struct {
	apiKey     string
	fromEmail  string
	adminEmail string
}

func NewAdminNotifier(apiKey, fromEmail, adminEmail string) *AdminNotifier {
	return &AdminNotifier{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		adminEmail: adminEmail,
	}
}

func (n *AdminNotifier) Publish(_ context.Context, event Event) {
	if len(event.Topics) == 0 {
		return
	}
	switch event.Topics[0] {
	case TopicPayoutOwner, TopicPayoutAdmin, TopicContractInitialized:
	default:
		return
	}

	subject := fmt.Sprintf("Rent-a-car: %s", event.Topics[0])
	body := fmt.Sprintf("Event %s\nTopics: %s\nPayload: %v\nAt: %s",
		event.ID, strings.Join(event.Topics, "/"), event.Payload, event.At)

	from := mail.NewEmail("Rent-a-car Ledger", n.fromEmail)
	to := mail.NewEmail("Administrator", n.adminEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.Error("admin notification failed", "event_id", event.ID, "error", err)
		return
	}
	if response.StatusCode >= 400 {
		logger.Error("admin notification rejected", "event_id", event.ID, "status", response.StatusCode)
	}
}
