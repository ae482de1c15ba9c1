package notify

import (
	"fmt"

	"github.com/yavorskyi/shopcore/internal/observability"
)

// Sender delivers a status notification to an address. Fire-and-forget: no
// acknowledgment flows back to the order.
type Sender interface {
	Send(address, message string) error
}

// EmailObserver forwards order status changes to a Sender as email-style
// notifications. It implements order.StatusObserver.
type EmailObserver struct {
	sender Sender
}

func NewEmailObserver(sender Sender) *EmailObserver {
	return &EmailObserver{sender: sender}
}

func (e *EmailObserver) Update(status, email string) error {
	message := fmt.Sprintf("Your order status is now %q.", status)
	if err := e.sender.Send(email, message); err != nil {
		return fmt.Errorf("notify: send email: %w", err)
	}
	return nil
}

// LogSender records notifications on the structured log instead of talking
// to a mail gateway. It stands in for the real delivery side effect.
type LogSender struct {
	log observability.Logger
}

func NewLogSender(logger observability.Logger) *LogSender {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &LogSender{log: logger.With(observability.F("component", "email_sender"))}
}

func (s *LogSender) Send(address, message string) error {
	s.log.Info("email_sent",
		observability.F("to", address),
		observability.F("message", message),
	)
	return nil
}
