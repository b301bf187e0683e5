package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/niksmo/marketplace/internal/core/domain"
	"github.com/niksmo/marketplace/internal/core/port"
	"github.com/niksmo/marketplace/pkg/retry"
)

var _ port.Mailer = (*Mailer)(nil)

var ErrNoRecipient = errors.New("no recipient address")

const shipmentBody = `Hi {{if .Customer.Name}}{{.Customer.Name}}{{else}}there{{end}},

your order {{.OrderID}} has shipped.
Tracking number: {{.TrackingNumber}}
{{range .Items}}
  {{.Quantity}} x {{.Name}} {{printf "%.2f" .UnitPrice}}
{{- end}}

Total: {{printf "%.2f" .Total}}
`

// A Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type MailerOpt func(*Mailer)

func SenderOpt(s Sender) MailerOpt {
	return func(m *Mailer) {
		m.sender = s
	}
}

type Mailer struct {
	body   *template.Template
	sender Sender
}

// New returns [Mailer] that logs messages unless [SenderOpt] is given.
func New(opts ...MailerOpt) Mailer {
	m := Mailer{
		body:   template.Must(template.New("shipment").Parse(shipmentBody)),
		sender: logSender{},
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Mailer) SendShipmentEmail(
	ctx context.Context, n domain.ShipmentNotice,
) error {
	const op = "Mailer.SendShipmentEmail"

	if n.Customer.Email == "" {
		return retry.Permanent(
			fmt.Errorf("%s: order %q: %w", op, n.OrderID, ErrNoRecipient),
		)
	}

	var body bytes.Buffer
	if err := m.body.Execute(&body, n); err != nil {
		return fmt.Errorf("%s: failed to render: %w", op, err)
	}

	subject := fmt.Sprintf("Your order %s has shipped", n.OrderID)
	if err := m.sender.Send(ctx, n.Customer.Email, subject, body.String()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

type logSender struct{}

func (logSender) Send(ctx context.Context, to, subject, body string) error {
	const op = "logSender.Send"
	slog.InfoContext(ctx, "email", "op", op, "to", to, "subject", subject, "body", body)
	return nil
}
