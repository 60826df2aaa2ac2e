// internal/pkg/email/service.go
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/biloop252/suuqsade-backend/internal/config"
)

// Service sends transactional emails over SMTP
type Service struct {
	config   *config.Config
	template *template.Template
}

// NewService creates a new email service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config:   cfg,
		template: template.Must(template.New("order_confirmation").Parse(orderConfirmationTemplate)),
	}
}

// OrderConfirmation carries the data rendered into the confirmation email
type OrderConfirmation struct {
	OrderNumber  string
	CustomerName string
	TotalAmount  int64 // cents
	Currency     string
	PlacedAt     time.Time
}

// TotalFormatted returns the order total as a decimal amount
func (o *OrderConfirmation) TotalFormatted() string {
	return fmt.Sprintf("%.2f %s", float64(o.TotalAmount)/100, o.Currency)
}

// SendOrderConfirmation sends an order confirmation email to the customer
func (s *Service) SendOrderConfirmation(to string, data *OrderConfirmation) error {
	if s.config.Email.SMTPHost == "" {
		return fmt.Errorf("SMTP is not configured")
	}

	var body bytes.Buffer
	if err := s.template.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	subject := fmt.Sprintf("Order Confirmation - %s", data.OrderNumber)
	msg := s.buildMessage(to, subject, body.String())

	addr := fmt.Sprintf("%s:%d", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	var auth smtp.Auth
	if s.config.Email.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.config.Email.SMTPUser, s.config.Email.SMTPPass, s.config.Email.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *Service) buildMessage(to, subject, htmlBody string) []byte {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.config.Email.FromName, s.config.Email.FromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	return msg.Bytes()
}

const orderConfirmationTemplate = `
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Thank you for your order, {{.CustomerName}}!</h2>
    <p>Your order <strong>{{.OrderNumber}}</strong> was placed on {{.PlacedAt.Format "January 2, 2006"}}.</p>
    <p>Order total: <strong>{{.TotalFormatted}}</strong></p>
    <p>We will let you know as soon as your items ship.</p>
</body>
</html>
`
