package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

// SendOverdueReminder mails an organization's admin a digest of overdue
// periods, one line per period.
func (s *emailService) SendOverdueReminder(ctx context.Context, toEmail, orgName string, lines []string) error {
	subject := fmt.Sprintf("[%s] %d overdue rent period(s)", orgName, len(lines))
	plainText := "The following rent periods are overdue:\n\n" + strings.Join(lines, "\n")

	var b strings.Builder
	b.WriteString("<html><body><p>The following rent periods are overdue:</p><ul>")
	for _, line := range lines {
		b.WriteString("<li>" + line + "</li>")
	}
	b.WriteString("</ul></body></html>")

	return s.send(ctx, toEmail, subject, plainText, b.String())
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, toEmail, orgName, amount, periodLabel string) error {
	subject := fmt.Sprintf("[%s] Payment received", orgName)
	plainText := fmt.Sprintf("Payment of %s received for %s.", amount, periodLabel)
	htmlContent := fmt.Sprintf("<html><body><p>Payment of <b>%s</b> received for %s.</p></body></html>", amount, periodLabel)
	return s.send(ctx, toEmail, subject, plainText, htmlContent)
}

func (s *emailService) send(ctx context.Context, to, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
