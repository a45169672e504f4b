// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendGiftReceipt(toEmail, recipientName, shareURL, qrCodeURL string) error
	SendPaymentFailed(toEmail, recipientName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) SendGiftReceipt(toEmail, recipientName, shareURL, qrCodeURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your gift page is ready! 💝")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment confirmed!</h2>
			<p>Your gift page for <strong>%s</strong> is live. Share it with this link:</p>
			<p><a href="%s" style="background-color: #ff6b9d; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open gift page</a></p>
			<p>Or copy this link:</p>
			<p>%s</p>
			<p>You can also print the QR code below and tuck it into a card:</p>
			<p><img src="%s" alt="QR code" width="200" height="200" /></p>
		</div>
	`, recipientName, shareURL, shareURL, qrCodeURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send receipt to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Receipt sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendPaymentFailed(toEmail, recipientName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Payment didn't go through")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment not approved</h2>
			<p>The payment for your gift page for <strong>%s</strong> was not approved.</p>
			<p>Your gift is saved exactly as you left it. Go back to checkout and try another payment method; nothing needs to be re-entered.</p>
		</div>
	`, recipientName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send payment-failed notice to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}
