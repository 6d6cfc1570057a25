package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendOTP(toEmail, otp string) error
	SendResetToken(toEmail, token string) error
	SendItinerary(toEmail, tripTitle string, lines []string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string
}

func NewEmailService(host string, port int, username, password, senderEmail, frontendURL string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func (s *emailService) SendOTP(toEmail, otp string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to WineTour!</h2>
			<p>Your verification code is:</p>
			<h1 style="color: #7B1E3B; letter-spacing: 5px;">%s</h1>
			<p>This code will expire in 15 minutes.</p>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`, otp)
	return s.send(toEmail, "Your Verification Code", body)
}

func (s *emailService) SendResetToken(toEmail, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Password Reset Request</h2>
			<p>You requested to reset your password. Click the button below to proceed:</p>
			<a href="%s" style="background-color: #7B1E3B; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Reset Password</a>
			<p>Or copy this link:</p>
			<p>%s</p>
			<p>This link will expire in 1 hour.</p>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`, resetLink, resetLink)
	return s.send(toEmail, "Reset Your Password", body)
}

// SendItinerary mails the stop-by-stop summary of a trip the user just
// confirmed. Lines arrive already ordered and formatted by the caller.
func (s *emailService) SendItinerary(toEmail, tripTitle string, lines []string) error {
	var items strings.Builder
	for _, line := range lines {
		items.WriteString("<li style=\"margin-bottom: 6px;\">")
		items.WriteString(line)
		items.WriteString("</li>")
	}
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your trip is confirmed!</h2>
			<p>Here is the itinerary for <strong>%s</strong>:</p>
			<ol>%s</ol>
			<p>Have a great tour.</p>
		</div>
	`, tripTitle, items.String())
	return s.send(toEmail, fmt.Sprintf("Trip Confirmed: %s", tripTitle), body)
}
