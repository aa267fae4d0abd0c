package auth

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/iamgjek/Shopee2Multi-sub000/config"

	"github.com/rs/zerolog"
)

var mailLog = zerolog.Nop()

// SetMailLogger injects the process logger; called from main.
func SetMailLogger(l zerolog.Logger) {
	mailLog = l.With().Str("component", "emailer").Logger()
}

const (
	mailMaxAttempts = 3
	mailBackoffStep = 2 * time.Second
)

// sendMail delivers one message, retrying up to three times with linearly
// increasing backoff. Each attempt blocks the caller. Exhausted retries are
// logged and swallowed: outbound mail never fails the originating request.
func sendMail(to string, subject string, body string) {
	if config.SMTP_HOST == "" {
		mailLog.Warn().Str("to", to).Str("subject", subject).Msg("SMTP not configured, dropping mail")
		return
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + config.SMTP_FROM + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	smtpAuth := smtp.PlainAuth("", config.SMTP_FROM, config.SMTP_PASSWORD, config.SMTP_HOST)
	addr := config.SMTP_HOST + ":" + config.SMTP_PORT

	var err error
	for attempt := 1; attempt <= mailMaxAttempts; attempt++ {
		err = smtp.SendMail(addr, smtpAuth, config.SMTP_FROM, []string{to}, message)
		if err == nil {
			return
		}
		mailLog.Warn().Err(err).Int("attempt", attempt).Str("to", to).Msg("mail send failed")
		if attempt < mailMaxAttempts {
			time.Sleep(time.Duration(attempt) * mailBackoffStep)
		}
	}
	mailLog.Error().Err(err).Str("to", to).Str("subject", subject).Msg("mail dropped after retries")
}

func SendVerificationEmail(to string, token string) {
	link := fmt.Sprintf("%s/verify?token=%s", config.APP_URL, token)
	body := fmt.Sprintf("Click the following link to verify your account:\n\n%s", link)
	sendMail(to, "Verify Your Account", body)
}

func SendPasswordResetEmail(to string, token string) {
	link := fmt.Sprintf("%s/reset-password?token=%s", config.APP_URL, token)
	body := fmt.Sprintf("Click the following link to reset your password:\n\n%s", link)
	sendMail(to, "Reset Your Password", body)
}

// SendContactReply mails an admin's reply to a contact-form submitter.
func SendContactReply(to string, subject string, body string) {
	sendMail(to, "Re: "+subject, body)
}
