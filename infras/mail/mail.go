package mail

//go:generate go run go.uber.org/mock/mockgen -source=./mail.go -destination=./mocks/mail_mock.go -package=mocks

import (
	"context"
	"crypto/tls"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Message is a single outgoing e-mail with a plain text and an HTML alternative.
type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

type Mailer interface {
	Send(ctx context.Context, message Message) error
}

type mailerImpl struct {
	config *config.Config
	dialer *gomail.Dialer
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) Mailer {
	dialer := gomail.NewDialer(config.Mail.Host, config.Mail.Port, config.Mail.Username, config.Mail.Password)
	dialer.TLSConfig = &tls.Config{
		ServerName: config.Mail.Host,
		MinVersion: tls.VersionTLS12,
	}

	log.Info().Str("host", config.Mail.Host).Int("port", config.Mail.Port).Msg("Mailer initialized")

	return &mailerImpl{
		config: config,
		dialer: dialer,
		otel:   otel,
	}
}

func (m *mailerImpl) Send(ctx context.Context, message Message) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.Finish(&err)

	scope.SetAttribute("mail.subject", message.Subject)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.Mail.From)
	msg.SetHeader("To", message.To)
	msg.SetHeader("Subject", message.Subject)
	msg.SetBody("text/plain", message.TextBody)

	if message.HTMLBody != "" {
		msg.AddAlternative("text/html", message.HTMLBody)
	}

	if err = m.dialer.DialAndSend(msg); err != nil {
		log.Error().Err(err).Str("subject", message.Subject).Msg("Failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("subject", message.Subject).Msg("Email sent successfully")

	return nil
}
