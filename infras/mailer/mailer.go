package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/pkg/errors"

	"mehfil/config"
	"mehfil/infras/otel"
	"mehfil/shared/constant"
)

const (
	otelAttrRecipient = "recipient"
	otelAttrSubject   = "subject"
)

// Mailer delivers transactional mail over SMTP. Delivery is a single
// attempt, callers decide whether a failure is fatal.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type mailerImpl struct {
	config *config.Config
	otel   otel.Otel
}

// New fails when the SMTP credential pair is absent so a misconfigured
// deployment dies at boot instead of silently dropping mail.
func New(cfg *config.Config, otl otel.Otel) (Mailer, error) {
	smtpCfg := cfg.SMTP
	if smtpCfg.Host == constant.Empty || smtpCfg.Username == constant.Empty || smtpCfg.Password == constant.Empty {
		return nil, errors.New("SMTP host, username and password are required")
	}

	return &mailerImpl{
		config: cfg,
		otel:   otl,
	}, nil
}

func (m *mailerImpl) Send(ctx context.Context, to, subject, body string) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrRecipient: to,
		otelAttrSubject:   subject,
	})

	smtpCfg := m.config.SMTP

	fromEmail := smtpCfg.FromEmail
	if fromEmail == constant.Empty {
		fromEmail = smtpCfg.Username
	}

	addr := fmt.Sprintf("%s:%s", smtpCfg.Host, smtpCfg.Port)

	done := make(chan error, 1)

	go func() {
		done <- m.deliver(addr, fromEmail, to, subject, body)
	}()

	timeout := time.Duration(smtpCfg.TimeoutSeconds) * time.Second

	select {
	case err = <-done:
		if err != nil {
			return fmt.Errorf("failed to send mail: %w", err)
		}

		return nil
	case <-time.After(timeout):
		return fmt.Errorf("sending mail to %s timed out after %s", to, timeout)
	case <-ctx.Done():
		return fmt.Errorf("sending mail interrupted: %w", ctx.Err())
	}
}

// deliver carries its own dial and IO deadlines so a stalled server cannot
// pin the goroutine after Send has already reported the timeout.
func (m *mailerImpl) deliver(addr, fromEmail, to, subject, body string) error {
	smtpCfg := m.config.SMTP
	timeout := time.Duration(smtpCfg.TimeoutSeconds) * time.Second

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	if err = conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		conn.Close()

		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, smtpCfg.Host)
	if err != nil {
		conn.Close()

		return fmt.Errorf("failed to open SMTP session: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: smtpCfg.Host,
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err = client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	auth := smtp.PlainAuth(constant.Empty, smtpCfg.Username, smtpCfg.Password, smtpCfg.Host)
	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err = client.Mail(fromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	msg := buildMessage(smtpCfg.FromName, fromEmail, to, subject, body)

	if _, err = writer.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

func buildMessage(fromName, fromEmail, to, subject, body string) string {
	var b strings.Builder

	if fromName != constant.Empty {
		b.WriteString(fmt.Sprintf("From: %s <%s>\r\n", fromName, fromEmail))
	} else {
		b.WriteString(fmt.Sprintf("From: %s\r\n", fromEmail))
	}

	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")

	return b.String()
}
