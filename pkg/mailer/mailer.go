// Package mailer is the SMTP transport: it moves fully composed messages to
// the configured relay and never decides retry policy itself.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=pkgmocks github.com/mailroom/mailroom/pkg/mailer Mailer

// Mailer is the interface for delivering composed messages
type Mailer interface {
	// Send delivers a single message over one connection
	Send(ctx context.Context, msg *mail.Msg) error
	// SendBatch delivers several messages over a single connection.
	// Returns the per-message errors, index-aligned with the input.
	SendBatch(ctx context.Context, msgs []*mail.Msg) []error
	// TestConnection dials, optionally authenticates and quits without
	// sending mail. Used by health probes.
	TestConnection(ctx context.Context) error
}

// ConnectionMode selects transport security for the relay connection
type ConnectionMode string

const (
	ModeNone     ConnectionMode = "none"
	ModeStartTLS ConnectionMode = "starttls"
	ModeSSL      ConnectionMode = "ssl"
)

// Config holds the configuration for the mailer
type Config struct {
	Host     string
	Port     int
	Mode     ConnectionMode
	Username string
	Password string
	Timeout  time.Duration
}

// SMTPMailer implements the Mailer interface using go-mail
type SMTPMailer struct {
	config *Config
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{config: config}
}

// Send delivers a single message
func (m *SMTPMailer) Send(ctx context.Context, msg *mail.Msg) error {
	client, err := m.createClient()
	if err != nil {
		return err
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// SendBatch delivers messages over one connection, reconnecting is left to
// the next batch. Errors are index-aligned with the input.
func (m *SMTPMailer) SendBatch(ctx context.Context, msgs []*mail.Msg) []error {
	errs := make([]error, len(msgs))
	if len(msgs) == 0 {
		return errs
	}

	client, err := m.createClient()
	if err != nil {
		for i := range errs {
			errs[i] = err
		}
		return errs
	}

	if err := client.DialWithContext(ctx); err != nil {
		err = fmt.Errorf("failed to dial SMTP server: %w", err)
		for i := range errs {
			errs[i] = err
		}
		return errs
	}
	defer client.Close()

	for i, msg := range msgs {
		if err := client.Send(msg); err != nil {
			errs[i] = fmt.Errorf("failed to send message: %w", err)
		}
	}

	return errs
}

// TestConnection dials and quits; never sends mail
func (m *SMTPMailer) TestConnection(ctx context.Context) error {
	client, err := m.createClient()
	if err != nil {
		return err
	}

	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	return client.Close()
}

// createClient builds a go-mail client from the configured connection mode
func (m *SMTPMailer) createClient() (*mail.Client, error) {
	timeout := m.config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	clientOptions := []mail.Option{
		mail.WithPort(m.config.Port),
		mail.WithTimeout(timeout),
	}

	switch m.config.Mode {
	case ModeSSL:
		clientOptions = append(clientOptions, mail.WithSSL(), mail.WithTLSPolicy(mail.TLSMandatory))
	case ModeStartTLS:
		clientOptions = append(clientOptions, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		clientOptions = append(clientOptions, mail.WithTLSPolicy(mail.NoTLS))
	}

	// Only add authentication if username and password are provided.
	// This allows for unauthenticated SMTP servers (e.g., local relays, port 25).
	if m.config.Username != "" && m.config.Password != "" {
		clientOptions = append(clientOptions,
			mail.WithUsername(m.config.Username),
			mail.WithPassword(m.config.Password),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(m.config.Host, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return client, nil
}

// ConsoleMailer is a development implementation that just logs messages
type ConsoleMailer struct{}

// NewConsoleMailer creates a new console mailer for development
func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

// Send writes the rendered message to stdout
func (m *ConsoleMailer) Send(_ context.Context, msg *mail.Msg) error {
	fmt.Println("==============================================================")
	fmt.Println("                       OUTBOUND EMAIL                         ")
	fmt.Println("==============================================================")
	_, err := msg.WriteTo(consoleWriter{})
	fmt.Println("==============================================================")
	return err
}

// SendBatch writes every message to stdout
func (m *ConsoleMailer) SendBatch(ctx context.Context, msgs []*mail.Msg) []error {
	errs := make([]error, len(msgs))
	for i, msg := range msgs {
		errs[i] = m.Send(ctx, msg)
	}
	return errs
}

// TestConnection always succeeds for the console mailer
func (m *ConsoleMailer) TestConnection(context.Context) error {
	return nil
}

type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	return fmt.Print(string(p))
}
