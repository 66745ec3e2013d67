package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bassamadnan/triage/config"
	"github.com/bassamadnan/triage/fallback"
	"github.com/bassamadnan/triage/logger"
	"github.com/wneessen/go-mail"
)

const smtpTimeout = 30 * time.Second

// Transport is one way of reaching the mail relay.
type Transport struct {
	Name    string
	Port    int
	Options []mail.Option
}

// DefaultTransports tries implicit TLS on 465 before STARTTLS on 587.
var DefaultTransports = []Transport{
	{Name: "ssl", Port: 465, Options: []mail.Option{mail.WithSSL()}},
	{Name: "starttls", Port: 587, Options: []mail.Option{mail.WithTLSPolicy(mail.TLSMandatory)}},
}

type mailClient interface {
	DialWithContext(ctx context.Context) error
	DialAndSendWithContext(ctx context.Context, msgs ...*mail.Msg) error
	Close() error
}

type clientFactory func(cfg config.Email, t Transport) (mailClient, error)

func newGoMailClient(cfg config.Email, t Transport) (mailClient, error) {
	opts := []mail.Option{
		mail.WithPort(t.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		mail.WithTimeout(smtpTimeout),
	}
	opts = append(opts, t.Options...)
	c, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Email sends notifications through the mail relay. The first Send picks a working
// transport; when none works the channel stays disabled for the rest of the run.
type Email struct {
	cfg        config.Email
	transports []Transport
	newClient  clientFactory
	log        logger.Logger

	once   sync.Once
	client mailClient
	used   string
}

func NewEmail(cfg config.Email, log logger.Logger) *Email {
	return &Email{cfg: cfg, transports: DefaultTransports, newClient: newGoMailClient, log: log}
}

func (e *Email) Name() string { return "email" }

// Transport reports the transport in use, empty until connected.
func (e *Email) Transport() string { return e.used }

func (e *Email) connect(ctx context.Context) {
	if !e.cfg.Enabled() {
		e.log.Warn("Email is not configured (EMAIL_USER/EMAIL_PASS), continuing without sending emails")
		return
	}
	attempts := make([]fallback.Attempt[mailClient], 0, len(e.transports))
	for _, t := range e.transports {
		attempts = append(attempts, fallback.Attempt[mailClient]{
			Name: fmt.Sprintf("%s %d", t.Name, t.Port),
			Run: func(ctx context.Context) (mailClient, error) {
				c, err := e.dial(ctx, t)
				if err != nil {
					e.log.Warn("SMTP transport failed", "transport", t.Name, "port", t.Port, "err", err)
				}
				return c, err
			},
		})
	}
	c, idx, err := fallback.First(ctx, attempts...)
	if err != nil {
		e.log.Warn("Email login failed on every transport, continuing without sending emails", "err", err)
		return
	}
	e.client = c
	e.used = e.transports[idx].Name
	e.log.Info("SMTP connected", "host", e.cfg.Host, "transport", e.used)
}

func (e *Email) dial(ctx context.Context, t Transport) (mailClient, error) {
	c, err := e.newClient(e.cfg, t)
	if err != nil {
		return nil, err
	}
	if err := c.DialWithContext(ctx); err != nil {
		return nil, err
	}
	if err := c.Close(); err != nil {
		e.log.Debug("SMTP close after login check failed", "err", err)
	}
	return c, nil
}

func (e *Email) Send(ctx context.Context, msg Message) error {
	e.once.Do(func() { e.connect(ctx) })
	if e.client == nil {
		return fmt.Errorf("%w: SMTP unavailable", ErrSkipped)
	}

	m := mail.NewMsg()
	if err := m.From(e.cfg.User); err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if err := m.To(e.cfg.To); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if err := e.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	return nil
}
