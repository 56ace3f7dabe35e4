package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wneessen/go-mail"

	"mangareel/internal/config"
	"mangareel/internal/render"
	"mangareel/internal/services"
)

// Service delivers the finished video. Failures are reported to the caller
// but must never roll back the ledger commit.
type Service interface {
	// Send reports whether the video was actually emailed; the noop service
	// returns false so skipped delivery is not recorded as delivered.
	Send(ctx context.Context, result *render.Result, hashtags string) (bool, error)
	// SendTest sends a short message without an attachment so SMTP settings
	// can be verified.
	SendTest(ctx context.Context) (bool, error)
}

// NewService builds an email delivery service. When SMTP settings are
// incomplete a noop implementation is returned and delivery is skipped.
func NewService(cfg *config.Config, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	email := cfg.Email
	if email.Host == "" || email.To == "" || email.Username == "" || email.Password == "" {
		logger.Info("email delivery not configured, skipping")
		return noopService{}
	}
	return &smtpService{cfg: email, logger: logger.With("component", "delivery")}
}

// BuildBody formats the plain-text email body: title, hashtags, then one
// line per slide.
func BuildBody(title string, slides []render.SlideMeta, hashtags string) string {
	var body strings.Builder
	body.WriteString(title)
	body.WriteByte('\n')
	if hashtags != "" {
		body.WriteString(hashtags)
		body.WriteByte('\n')
	}
	body.WriteByte('\n')
	for _, slide := range slides {
		fmt.Fprintf(&body, "%s: %s\n", slide.Title, slide.Description)
	}
	return body.String()
}

type smtpService struct {
	cfg    config.Email
	logger *slog.Logger
}

func (s *smtpService) Send(ctx context.Context, result *render.Result, hashtags string) (bool, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return false, services.Wrap(services.ErrDelivery, "delivery", "compose", "from address", err)
	}
	if err := msg.To(s.cfg.To); err != nil {
		return false, services.Wrap(services.ErrDelivery, "delivery", "compose", "to address", err)
	}
	msg.Subject(result.Title)
	msg.SetBodyString(mail.TypeTextPlain, BuildBody(result.Title, result.Slides, hashtags))
	msg.AttachFile(result.VideoPath)

	client, err := s.client()
	if err != nil {
		return false, err
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return false, services.Wrap(services.ErrDelivery, "delivery", "send", s.cfg.To, err)
	}
	s.logger.Info("video emailed", "to", s.cfg.To, "video", result.VideoPath)
	return true, nil
}

func (s *smtpService) SendTest(ctx context.Context) (bool, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return false, services.Wrap(services.ErrDelivery, "delivery", "compose", "from address", err)
	}
	if err := msg.To(s.cfg.To); err != nil {
		return false, services.Wrap(services.ErrDelivery, "delivery", "compose", "to address", err)
	}
	msg.Subject("mangareel test email")
	msg.SetBodyString(mail.TypeTextPlain, "SMTP settings are working.")

	client, err := s.client()
	if err != nil {
		return false, err
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return false, services.Wrap(services.ErrDelivery, "delivery", "send", s.cfg.To, err)
	}
	return true, nil
}

func (s *smtpService) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	}
	if s.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}
	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return nil, services.Wrap(services.ErrDelivery, "delivery", "connect", s.cfg.Host, err)
	}
	return client, nil
}

type noopService struct{}

func (noopService) Send(context.Context, *render.Result, string) (bool, error) { return false, nil }

func (noopService) SendTest(context.Context) (bool, error) { return false, nil }
