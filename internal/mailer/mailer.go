package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/binhtv97/wasted-item/internal/config"
	"github.com/binhtv97/wasted-item/internal/domain"
)

// Mailer delivers report artifacts over SMTP. Transport configuration comes
// from the environment and is validated on every send, not at construction:
// a missing credential fails that delivery attempt only.
type Mailer struct {
	cfg config.Config
	log *zap.Logger
	now func() time.Time
}

func New(cfg config.Config, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log, now: time.Now}
}

// Send mails the CSV artifact as a text/csv attachment and returns the
// Message-ID on success.
func (m *Mailer) Send(ctx context.Context, to string, kind domain.PeriodKind, artifact domain.ReportArtifact) (string, error) {
	if err := m.validate(); err != nil {
		return "", err
	}

	client, err := mail.NewClient(m.cfg.SMTPHost,
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.SMTPUser),
		mail.WithPassword(m.cfg.SMTPPass),
	)
	if err != nil {
		return "", fmt.Errorf("smtp client: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.SMTPFrom); err != nil {
		return "", fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return "", fmt.Errorf("to address: %w", err)
	}

	y, mo, d := m.now().Date()
	msg.Subject(fmt.Sprintf("Food Wastage %s Report (%04d-%02d-%02d)", kind, y, mo, d))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Please find attached the %s report.", kind))
	msg.SetMessageID()

	if err := msg.AttachReader(artifact.Filename, strings.NewReader(artifact.Content),
		mail.WithFileContentType(mail.ContentType("text/csv")),
	); err != nil {
		return "", fmt.Errorf("attach %s: %w", artifact.Filename, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", fmt.Errorf("send to %s: %w", to, err)
	}

	var id string
	if ids := msg.GetGenHeader(mail.HeaderMessageID); len(ids) > 0 {
		id = ids[0]
	}
	m.log.Info("report mailed",
		zap.String("to", to),
		zap.String("filename", artifact.Filename),
		zap.String("messageID", id),
	)
	return id, nil
}

// validate checks the SMTP environment eagerly; missing configuration is a
// hard failure for the delivery attempt.
func (m *Mailer) validate() error {
	required := []struct {
		name string
		ok   bool
	}{
		{"SMTP_HOST", m.cfg.SMTPHost != ""},
		{"SMTP_PORT", m.cfg.SMTPPort != 0},
		{"SMTP_USER", m.cfg.SMTPUser != ""},
		{"SMTP_PASS", m.cfg.SMTPPass != ""},
		{"SMTP_FROM", m.cfg.SMTPFrom != ""},
	}
	for _, r := range required {
		if !r.ok {
			return fmt.Errorf("missing env: %s", r.name)
		}
	}
	return nil
}
