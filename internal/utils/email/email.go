package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/networth-service/internal/config"
	"github.com/Dan9191/networth-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

const digestSubject = "Your Net Worth Forecast"

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendNetWorthDigest emails a summary of the user's current and projected net worth
func (s *Sender) SendNetWorthDigest(to, username string, summary models.ForecastSummary) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = digestSubject
	e.Text = []byte(digestBody(username, summary))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func digestBody(username string, summary models.ForecastSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", username)
	fmt.Fprintf(&b, "Current net worth: %s\n", summary.CurrentNetWorth.StringFixed(2))
	fmt.Fprintf(&b, "  Assets: %s\n", summary.CurrentAssets.StringFixed(2))
	fmt.Fprintf(&b, "  Liabilities: %s\n", summary.CurrentLiabilities.StringFixed(2))
	if summary.ProjectionEnd != nil {
		fmt.Fprintf(&b, "\nProjected net worth on %s: %s\n",
			summary.ProjectionEnd.Format("2006-01-02"), summary.ProjectedNetWorth.StringFixed(2))
		fmt.Fprintf(&b, "Change: %s", summary.Change.StringFixed(2))
		if summary.PercentChange.Valid {
			fmt.Fprintf(&b, " (%s%%)", summary.PercentChange.Decimal.StringFixed(2))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nBest regards,\nNet Worth Service")
	return b.String()
}
