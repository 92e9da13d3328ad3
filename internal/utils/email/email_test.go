package email

import (
	"errors"
	"io"
	"net/smtp"
	"testing"
	"time"

	"github.com/Dan9191/networth-service/internal/config"
	"github.com/Dan9191/networth-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSender(send func(e *email.Email, addr string, auth smtp.Auth) error) *Sender {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewSender(&config.Config{SMTPHost: "mail.local", SMTPPort: "2525", SenderEmail: "bot@example.com"}, log)
	s.send = send
	return s
}

func TestSendNetWorthDigest(t *testing.T) {
	end := time.Date(2029, 12, 31, 0, 0, 0, 0, time.UTC)
	summary := models.ForecastSummary{
		CurrentAssets:      decimal.NewFromInt(15000),
		CurrentLiabilities: decimal.NewFromInt(5000),
		CurrentNetWorth:    decimal.NewFromInt(10000),
		ProjectedNetWorth:  decimal.NewFromInt(12500),
		Change:             decimal.NewFromInt(2500),
		PercentChange:      decimal.NewNullDecimal(decimal.NewFromInt(25)),
		ProjectionEnd:      &end,
	}

	var sent *email.Email
	var sentAddr string
	s := testSender(func(e *email.Email, addr string, auth smtp.Auth) error {
		sent, sentAddr = e, addr
		assert.Nil(t, auth)
		return nil
	})

	require.NoError(t, s.SendNetWorthDigest("ann@example.com", "ann", summary))
	require.NotNil(t, sent)
	assert.Equal(t, "mail.local:2525", sentAddr)
	assert.Equal(t, []string{"ann@example.com"}, sent.To)
	assert.Equal(t, digestSubject, sent.Subject)
	body := string(sent.Text)
	assert.Contains(t, body, "Dear ann,")
	assert.Contains(t, body, "Current net worth: 10000.00")
	assert.Contains(t, body, "Projected net worth on 2029-12-31: 12500.00")
	assert.Contains(t, body, "Change: 2500.00 (25.00%)")
}

func TestDigestBodyWithoutProjection(t *testing.T) {
	body := digestBody("bob", models.ForecastSummary{})
	assert.NotContains(t, body, "Projected")
}

func TestSendNetWorthDigestError(t *testing.T) {
	s := testSender(func(*email.Email, string, smtp.Auth) error { return errors.New("connection refused") })
	err := s.SendNetWorthDigest("ann@example.com", "ann", models.ForecastSummary{})
	assert.ErrorContains(t, err, "connection refused")
}
