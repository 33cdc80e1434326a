package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/athscan/athscan-backend/internal/httputil"
	"github.com/athscan/athscan-backend/internal/logger"
	"github.com/athscan/athscan-backend/internal/models"
)

// Sender posts one-line lookup summaries to a Slack or Discord webhook.
// Failures are logged and swallowed; a webhook must never break a lookup.
type Sender struct {
	webhookURL string
	botName    string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewSender(webhookURL, botName string) *Sender {
	if botName == "" {
		botName = "AthScan"
	}
	return &Sender{
		webhookURL: webhookURL,
		botName:    botName,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.ForComponent("notifications"),
	}
}

func (s *Sender) Enabled() bool {
	return s.webhookURL != ""
}

// NotifyLookup announces a completed lookup.
func (s *Sender) NotifyLookup(l *models.Lookup) {
	msg := fmt.Sprintf("%s (%s) ATH $%.8f on %s",
		l.Name, l.Symbol, l.ATHPriceUSD, l.ATHDate.UTC().Format("2006-01-02"))
	if l.ReturnPercent != nil && l.HistoricalDate != nil {
		msg += fmt.Sprintf(" — %.2f%% from %s",
			*l.ReturnPercent, l.HistoricalDate.UTC().Format("2006-01-02"))
	}
	s.Send(msg)
}

func (s *Sender) Send(msg string) {
	formatted := fmt.Sprintf("[%s] %s", s.botName, msg)

	if s.webhookURL == "" {
		return
	}

	body, err := json.Marshal(s.formatPayload(formatted))
	if err != nil {
		s.log.Error().Err(err).Msg("marshal webhook payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := httputil.Do(ctx, s.httpClient, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("webhook delivery failed")
		return
	}
	resp.Body.Close()
}

func (s *Sender) formatPayload(msg string) map[string]string {
	if strings.Contains(s.webhookURL, "discord") {
		return map[string]string{
			"content":  msg,
			"username": s.botName,
		}
	}
	return map[string]string{
		"text":     fmt.Sprintf("`%s`", msg),
		"username": s.botName,
	}
}
