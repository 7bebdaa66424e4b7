package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"propscout/server/internal/analysis"
	"propscout/server/internal/models"
)

const telegramAPIBase = "https://api.telegram.org"

// Service sends Telegram alerts for buy-grade recommendations. It is
// disabled (a no-op) when no bot token is configured.
type Service struct {
	logger   *logrus.Logger
	client   *http.Client
	apiBase  string
	botToken string
	chatID   string
}

// NewService creates a notifier. Empty botToken or chatID disables sending.
func NewService(botToken, chatID string, logger *logrus.Logger) *Service {
	return &Service{
		logger:   logger,
		apiBase:  telegramAPIBase,
		botToken: botToken,
		chatID:   chatID,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether the service is configured to send alerts.
func (s *Service) Enabled() bool {
	return s.botToken != "" && s.chatID != ""
}

// NotifyBuyRecommendations sends one alert per Buy or Strong Buy result.
func (s *Service) NotifyBuyRecommendations(results []*analysis.Result) {
	if !s.Enabled() {
		return
	}

	for _, result := range results {
		rec := result.Decision.Recommendation
		if rec != models.StrongBuy && rec != models.Buy {
			continue
		}
		if err := s.sendMessage(formatAlert(result)); err != nil {
			s.logger.WithError(err).WithField("property_id", result.Property.ID).
				Error("Failed to send recommendation alert")
		}
	}
}

// formatAlert renders a recommendation as a Telegram message.
func formatAlert(result *analysis.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", result.Decision.Recommendation, result.Property.ID)
	fmt.Fprintf(&b, "%s, %s, %s\n", result.Property.Address, result.Property.City, result.Property.State)
	fmt.Fprintf(&b, "Grade %s | Score %.1f | %s risk\n",
		result.Decision.InvestmentGrade, result.Decision.OverallScore, result.Decision.RiskLevel)
	fmt.Fprintf(&b, "Cap rate %.2f%% | Cash flow $%d/month\n",
		result.Financial.CapRate, result.Financial.MonthlyCashFlow)
	b.WriteString(result.Decision.Rationale)
	return b.String()
}

func (s *Service) sendMessage(text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": s.chatID,
		"text":    text,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)
	resp, err := s.client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
