// Package notifications delivers outbound webhook alerts. The only producer
// today is the coverage-gap alert: content admins get pinged when wizard users
// select hazards the strategy catalog cannot cover.
package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appCfg "atlasbcp/backend/pkg/config"
	bcplog "atlasbcp/backend/pkg/log"

	"go.uber.org/zap"
)

const maxWebhookRetries = 3

var webhookRetryDelay = 5 * time.Second

// httpClient is replaceable in tests.
var httpClient = &http.Client{Timeout: 10 * time.Second}

// CoverageGapAlert is the payload posted to the configured webhook when
// selected hazards have no matching strategies.
type CoverageGapAlert struct {
	Event       string   `json:"event"`
	Hazards     []string `json:"hazards"`
	CountryCode string   `json:"country_code"`
	Message     string   `json:"message"`
	OccurredAt  string   `json:"occurred_at"`
}

// SendWebhookNotification posts the payload as JSON to the webhook URL,
// retrying transient failures. Non-retryable 4xx responses abort early.
func SendWebhookNotification(webhookURL string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	var lastErr error
	for i := 0; i < maxWebhookRetries; i++ {
		req, err := http.NewRequest("POST", webhookURL, bytes.NewBuffer(jsonData))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")

		resp, err := httpClient.Do(req)
		if err != nil {
			bcplog.L.Error("Error sending webhook",
				zap.String("url", webhookURL),
				zap.Int("attempt", i+1),
				zap.Int("max_attempts", maxWebhookRetries),
				zap.Error(err))
			lastErr = fmt.Errorf("request failed: %w", err)
			time.Sleep(webhookRetryDelay)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			bcplog.L.Info("Webhook sent successfully",
				zap.String("url", webhookURL),
				zap.String("status", resp.Status))
			resp.Body.Close()
			return nil
		}

		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		bcplog.L.Warn("Webhook send failed",
			zap.String("url", webhookURL),
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxWebhookRetries),
			zap.String("status", resp.Status),
			zap.ByteString("response_body", bodyBytes))
		lastErr = fmt.Errorf("request failed with status %s", resp.Status)

		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		time.Sleep(webhookRetryDelay)
	}
	return fmt.Errorf("failed to send webhook to %s after %d retries: %w", webhookURL, maxWebhookRetries, lastErr)
}

// NotifyCoverageGaps alerts the configured webhook about hazards no strategy
// covers. A no-op when COVERAGE_WEBHOOK_URL is unset.
func NotifyCoverageGaps(hazards []string, countryCode string) {
	webhookURL := appCfg.Cfg.CoverageWebhookURL
	if webhookURL == "" || len(hazards) == 0 {
		return
	}

	alert := CoverageGapAlert{
		Event:       "coverage_gap",
		Hazards:     hazards,
		CountryCode: countryCode,
		Message:     fmt.Sprintf("No strategies cover: %s (country %s)", strings.Join(hazards, ", "), countryCode),
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	}

	if err := SendWebhookNotification(webhookURL, alert); err != nil {
		bcplog.L.Error("Failed to deliver coverage gap alert",
			zap.Strings("hazards", hazards),
			zap.Error(err))
	}
}
