// Package notify delivers text messages to phone numbers.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SMSSender delivers a text message to a phone number.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// LogSender writes messages to the log instead of delivering them. Used when no
// gateway is configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, phone, message string) error {
	s.logger.Info("SMS delivery skipped, no gateway configured",
		zap.String("phone", phone),
		zap.String("message", message),
	)
	return nil
}

// gatewayRequest is the JSON body posted to the gateway.
type gatewayRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

type gatewayResponse struct {
	MessageID string `json:"messageId"`
	Error     string `json:"error"`
}

// GatewaySender posts messages to an HTTP SMS gateway.
type GatewaySender struct {
	httpClient *resty.Client
	from       string
	logger     *zap.Logger
}

// NewGatewaySender creates a GatewaySender for the gateway at baseURL.
func NewGatewaySender(baseURL, apiKey, from string, logger *zap.Logger) *GatewaySender {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &GatewaySender{httpClient: client, from: from, logger: logger}
}

func (s *GatewaySender) Send(ctx context.Context, phone, message string) error {
	var result gatewayResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(gatewayRequest{From: s.from, To: phone, Text: message}).
		SetResult(&result).
		SetError(&result).
		Post("/messages")
	if err != nil {
		s.logger.Error("SMS gateway call failed", zap.Error(err))
		return fmt.Errorf("failed to call sms gateway: %w", err)
	}

	if resp.IsError() {
		s.logger.Error("SMS gateway returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("error", result.Error),
		)
		return fmt.Errorf("sms gateway error: %s (status: %d)", result.Error, resp.StatusCode())
	}

	s.logger.Info("SMS sent",
		zap.String("phone", phone),
		zap.String("message_id", result.MessageID),
	)
	return nil
}
