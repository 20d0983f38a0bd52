package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Message is the structured transactional send request.
type Message struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	FromName  string `json:"from_name,omitempty"`
	FromEmail string `json:"from_email,omitempty"`
	Body      string `json:"message"`
}

// Mailer delivers transactional mail. Delivery is a boundary concern: callers
// treat failures as non-fatal.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Options struct {
	Endpoint  string
	AccessKey string
	Timeout   time.Duration
}

// HTTPMailer posts messages to a form-relay endpoint.
type HTTPMailer struct {
	client    *http.Client
	endpoint  string
	accessKey string
	logger    *zap.Logger
}

func New(opts Options, logger *zap.Logger) *HTTPMailer {
	return &HTTPMailer{
		client:    &http.Client{Timeout: opts.Timeout},
		endpoint:  opts.Endpoint,
		accessKey: opts.AccessKey,
		logger:    logger,
	}
}

type sendPayload struct {
	AccessKey string `json:"access_key"`
	Message
}

type sendResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (m *HTTPMailer) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(sendPayload{AccessKey: m.accessKey, Message: msg})
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			m.logger.Warn("failed to close mail response body", zap.Error(cerr))
		}
	}()

	var result sendResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode mail response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !result.Success {
		return fmt.Errorf("mail relay rejected message: status %d: %s", resp.StatusCode, result.Message)
	}

	m.logger.Debug("mail sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
