// Package push delivers notifications to user devices.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"go.uber.org/zap"
)

const (
	DefaultExpoEndpoint = "https://exp.host/--/api/v2/push/send"
	defaultSound        = "new-order.wav"
	maxErrorBody        = 4 << 10
)

var ErrNotifierNotStarted = errors.New("push notifier is not started")

type expoMessage struct {
	To    []string `json:"to"`
	Sound string   `json:"sound"`
	Title string   `json:"title"`
	Body  string   `json:"body"`
}

// ExpoConfig configures ExpoNotifier.
type ExpoConfig struct {
	Endpoint    string
	AccessToken string
	Timeout     time.Duration
}

// ExpoNotifier sends push messages through the Expo push service to every
// device token registered by the user. It must be started with Init and
// stopped with Shutdown.
type ExpoNotifier struct {
	cfg    ExpoConfig
	tokens ports.PushTokenRepository
	log    *zap.Logger

	mu     sync.RWMutex
	client *http.Client
}

func NewExpoNotifier(cfg ExpoConfig, tokens ports.PushTokenRepository, log *zap.Logger) *ExpoNotifier {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultExpoEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExpoNotifier{
		cfg:    cfg,
		tokens: tokens,
		log:    log.With(zap.String("component", "push")),
	}
}

// Init prepares the HTTP client. Calling it twice is a no-op.
func (n *ExpoNotifier) Init(context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.client == nil {
		n.client = &http.Client{Timeout: n.cfg.Timeout}
	}
	return nil
}

// Shutdown releases idle connections; later sends fail with ErrNotifierNotStarted.
func (n *ExpoNotifier) Shutdown(context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.client != nil {
		n.client.CloseIdleConnections()
		n.client = nil
	}
	return nil
}

// Send pushes title and body to the devices of userID. A user without devices
// is skipped silently.
func (n *ExpoNotifier) Send(ctx context.Context, userID kernel.UUID, title, body string) error {
	n.mu.RLock()
	client := n.client
	n.mu.RUnlock()
	if client == nil {
		return errs.NewTransportFailureError("push", userID.String(), ErrNotifierNotStarted)
	}

	tokens, err := n.tokens.ListTokens(ctx, userID)
	if err != nil {
		return errs.NewTransportFailureError("push", userID.String(), err)
	}
	if len(tokens) == 0 {
		n.log.Debug("no push token registered", zap.String("user_id", userID.String()))
		return nil
	}

	payload, err := json.Marshal(expoMessage{To: tokens, Sound: defaultSound, Title: title, Body: body})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if n.cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+n.cfg.AccessToken)
	}

	resp, err := client.Do(req)
	if err != nil {
		return errs.NewTransportFailureError("push", userID.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errs.NewTransportFailureError(
			"push",
			userID.String(),
			fmt.Errorf("expo responded %d: %s", resp.StatusCode, bytes.TrimSpace(msg)),
		)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// NoopNotifier drops every push. It is used when no push provider is
// configured; notification records are still written by the caller.
type NoopNotifier struct{}

func (NoopNotifier) Send(context.Context, kernel.UUID, string, string) error {
	return nil
}
