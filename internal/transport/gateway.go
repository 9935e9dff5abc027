package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/groupwarden/groupwarden/internal/config"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/types"
	"github.com/hashicorp/go-retryablehttp"
	gocache "github.com/patrickmn/go-cache"
)

// GatewayClient talks to the chat-gateway sidecar over HTTP. Participant
// lookups are flaky on the platform side, so requests are retried with
// backoff and successful participant lists are cached briefly.
type GatewayClient struct {
	baseURL    string
	apiKey     string
	httpClient *retryablehttp.Client
	cache      *gocache.Cache
	log        *logger.Logger
}

type participant struct {
	ContactID   string `json:"contact_id"`
	PhoneNumber string `json:"phone_number"`
	IsAdmin     bool   `json:"is_admin"`
}

type participantsResponse struct {
	Participants []participant `json:"participants"`
}

type sendMessageRequest struct {
	TenantID string `json:"tenant_id"`
	Text     string `json:"text"`
}

// NewGatewayClient builds a ChatTransport backed by the configured gateway.
func NewGatewayClient(cfg config.ChatGatewayConfig, log *logger.Logger) ChatTransport {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	client.Logger = log.GetRetryableHTTPLogger()

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second

	return &GatewayClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: client,
		cache:      gocache.New(ttl, 2*ttl),
		log:        log,
	}
}

func (c *GatewayClient) IsRecognizedAdmin(ctx context.Context, tenantID, actorID string) (types.AdminStatus, error) {
	participants, err := c.listParticipants(ctx, tenantID)
	if err != nil {
		c.log.Warnw("participant lookup failed, admin status unknown",
			"tenant_id", tenantID, "actor_id", actorID, "error", err)
		return types.AdminStatusUnknown, nil
	}

	// An empty list is the transport's known failure mode for flaky group
	// metadata; it must surface as Unknown rather than "not admin".
	if len(participants) == 0 {
		return types.AdminStatusUnknown, nil
	}

	for _, p := range participants {
		if p.ContactID == actorID || types.SamePhoneNumber(p.PhoneNumber, actorID) {
			if p.IsAdmin {
				return types.AdminStatusAdmin, nil
			}
			return types.AdminStatusNotAdmin, nil
		}
	}
	return types.AdminStatusNotAdmin, nil
}

func (c *GatewayClient) SendMessage(ctx context.Context, tenantID, text string) error {
	payload, err := json.Marshal(sendMessageRequest{TenantID: tenantID, Text: text})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode outbound message").
			Mark(ierr.ErrInternal)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v1/messages", c.baseURL), bytes.NewReader(payload))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build gateway request").
			Mark(ierr.ErrInternal)
	}
	c.decorate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Chat gateway unreachable for tenant %s", tenantID).
			Mark(ierr.ErrSystem)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return ierr.NewErrorf("gateway send failed with status %d", resp.StatusCode).
			WithHintf("Chat gateway rejected the message for tenant %s", tenantID).
			WithReportableDetails(map[string]interface{}{
				"status": resp.StatusCode,
				"body":   string(body),
			}).
			Mark(ierr.ErrSystem)
	}
	return nil
}

func (c *GatewayClient) listParticipants(ctx context.Context, tenantID string) ([]participant, error) {
	cacheKey := "participants:" + tenantID
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.([]participant), nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/groups/%s/participants", c.baseURL, tenantID), nil)
	if err != nil {
		return nil, err
	}
	c.decorate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway participants returned status %d", resp.StatusCode)
	}

	var parsed participantsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	// Only cache non-empty lists; an empty list is a transient platform
	// glitch we want to retry on the next command.
	if len(parsed.Participants) > 0 {
		c.cache.SetDefault(cacheKey, parsed.Participants)
	}
	return parsed.Participants, nil
}

func (c *GatewayClient) decorate(req *retryablehttp.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
