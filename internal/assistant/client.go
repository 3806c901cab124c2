// Package assistant talks to the hosted text-generation model behind the
// "Lobus IA" chat. Ask never returns an error: every failure is turned into
// one of the fixed fallback replies below.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/lobus/superapp-ledger/internal/metrics"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	ReplyMissingKey  = "⚠️ Sistema: No se detecta la API Key. Configura la variable 'API_KEY' con tu clave de Google AI Studio."
	ReplyUnavailable = "Sentinel-X: Conexión Interrumpida. Verifica tu cuota o conexión."
	ReplyEmpty       = "Sistemas procesando... sin salida."
)

const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-2.5-flash"
)

type Config struct {
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration
	Rate     rate.Limit // requests per second per session
	Burst    int
}

// Client calls the generateContent endpoint of the model API.
type Client struct {
	cfg  Config
	http *http.Client
	log  logrus.FieldLogger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewClient(cfg Config, log logrus.FieldLogger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Rate <= 0 {
		cfg.Rate = rate.Every(6 * time.Second)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 3
	}
	return &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout},
		log:      log,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Configured reports whether a usable API key is present
func (c *Client) Configured() bool {
	key := strings.TrimSpace(c.cfg.APIKey)
	return key != "" && !strings.Contains(key, "placeholder")
}

func (c *Client) limiter(key string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.limiters[key]
	if !ok {
		l = rate.NewLimiter(c.cfg.Rate, c.cfg.Burst)
		c.limiters[key] = l
	}
	return l
}

// Forget drops the quota bucket of a finished session
func (c *Client) Forget(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.limiters, key)
}

// Ask sends prompt with the caller's context line and returns the model text
// or a fallback reply. quotaKey selects the rate-limit bucket.
func (c *Client) Ask(ctx context.Context, quotaKey, prompt, userContext string) string {
	if !c.Configured() {
		metrics.RecordAssistantReply("missing_key")
		return ReplyMissingKey
	}
	if !c.limiter(quotaKey).Allow() {
		metrics.RecordAssistantReply("quota")
		c.log.WithField("session", quotaKey).Warn("assistant quota exhausted")
		return ReplyUnavailable
	}

	text, err := c.generate(ctx, framePrompt(prompt, userContext))
	if err != nil {
		metrics.RecordAssistantReply("error")
		c.log.WithError(err).Error("assistant request failed")
		return ReplyUnavailable
	}
	if strings.TrimSpace(text) == "" {
		metrics.RecordAssistantReply("empty")
		return ReplyEmpty
	}
	metrics.RecordAssistantReply("ok")
	return text
}

func framePrompt(prompt, userContext string) string {
	return fmt.Sprintf(`Contexto: Eres Lobus IA, la inteligencia soberana de la Unión Lobus.
Hablas con elegancia, autoridad y un ligero misticismo futurista. Siempre respondes en español.
Contexto del Usuario Actual: %s

Consulta del Usuario: %s`, userContext, prompt)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.cfg.Endpoint, "/"), url.PathEscape(c.cfg.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model API returned %d: %s", resp.StatusCode, gjson.GetBytes(raw, "error.message").String())
	}
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("model API returned invalid JSON")
	}

	var sb strings.Builder
	gjson.GetBytes(raw, "candidates.0.content.parts.#.text").ForEach(func(_, value gjson.Result) bool {
		sb.WriteString(value.String())
		return true
	})
	return sb.String(), nil
}
