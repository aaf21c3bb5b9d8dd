// Package genai is the AI counsellor: it renders a student's situation
// into a prompt and asks a Gemini model for advice, walking a chain of
// fallback models when one is missing or out of quota.
package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	googlegenai "google.golang.org/genai"

	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/common/metrics"
)

// RateLimitMessage is returned to the student in place of a reply when
// every model is out of quota.
const RateLimitMessage = "The AI Counsellor has reached its rate limit. Please try again in about a minute."

var DefaultFallbackModels = []string{"gemini-2.0-flash", "gemini-2.5-flash", "gemini-1.5-flash"}

// ErrRateLimited means the last model tried rejected the call for quota.
var ErrRateLimited = errors.New("counsellor rate limited")

type Config struct {
	Model             string
	FallbackModels    []string
	RequestsPerMinute int
}

type Counsellor struct {
	gen     ContentGenerator
	models  []string
	limiter *rate.Limiter
	logger  logger.Logger
}

func NewCounsellor(cfg Config, gen ContentGenerator, log logger.Logger) *Counsellor {
	fallbacks := cfg.FallbackModels
	if len(fallbacks) == 0 {
		fallbacks = DefaultFallbackModels
	}

	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
		burst = cfg.RequestsPerMinute
	}

	return &Counsellor{
		gen:     gen,
		models:  modelChain(cfg.Model, fallbacks),
		limiter: rate.NewLimiter(limit, burst),
		logger:  log,
	}
}

// modelChain puts primary first and drops repeats.
func modelChain(primary string, fallbacks []string) []string {
	seen := make(map[string]bool, len(fallbacks)+1)
	chain := make([]string, 0, len(fallbacks)+1)
	for _, m := range append([]string{primary}, fallbacks...) {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		chain = append(chain, m)
	}
	return chain
}

func (c *Counsellor) Models() []string {
	return append([]string(nil), c.models...)
}

// Generate tries each model in turn. A missing model or an exhausted
// quota moves on to the next one; any other failure is returned at once.
// If the final failure was a quota error the result wraps ErrRateLimited.
func (c *Counsellor) Generate(ctx context.Context, prompt string) (string, error) {
	requestID := uuid.NewString()
	log := c.logger.WithFields(map[string]interface{}{"requestId": requestID})

	if err := c.limiter.Wait(ctx); err != nil {
		return "", apperrors.NewLLMTimeoutError()
	}

	var lastErr error
	for i, model := range c.models {
		if i > 0 {
			metrics.CounsellorModelFallbacks.WithLabelValues(c.models[i-1]).Inc()
		}

		text, err := c.gen.GenerateContent(ctx, model, prompt)
		if err == nil {
			log.Debug("counsellor reply generated", map[string]interface{}{
				"model":   model,
				"attempt": i + 1,
			})
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", apperrors.NewLLMTimeoutError()
		}
		if isModelUnavailable(err) || isQuotaExceeded(err) {
			log.Warn("model unavailable, trying next", map[string]interface{}{
				"model": model,
				"error": err.Error(),
			})
			continue
		}
		return "", classify(err)
	}

	if lastErr == nil {
		return "", apperrors.NewLLMGenerationFailedError(errors.New("no models configured"))
	}
	if isQuotaExceeded(lastErr) {
		return "", fmt.Errorf("%w: %v", ErrRateLimited, lastErr)
	}
	return "", classify(lastErr)
}

// Reply runs Generate and turns a rate limit into RateLimitMessage, which
// is what the student sees instead of an error.
func (c *Counsellor) Reply(ctx context.Context, prompt string) (string, bool, error) {
	text, err := c.Generate(ctx, prompt)
	if errors.Is(err, ErrRateLimited) {
		return RateLimitMessage, true, nil
	}
	return text, false, err
}

func classify(err error) error {
	var apiErr googlegenai.APIError
	if errors.As(err, &apiErr) && apiErr.Code >= 400 && apiErr.Code < 500 {
		se := apperrors.NewLLMGenerationFailedError(err)
		se.Retryable = false
		return se
	}
	return apperrors.NewLLMGenerationFailedError(err)
}

func isModelUnavailable(err error) bool {
	var apiErr googlegenai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "404") || strings.Contains(msg, "not found")
}

func isQuotaExceeded(err error) bool {
	var apiErr googlegenai.APIError
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED") {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "resource_exhausted")
}
