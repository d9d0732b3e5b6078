package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/domain/providers"
	"github.com/esenciapy/backend/internal/infrastructure/observability"
)

const (
	parserTemperature = 0.7
	parserMaxTokens   = 500

	// parsed intents are stable for a given query text, cache for a day
	parseCacheTTL    = 24 * time.Hour
	parseCachePrefix = "search_intent:"
)

// ParseResult holds the outcome of interpreting a search query. Degraded
// marks the deliberate fallback path: the model call failed or returned
// garbage, so the intent is all-absent and the search runs unfiltered. A
// degraded parse is a valid result, never an error.
type ParseResult struct {
	Intent      *entities.ParsedIntent `json:"intent"`
	Explanation string                 `json:"explanation"`
	Degraded    bool                   `json:"degraded,omitempty"`
}

// QueryParserService turns free-text perfume queries into structured,
// validated search intent via the language model
type QueryParserService struct {
	completer providers.CompletionProvider
	cache     providers.CacheProvider
}

// NewQueryParserService creates a new query parser service
func NewQueryParserService(completer providers.CompletionProvider) *QueryParserService {
	return &QueryParserService{completer: completer}
}

// SetCache sets the cache provider for parse results
func (s *QueryParserService) SetCache(cache providers.CacheProvider) {
	s.cache = cache
}

type parsePayload struct {
	entities.ParsedIntent
	Explanation string `json:"explanation"`
}

// Parse interprets a raw query string. It never returns an error: any model
// or decoding failure degrades to an all-absent intent so a parse hiccup
// widens the search instead of blocking it.
func (s *QueryParserService) Parse(ctx context.Context, query string) ParseResult {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return degradedResult()
	}

	cacheKey := parseCachePrefix + normalized
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached ParseResult
			if json.Unmarshal(data, &cached) == nil && cached.Intent != nil {
				return cached
			}
		}
	}

	raw, err := s.completer.Complete(ctx, query, providers.CompletionOptions{
		SystemPrompt: queryParserSystemPrompt,
		MaxTokens:    parserMaxTokens,
		Temperature:  parserTemperature,
	})
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("query", normalized).
			Msg("query parse degraded: completion failed")
		return degradedResult()
	}

	var payload parsePayload
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &payload); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("query", normalized).
			Msg("query parse degraded: unparseable model output")
		return degradedResult()
	}

	intent := payload.ParsedIntent
	intent.Sanitize()

	explanation := strings.TrimSpace(payload.Explanation)
	if explanation == "" {
		explanation = fallbackExplanation
	}

	result := ParseResult{
		Intent:      &intent,
		Explanation: explanation,
	}

	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, parseCacheTTL)
		}
	}

	return result
}

func degradedResult() ParseResult {
	return ParseResult{
		Intent:      &entities.ParsedIntent{},
		Explanation: fallbackExplanation,
		Degraded:    true,
	}
}

// stripCodeFences removes a Markdown code block wrapper if the model added
// one despite instructions
func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
