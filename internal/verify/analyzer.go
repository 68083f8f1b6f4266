package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
)

// Analyzer inspects game data text and decides which catalog events in a
// period occurred. Implementations are external collaborators (an LLM or a
// human-curated feed); the service only relies on this contract.
type Analyzer interface {
	VerifyPeriod(ctx context.Context, period catalog.Period, events []catalog.Event, gameData string) (Result, error)
}

const (
	defaultAnalyzerTimeout = 30 * time.Second
	analyzerTemperature    = 0.1
	analyzerMaxTokens      = 2000
)

// OpenAIAnalyzer implements Analyzer against an OpenAI-compatible chat
// completions endpoint.
type OpenAIAnalyzer struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// NewOpenAIAnalyzer creates an analyzer. An empty baseURL defaults to the
// OpenAI API.
func NewOpenAIAnalyzer(apiKey, baseURL, model string) *OpenAIAnalyzer {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &OpenAIAnalyzer{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: defaultAnalyzerTimeout},
	}
}

const analyzerSystemPrompt = `You verify whether specific game events occurred, based only on the provided game data.
Respond with a JSON object: {"events": [{"eventId": string, "occurred": bool, "confidence": "high"|"medium"|"low", "reasoning": string}], "summary": string}.
Mark an event occurred only when the data clearly supports it. When the data is silent or ambiguous, use confidence "low".`

// VerifyPeriod implements Analyzer.
func (a *OpenAIAnalyzer) VerifyPeriod(ctx context.Context, period catalog.Period, events []catalog.Event, gameData string) (Result, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Period under review: %s\n\nEvents to verify:\n", period)
	for _, e := range events {
		fmt.Fprintf(&sb, "- %s: %s\n", e.ID, e.Name)
	}
	fmt.Fprintf(&sb, "\nGame data:\n%s\n", gameData)

	content, err := a.complete(ctx, sb.String())
	if err != nil {
		return Result{}, err
	}

	var parsed struct {
		Events []struct {
			EventID    string     `json:"eventId"`
			Occurred   bool       `json:"occurred"`
			Confidence Confidence `json:"confidence"`
			Reasoning  string     `json:"reasoning"`
		} `json:"events"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), &parsed); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrBadAnalyzerOutput, err)
	}

	byID := make(map[string]catalog.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	result := Result{
		ID:        uuid.NewString(),
		Period:    period,
		Timestamp: time.Now().UnixMilli(),
		Summary:   parsed.Summary,
		Status:    StatusCompleted,
	}
	for _, ev := range parsed.Events {
		known, ok := byID[ev.EventID]
		if !ok {
			// The analyzer invented an event id; drop it rather than let it
			// reach the outcome map.
			continue
		}
		result.Events = append(result.Events, EventVerification{
			EventID:    ev.EventID,
			EventName:  known.Name,
			Occurred:   ev.Occurred,
			Confidence: ev.Confidence,
			Reasoning:  ev.Reasoning,
		})
	}
	return result, nil
}

// complete performs one chat completion call.
func (a *OpenAIAnalyzer) complete(ctx context.Context, prompt string) (string, error) {
	if a.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload := map[string]any{
		"model": a.model,
		"messages": []map[string]string{
			{"role": "system", "content": analyzerSystemPrompt},
			{"role": "user", "content": prompt},
		},
		"temperature": analyzerTemperature,
		"max_tokens":  analyzerMaxTokens,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("%w: completion status %d", ErrUpstream, resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadAnalyzerOutput, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrBadAnalyzerOutput)
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// extractJSON strips a markdown code fence if the model wrapped its JSON in
// one.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
