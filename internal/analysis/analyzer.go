// internal/analysis/analyzer.go
//
// Narrative board analysis via the Anthropic API. The analyzer absorbs
// every failure: callers always get prose back, either the model's answer
// or a fixed fallback message, so the dashboard needs no error path of its
// own. It works on snapshots only and never retains its input.

package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/kingrea/proflow/internal/logbook"
	"github.com/kingrea/proflow/internal/track"
)

const (
	// DefaultModel is used when the config does not name one.
	DefaultModel = "claude-3-5-haiku-latest"

	maxRetries     = 3
	initialBackoff = 1 * time.Second

	// MsgNotConfigured is shown when no API key is available at all.
	MsgNotConfigured = "Analysis is not configured. Set ANTHROPIC_API_KEY (or analysis.api_key in .proflow/config.yaml) and try again."

	// MsgUnavailable is shown when the request failed after retries.
	MsgUnavailable = "The analysis service could not be reached. This is usually temporary; please try again in a moment."
)

// Analyzer wraps the Anthropic client for board summarization.
type Analyzer struct {
	client         anthropic.Client
	model          anthropic.Model
	promptTemplate *template.Template
	apiKey         string
	maxRetries     int
	initialBackoff time.Duration
	log            *logbook.Logbook
}

// New builds an analyzer. ANTHROPIC_API_KEY takes precedence over the
// configured key. A missing key is not an error here; Analyze reports it
// as the not-configured message instead.
func New(apiKey, model string, log *logbook.Logbook) (*Analyzer, error) {
	if envKey := os.Getenv("ANTHROPIC_API_KEY"); envKey != "" {
		apiKey = envKey
	}
	if model == "" {
		model = DefaultModel
	}
	tmpl, err := template.New("analysis").Parse(analysisPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("analysis: parse prompt template: %w", err)
	}
	return &Analyzer{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:          anthropic.Model(model),
		promptTemplate: tmpl,
		apiKey:         apiKey,
		maxRetries:     maxRetries,
		initialBackoff: initialBackoff,
		log:            log,
	}, nil
}

// compactTeam is one non-NONE (team, status) pair on the wire. Only the
// blockage reason rides along; estimates and durations stay local.
type compactTeam struct {
	Team   string `json:"t"`
	Status string `json:"s"`
	Reason string `json:"b,omitempty"`
}

type compactFeature struct {
	Name    string        `json:"name"`
	Project string        `json:"project"`
	Prio    string        `json:"prio"`
	Teams   []compactTeam `json:"teams"`
}

// Compact reduces records to the payload the model actually needs: NONE
// entries are dropped and only the {team, status, reason} triple survives.
func Compact(records []track.Feature) []compactFeature {
	out := make([]compactFeature, 0, len(records))
	for _, f := range records {
		cf := compactFeature{
			Name:    f.Name,
			Project: f.ProjectName,
			Prio:    f.Priority,
			Teams:   []compactTeam{},
		}
		for _, team := range track.Teams() {
			status := f.Status(team)
			if status == track.StatusNone {
				continue
			}
			cf.Teams = append(cf.Teams, compactTeam{
				Team:   team.Label(),
				Status: status.String(),
				Reason: f.BlockageReasons[team],
			})
		}
		out = append(out, cf)
	}
	return out
}

// Analyze produces a markdown narrative for the given records. It never
// returns an error: any failure becomes a human-readable fallback string.
func (a *Analyzer) Analyze(ctx context.Context, records []track.Feature) string {
	if a.apiKey == "" {
		return MsgNotConfigured
	}

	prompt, err := a.renderPrompt(records)
	if err != nil {
		a.log.Error("Analysis prompt rendering failed: %v", err)
		return MsgUnavailable
	}

	text, err := a.callWithRetry(ctx, prompt)
	if err != nil {
		a.log.Warn("Analysis request failed: %v", err)
		return MsgUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return MsgUnavailable
	}
	return text
}

func (a *Analyzer) renderPrompt(records []track.Feature) (string, error) {
	payload, err := json.Marshal(Compact(records))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := a.promptTemplate.Execute(&sb, struct{ Data string }{Data: string(payload)}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (a *Analyzer) callWithRetry(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := a.initialBackoff * time.Duration(math.Pow(2, float64(attempt-1)))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		message, err := a.client.Messages.New(ctx, params)
		if err == nil {
			if len(message.Content) == 0 {
				return "", fmt.Errorf("empty response")
			}
			content := message.Content[0]
			if content.Type != "text" {
				return "", fmt.Errorf("unexpected response block type %q", content.Type)
			}
			return content.Text, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !isRetryable(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("failed after %d attempts: %w", a.maxRetries+1, lastErr)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}

const analysisPromptTemplate = `You are a senior project manager reviewing a delivery board. Here is the compact feature list with per-team statuses:

{{.Data}}

Write your analysis as markdown. It must cover:

1. An overall status summary across projects, in a professional tone.
2. Precise bottleneck identification, focusing on teams with the most BLOCKED or IN_PROGRESS work.
3. Suggestions for redistributing effort or re-prioritizing.
4. Likely risks over the coming weeks.

Keep it concise and actionable.`
