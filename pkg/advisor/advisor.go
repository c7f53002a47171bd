package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kataras/webfont-analyzer/pkg/report"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// DefaultTemperature is the sampling temperature of the critique request.
const DefaultTemperature = 0.7

// Config tunes an Advisor. Zero values fall back to the package defaults and
// limits are capped at them.
type Config struct {
	Model         string
	Temperature   float64
	FamilyLimit   int
	FontFileLimit int

	// Languages detects the content language of sample texts.
	// Nil disables the language hint.
	Languages LanguageDetector
}

// Advisor asks a chat model for a typographic critique of a report.
type Advisor struct {
	completer Completer
	cfg       Config
}

// New returns an Advisor that sends its requests through completer.
func New(completer Completer, cfg Config) *Advisor {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.FamilyLimit <= 0 || cfg.FamilyLimit > DefaultFamilyLimit {
		cfg.FamilyLimit = DefaultFamilyLimit
	}
	if cfg.FontFileLimit <= 0 || cfg.FontFileLimit > DefaultFontFileLimit {
		cfg.FontFileLimit = DefaultFontFileLimit
	}

	return &Advisor{completer: completer, cfg: cfg}
}

// Model returns the model the advisor talks to.
func (a *Advisor) Model() string {
	return a.cfg.Model
}

// Summarize builds the bounded summary that Advise sends.
func (a *Advisor) Summarize(r *report.AnalysisReport) *Summary {
	s := Summarize(r, a.cfg.FamilyLimit, a.cfg.FontFileLimit)
	if a.cfg.Languages != nil {
		s.Language = a.cfg.Languages.Detect(sampleTexts(s))
	}
	return s
}

// Advise sends the summary of r to the model and returns its normalized answer.
func (a *Advisor) Advise(ctx context.Context, r *report.AnalysisReport) (*Advice, error) {
	summary := a.Summarize(r)

	content, err := a.completer.ChatCompletion(ctx, ChatRequest{
		Model: a.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: summary.Prompt()},
		},
		Temperature:    a.cfg.Temperature,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	return ParseAdvice(content)
}

// ParseAdvice decodes a model answer. It must be a JSON object; anything
// else is ErrMalformedResponse. Missing or null top-level keys get
// defaults: an empty analysis object and empty lists. Every other value,
// whatever its shape, is kept as sent.
func ParseAdvice(content string) (*Advice, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty response from AI", ErrMalformedResponse)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON response from AI: %v\nResponse: %s", ErrMalformedResponse, err, excerpt(content, 200))
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: AI response is not a JSON object\nResponse: %s", ErrMalformedResponse, excerpt(content, 200))
	}

	advice := &Advice{
		Analysis:        Value{raw: json.RawMessage(`{}`)},
		FontPairings:    []Value{},
		Recommendations: []Value{},
		Issues:          []Value{},
	}

	for key, raw := range fields {
		v := Value{raw: raw}
		switch key {
		case "analysis":
			if !v.IsNull() {
				advice.Analysis = v
			}
		case "fontPairings":
			advice.FontPairings = list(v)
		case "recommendations":
			advice.Recommendations = list(v)
		case "issues":
			advice.Issues = list(v)
		default:
			if advice.Extra == nil {
				advice.Extra = make(map[string]json.RawMessage)
			}
			advice.Extra[key] = raw
		}
	}

	return advice, nil
}

// list returns the items of an array value without nulls. Null is an empty
// list and any other single value becomes a one item list.
func list(v Value) []Value {
	if v.IsNull() {
		return []Value{}
	}

	var items []Value
	if err := json.Unmarshal(v.raw, &items); err != nil {
		return []Value{v}
	}

	out := make([]Value, 0, len(items))
	for _, item := range items {
		if !item.IsNull() {
			out = append(out, item)
		}
	}
	return out
}

// sampleTexts joins the sample texts of the summarized variations.
func sampleTexts(s *Summary) string {
	var parts []string
	for _, f := range s.Fonts {
		for _, v := range f.Variations {
			if v.SampleText != "" {
				parts = append(parts, v.SampleText)
			}
		}
	}
	return strings.Join(parts, " ")
}
