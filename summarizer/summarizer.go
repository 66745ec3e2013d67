package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bassamadnan/triage/config"
	"github.com/bassamadnan/triage/fallback"
	"github.com/bassamadnan/triage/inquiry"
	"github.com/bassamadnan/triage/logger"
	"github.com/tidwall/gjson"
)

const (
	fallbackSymptomChars = 200
	rawSummaryChars      = 600
	temperature          = 0.2

	systemPrompt = "Return ONLY valid compact JSON."
)

// Summarizer turns free-text symptoms into a triage record. It never fails: every
// internal error degrades to a fallback record.
type Summarizer interface {
	Summarize(ctx context.Context, symptoms, reportedUrgency string) inquiry.Summary
}

// Completer sends one system+user prompt pair to a language model and returns its text.
type Completer interface {
	Name() string
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// New picks the backend described by cfg. Missing credentials, or a backend that cannot
// be constructed, yield the deterministic Fallback.
func New(ctx context.Context, cfg config.Summarizer, log logger.Logger) Summarizer {
	var (
		c   Completer
		err error
	)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		c, err = NewOpenAI(cfg.APIKey, cfg.Model)
	case config.ProviderGemini:
		c, err = NewGemini(ctx, cfg.APIKey, cfg.Model)
	default:
		log.Info("No summarizer credential configured, using deterministic summaries")
		return Fallback{}
	}
	if err != nil {
		log.Warn("Summarizer init failed, proceeding without AI", "provider", cfg.Provider, "err", err)
		return Fallback{}
	}
	log.Info("Summarizer ready", "provider", c.Name())
	return NewLLM(c, log)
}

// Fallback summarizes without any backend.
type Fallback struct{}

func (Fallback) Summarize(_ context.Context, symptoms, reportedUrgency string) inquiry.Summary {
	trunc := strings.ReplaceAll(truncate(symptoms, fallbackSymptomChars), "\n", " ")
	return inquiry.Summary{
		Summary:  fmt.Sprintf("Reported symptoms: %s...", trunc),
		Urgency:  orUnknown(reportedUrgency),
		Keywords: []string{},
	}
}

// LLM summarizes through a Completer, one request per row, no retries.
type LLM struct {
	completer Completer
	log       logger.Logger
}

func NewLLM(c Completer, log logger.Logger) *LLM {
	return &LLM{completer: c, log: log}
}

func (s *LLM) Summarize(ctx context.Context, symptoms, reportedUrgency string) inquiry.Summary {
	content, err := s.completer.Complete(ctx, systemPrompt, buildPrompt(symptoms, reportedUrgency))
	if err != nil {
		s.log.Warn("Summarizer request failed", "backend", s.completer.Name(), "err", err)
		return inquiry.Summary{
			Summary:  fmt.Sprintf("(%s error: %v)", s.completer.Name(), err),
			Urgency:  orUnknown(reportedUrgency),
			Keywords: []string{},
		}
	}
	return Decode(ctx, content, reportedUrgency)
}

// Decode interprets a model response: a JSON object is used field by field, anything
// else becomes the summary text, truncated.
func Decode(ctx context.Context, content, reportedUrgency string) inquiry.Summary {
	content = strings.TrimSpace(content)
	// Parsing never blocks, so a cancelled run must not discard a reply already received.
	sum, _, err := fallback.First(context.WithoutCancel(ctx),
		fallback.Attempt[inquiry.Summary]{
			Name: "structured",
			Run: func(context.Context) (inquiry.Summary, error) {
				return decodeStructured(content, reportedUrgency)
			},
		},
		fallback.Attempt[inquiry.Summary]{
			Name: "raw",
			Run: func(context.Context) (inquiry.Summary, error) {
				return rawSummary(content, reportedUrgency), nil
			},
		},
	)
	if err != nil {
		return rawSummary(content, reportedUrgency)
	}
	return sum
}

var errNotObject = errors.New("response is not a JSON object")

func decodeStructured(content, reportedUrgency string) (inquiry.Summary, error) {
	if !gjson.Valid(content) {
		return inquiry.Summary{}, errNotObject
	}
	parsed := gjson.Parse(content)
	if !parsed.IsObject() {
		return inquiry.Summary{}, errNotObject
	}

	urgency := strings.TrimSpace(parsed.Get("urgency").String())
	if urgency == "" {
		urgency = orUnknown(reportedUrgency)
	}
	keywords := []string{}
	if kw := parsed.Get("keywords"); kw.IsArray() {
		for _, k := range kw.Array() {
			keywords = append(keywords, k.String())
		}
	}
	return inquiry.Summary{
		Summary:  strings.TrimSpace(parsed.Get("summary").String()),
		Urgency:  urgency,
		Keywords: keywords,
	}, nil
}

func rawSummary(content, reportedUrgency string) inquiry.Summary {
	return inquiry.Summary{
		Summary:  truncate(content, rawSummaryChars),
		Urgency:  orUnknown(reportedUrgency),
		Keywords: []string{},
	}
}

func buildPrompt(symptoms, reportedUrgency string) string {
	return "Summarize the patient's symptoms in 2 concise lines, " +
		"classify urgency as one of [Low, Medium, High], and provide 3 keywords. " +
		"Return JSON with keys: summary, urgency, keywords.\n\n" +
		fmt.Sprintf("Symptoms: %s\nReported urgency: %s", symptoms, reportedUrgency)
}

// truncate keeps the first n characters (runes) of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func orUnknown(urgency string) string {
	if urgency == "" {
		return inquiry.UnknownUrgency
	}
	return urgency
}
