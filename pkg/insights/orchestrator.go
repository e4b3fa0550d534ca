package insights

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/growthmesh/refgraph/pkg/llm"
	"github.com/growthmesh/refgraph/pkg/types"
)

// Orchestrator runs the five analyses in a fixed order against a
// finished graph. A failing analysis never fails the run: the error is
// logged, the remaining analyses still execute, and a single fallback
// insight is appended at the end.
type Orchestrator struct {
	logger   *slog.Logger
	narrator llm.Client
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithNarrator attaches an LLM client that appends a narrative summary
// insight after the model analyses.
func WithNarrator(client llm.Client) Option {
	return func(o *Orchestrator) {
		o.narrator = client
	}
}

// NewOrchestrator builds an orchestrator. A nil logger falls back to
// slog.Default.
func NewOrchestrator(logger *slog.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{logger: logger}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes every analysis against the graph and returns the ordered
// insight list. The context is checked between analyses so a cancelled
// request stops burning CPU on the remaining models.
func (o *Orchestrator) Run(ctx context.Context, g *types.Graph) ([]types.Insight, error) {
	users := g.UserNodes()
	contacts := g.ContactNodes()

	steps := []struct {
		name string
		run  func() (*types.Insight, error)
	}{
		{"engagement", func() (*types.Insight, error) { return engagementInsight(users) }},
		{"forecast", func() (*types.Insight, error) { return forecastInsight(users) }},
		{"pattern", func() (*types.Insight, error) { return patternInsight(contacts) }},
		{"anomaly", func() (*types.Insight, error) { return anomalyInsight(users) }},
		{"synthetic", func() (*types.Insight, error) { return syntheticInsight(users) }},
	}

	insights := make([]types.Insight, 0, len(steps)+2)
	failed := false
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		insight, err := o.runStep(step.name, step.run)
		if err != nil {
			o.logger.Warn("insight analysis failed", "analysis", step.name, "error", err)
			failed = true
			continue
		}
		insights = append(insights, *insight)
	}

	if failed {
		insights = append(insights, types.Insight{
			Type:        "model_status",
			Title:       "AI Models Training In Progress",
			Description: "Some neural models are still training in progress; partial insights are shown.",
			Importance:  types.ImportanceMedium,
			Data:        map[string]interface{}{},
		})
	}

	if o.narrator != nil {
		if narrative, err := o.narrate(ctx, insights); err != nil {
			o.logger.Warn("narrative summary failed", "error", err)
		} else {
			insights = append(insights, *narrative)
		}
	}

	return insights, nil
}

// runStep isolates one analysis, converting a panic into an error so a
// single misbehaving model cannot take down the whole run.
func (o *Orchestrator) runStep(name string, run func() (*types.Insight, error)) (insight *types.Insight, err error) {
	defer func() {
		if r := recover(); r != nil {
			insight = nil
			err = fmt.Errorf("%s panicked: %v", name, r)
		}
	}()
	return run()
}

// narrate asks the configured LLM for a short plain-language summary of
// the computed insights.
func (o *Orchestrator) narrate(ctx context.Context, insights []types.Insight) (*types.Insight, error) {
	var sb strings.Builder
	for _, in := range insights {
		fmt.Fprintf(&sb, "- [%s] %s: %s\n", in.Importance, in.Title, in.Description)
	}

	content, err := o.narrator.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: "You summarize referral network analytics for a growth team. Reply with two or three plain sentences, no markdown."},
		{Role: llm.RoleUser, Content: "Summarize these findings:\n" + sb.String()},
	})
	if err != nil {
		return nil, err
	}

	return &types.Insight{
		Type:        "narrative_summary",
		Title:       "Network Summary",
		Description: strings.TrimSpace(content),
		Importance:  types.ImportanceMedium,
		Data:        map[string]interface{}{"insightsSummarized": len(insights)},
	}, nil
}
