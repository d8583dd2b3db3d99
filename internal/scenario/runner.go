package scenario

import (
	"fmt"
	"strings"

	"github.com/louisbranch/ashfall.world/internal/chronicle"
	apperrors "github.com/louisbranch/ashfall.world/internal/platform/errors"
	"github.com/louisbranch/ashfall.world/internal/techgraph"
)

// Runner executes scenario steps against a live engine and graph.
type Runner struct {
	engine *chronicle.Engine
	graph  *techgraph.Graph
}

// Result collects what happened while running a scenario.
type Result struct {
	Triggered []chronicle.Event
	Resolved  []chronicle.Event
	Memories  []chronicle.EffectResult
}

// NewRunner creates a runner bound to the given engine and graph.
// Either may be nil; steps that need the missing half fail at run time.
func NewRunner(engine *chronicle.Engine, graph *techgraph.Graph) *Runner {
	return &Runner{engine: engine, graph: graph}
}

// Run executes every step in order and returns the accumulated result.
func (r *Runner) Run(s *Scenario) (*Result, error) {
	if s == nil {
		return nil, fmt.Errorf("scenario is required")
	}

	result := &Result{}
	for i, step := range s.Steps {
		if err := r.runStep(step, result); err != nil {
			return nil, apperrors.WrapWithMetadata(
				apperrors.CodeScenarioStepFailed,
				fmt.Sprintf("step %d (%s)", i+1, step.Kind),
				map[string]string{"step": fmt.Sprintf("%d", i+1), "kind": step.Kind},
				err,
			)
		}
	}
	return result, nil
}

func (r *Runner) runStep(step Step, result *Result) error {
	switch step.Kind {
	case "trigger":
		return r.runTrigger(step.Args, result)
	case "progress":
		return r.runProgress(step.Args, result)
	case "resolve":
		return r.runResolve(step.Args, result)
	case "decay":
		return r.runDecay(step.Args)
	case "relearn":
		return r.runRelearn(step.Args)
	case "memory":
		return r.runMemory(step.Args, result)
	default:
		return fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) runTrigger(args map[string]any, result *Result) error {
	if r.engine == nil {
		return fmt.Errorf("engine is required")
	}

	kind, err := kindArg(args, "kind")
	if err != nil {
		return err
	}
	eventType := stringArg(args, "type")
	if eventType == "" {
		return fmt.Errorf("trigger requires a type")
	}

	ov := chronicle.Overrides{
		Magnitude: floatPtrArg(args, "magnitude"),
		Duration:  floatPtrArg(args, "duration"),
		Tags:      stringSliceArg(args, "tags"),
		Metadata:  stringMapArg(args, "metadata"),
		Context:   stringMapArg(args, "context"),
	}

	ev := r.engine.Trigger(kind, eventType, ov)
	if ev == nil {
		return fmt.Errorf("unknown event type %q", eventType)
	}
	result.Triggered = append(result.Triggered, *ev)
	return nil
}

func (r *Runner) runProgress(args map[string]any, result *Result) error {
	if r.engine == nil {
		return fmt.Errorf("engine is required")
	}

	elapsed := floatArg(args, "elapsed")
	if elapsed <= 0 {
		return fmt.Errorf("progress requires a positive elapsed value")
	}

	r.engine.Progress(elapsed)
	for _, kind := range []chronicle.Kind{chronicle.KindCrisis, chronicle.KindOpportunity} {
		for _, ev := range r.engine.Resolved(kind) {
			if ev.Resolution != nil && ev.Resolution.Auto {
				result.Resolved = appendEventOnce(result.Resolved, ev)
			}
		}
	}
	return nil
}

func (r *Runner) runResolve(args map[string]any, result *Result) error {
	if r.engine == nil {
		return fmt.Errorf("engine is required")
	}

	kind, err := kindArg(args, "kind")
	if err != nil {
		return err
	}
	id := int64(floatArg(args, "id"))
	if id == 0 {
		return fmt.Errorf("resolve requires an event id")
	}

	res := chronicle.Resolution{
		Mitigation:          floatPtrArg(args, "mitigation"),
		Aid:                 floatPtrArg(args, "aid"),
		CommunityFocus:      floatPtrArg(args, "focus"),
		ArtifactID:          stringArg(args, "artifact_id"),
		ArtifactName:        stringArg(args, "artifact_name"),
		Curator:             stringArg(args, "curator"),
		Preserved:           boolArg(args, "preserved"),
		Story:               stringArg(args, "story"),
		Significance:        floatArg(args, "significance"),
		GuildID:             stringArg(args, "guild_id"),
		GuildName:           stringArg(args, "guild_name"),
		Sponsor:             stringArg(args, "sponsor"),
		Disciplines:         stringSliceArg(args, "disciplines"),
		RefugeeNames:        stringSliceArg(args, "refugees"),
		InfluenceMultiplier: floatPtrArg(args, "influence_multiplier"),
		Notes:               stringMapArg(args, "notes"),
	}

	ev := r.engine.Resolve(kind, id, res)
	if ev == nil {
		return fmt.Errorf("no active %s event with id %d", kind, id)
	}
	result.Resolved = append(result.Resolved, *ev)
	return nil
}

func (r *Runner) runDecay(args map[string]any) error {
	node, err := r.node(args)
	if err != nil {
		return err
	}
	steps := intArg(args, "steps")
	if steps <= 0 {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		node.ApplyDecay()
	}
	return nil
}

func (r *Runner) runRelearn(args map[string]any) error {
	node, err := r.node(args)
	if err != nil {
		return err
	}
	steps := intArg(args, "steps")
	if steps <= 0 {
		steps = 1
	}
	node.Relearn(steps)
	return nil
}

func (r *Runner) runMemory(args map[string]any, result *Result) error {
	if r.engine == nil {
		return fmt.Errorf("engine is required")
	}

	momentID := stringArg(args, "moment")
	choice := chronicle.MemoryChoice{
		MomentID:  momentID,
		Selection: stringArg(args, "selection"),
		Effect:    stringArg(args, "effect"),
		Prompt:    stringArg(args, "prompt"),
		Context:   stringMapArg(args, "context"),
		Outcome:   stringArg(args, "outcome"),
	}

	if legend := tableArg(args, "legend"); len(legend) > 0 {
		choice.Legend = &chronicle.Legend{
			ID:           stringArg(legend, "id"),
			Title:        stringArg(legend, "title"),
			Significance: floatArg(legend, "significance"),
		}
	}
	if school := stringMapArg(args, "school"); len(school) > 0 {
		choice.School = &chronicle.School{
			ID:     school["id"],
			Name:   school["name"],
			Region: school["region"],
			Focus:  school["focus"],
		}
	}
	if guild := stringMapArg(args, "guild"); len(guild) > 0 {
		choice.Guild = &chronicle.Guild{
			ID:   guild["id"],
			Name: guild["name"],
		}
	}

	effect := r.engine.RecordMemoryChoice(momentID, choice)
	result.Memories = append(result.Memories, effect)
	return nil
}

func (r *Runner) node(args map[string]any) (*techgraph.Node, error) {
	if r.graph == nil {
		return nil, fmt.Errorf("graph is required")
	}
	id := stringArg(args, "node")
	if id == "" {
		return nil, fmt.Errorf("step requires a node id")
	}
	node, ok := r.graph.Node(id)
	if !ok {
		return nil, fmt.Errorf("unknown node %q", id)
	}
	return node, nil
}

func appendEventOnce(events []chronicle.Event, ev chronicle.Event) []chronicle.Event {
	for _, existing := range events {
		if existing.ID == ev.ID && existing.Kind == ev.Kind {
			return events
		}
	}
	return append(events, ev)
}

func kindArg(args map[string]any, key string) (chronicle.Kind, error) {
	value := strings.ToLower(stringArg(args, key))
	switch value {
	case "crisis":
		return chronicle.KindCrisis, nil
	case "opportunity":
		return chronicle.KindOpportunity, nil
	default:
		return "", fmt.Errorf("invalid kind %q", value)
	}
}

func stringArg(args map[string]any, key string) string {
	if value, ok := args[key].(string); ok {
		return value
	}
	return ""
}

func boolArg(args map[string]any, key string) bool {
	if value, ok := args[key].(bool); ok {
		return value
	}
	return false
}

func floatArg(args map[string]any, key string) float64 {
	switch value := args[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	default:
		return 0
	}
}

func intArg(args map[string]any, key string) int {
	switch value := args[key].(type) {
	case int:
		return value
	case float64:
		return int(value)
	default:
		return 0
	}
}

func floatPtrArg(args map[string]any, key string) *float64 {
	if _, ok := args[key]; !ok {
		return nil
	}
	value := floatArg(args, key)
	return &value
}

func stringSliceArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	var values []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

func tableArg(args map[string]any, key string) map[string]any {
	if value, ok := args[key].(map[string]any); ok {
		return value
	}
	return nil
}

func stringMapArg(args map[string]any, key string) map[string]string {
	raw, ok := args[key].(map[string]any)
	if !ok {
		return nil
	}
	values := map[string]string{}
	for k, v := range raw {
		switch item := v.(type) {
		case string:
			values[k] = item
		case int:
			values[k] = fmt.Sprintf("%d", item)
		case float64:
			values[k] = fmt.Sprintf("%g", item)
		}
	}
	return values
}
