package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/generate"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/logging"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
)

// fakeGenerator scripts the model path.
type fakeGenerator struct {
	spec *schema.Spec
	err  error
}

func (f *fakeGenerator) GenerateSpec(ctx context.Context, prompt string) (*schema.Spec, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.spec, nil
}

func modelSpec() *schema.Spec {
	return &schema.Spec{
		ID:    "spec_model",
		Name:  "Model App",
		Pages: []schema.Page{{ID: "main", Title: "Main", Layout: schema.LayoutScroll}},
	}
}

func TestBuildModelPath(t *testing.T) {
	e := New(&fakeGenerator{spec: modelSpec()}, logging.Nop())

	var events []Event
	res := e.Build(context.Background(), "a counter app", func(ev Event) {
		events = append(events, ev)
	})

	require.NoError(t, res.Err)
	assert.Equal(t, SourceModel, res.Source)
	assert.Equal(t, "Model App", res.Spec.Name)
	assert.False(t, res.Superseded)
	assert.Equal(t, StatusCompleted, e.Status())
	require.NotNil(t, res.Report, "model output is validated too")
	assert.True(t, res.Report.IsValid)

	statuses := make([]Status, len(events))
	for i, ev := range events {
		statuses[i] = ev.Status
	}
	assert.Equal(t, []Status{StatusDesigning, StatusGenerating, StatusValidating, StatusRunning, StatusCompleted}, statuses)
}

func TestBuildModelPathRepairsBrokenSpec(t *testing.T) {
	spec := modelSpec()
	spec.Pages[0].Components = []schema.Component{{
		ID:        "c1",
		Type:      schema.TypeButton,
		ActionIDs: []string{"a_gone"},
		Props: schema.Props{
			Label: "Go",
			Style: schema.Style{BackgroundColor: "notacolor"},
		},
	}}
	e := New(&fakeGenerator{spec: spec}, logging.Nop())

	var events []Event
	res := e.Build(context.Background(), "a broken app", func(ev Event) {
		events = append(events, ev)
	})

	require.NoError(t, res.Err)
	require.NotNil(t, res.Report)
	assert.True(t, res.Report.IsValid, "repaired spec should validate clean")

	sawDebugging := false
	for _, ev := range events {
		if ev.Status == StatusDebugging {
			sawDebugging = true
		}
	}
	assert.True(t, sawDebugging, "a broken model spec triggers the repair stage")

	button := res.Spec.Pages[0].Components[0]
	assert.Empty(t, button.ActionIDs, "dangling actionId should be dropped")
	assert.NotEqual(t, "notacolor", button.Props.Style.BackgroundColor)
}

func TestBuildFallbackPath(t *testing.T) {
	e := New(&fakeGenerator{err: generate.ErrMissingCredential}, logging.Nop())

	res := e.Build(context.Background(), "a simple counter", nil)
	require.NoError(t, res.Err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Contains(t, res.Notice, "API key")
	require.NotNil(t, res.Spec)
	assert.Equal(t, "Counter", res.Spec.Name)
	require.NotNil(t, res.Report)
	assert.True(t, res.Report.IsValid)
	assert.Equal(t, StatusCompleted, e.Status())
}

func TestBuildEmptyPromptFails(t *testing.T) {
	e := New(&fakeGenerator{spec: modelSpec()}, logging.Nop())

	res := e.Build(context.Background(), "   ", nil)
	assert.ErrorIs(t, res.Err, generate.ErrEmptyInput)
	assert.NotEmpty(t, res.Notice)
	assert.Equal(t, StatusFailed, e.Status())
}

// gatedGenerator blocks only for the named prompt, so a later build can
// overtake an earlier one deterministically.
type gatedGenerator struct {
	spec        *schema.Spec
	gate        chan struct{}
	blockPrompt string
	entered     chan struct{}
}

func (g *gatedGenerator) GenerateSpec(ctx context.Context, prompt string) (*schema.Spec, error) {
	if prompt == g.blockPrompt {
		g.entered <- struct{}{}
		<-g.gate
	}
	return g.spec, nil
}

func TestSupersededBuildIsNoop(t *testing.T) {
	gen := &gatedGenerator{
		spec:        modelSpec(),
		gate:        make(chan struct{}),
		blockPrompt: "first app",
		entered:     make(chan struct{}),
	}
	e := New(gen, logging.Nop())

	var wg sync.WaitGroup
	wg.Add(1)
	var stale *Result
	go func() {
		defer wg.Done()
		stale = e.Build(context.Background(), "first app", nil)
	}()

	// Wait until the first build is inside the generator call, then start
	// a second build that supersedes it.
	<-gen.entered
	fresh := e.Build(context.Background(), "second app", nil)
	require.False(t, fresh.Superseded)
	require.Equal(t, "second app", e.Last().Prompt)

	close(gen.gate)
	wg.Wait()

	assert.True(t, stale.Superseded)
	assert.Equal(t, "second app", e.Last().Prompt, "stale result must not replace the fresh one")
	assert.Equal(t, StatusCompleted, e.Status())
}

func TestProgressProjection(t *testing.T) {
	assert.Equal(t, 0, StatusIdle.Progress())
	assert.Equal(t, 100, StatusCompleted.Progress())
	assert.Equal(t, 100, StatusFailed.Progress())

	prev := -1
	for _, s := range []Status{StatusIdle, StatusDesigning, StatusGenerating, StatusValidating, StatusDebugging, StatusRunning, StatusCompleted} {
		if s.Progress() < prev {
			t.Errorf("progress regressed at %s", s)
		}
		prev = s.Progress()
	}

	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.False(t, StatusGenerating.Terminal())
}

func TestFallbackNoticeKinds(t *testing.T) {
	assert.Contains(t, fallbackNotice(generate.ErrMissingCredential), "API key")
	assert.Contains(t, fallbackNotice(errors.New("boom")), "unreachable")
}
