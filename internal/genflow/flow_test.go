package genflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transition struct{ from, to State }

type recorder struct {
	mu    sync.Mutex
	steps []transition
}

func (r *recorder) hook(_ string, from, to State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, transition{from, to})
}

func newReportFlow(gen Generator, rec *recorder) *Flow[reportIn, reportOut] {
	return NewFlow[reportIn, reportOut]("report", reportInSchema, reportOutSchema,
		MustPrompt("report", reportTemplate), NewInvoker(gen, time.Second),
		WithTransitionHook(rec.hook))
}

func TestFlowSuccess(t *testing.T) {
	var prompt string
	gen := GeneratorFunc(func(_ context.Context, req Request) ([]byte, error) {
		prompt = req.Prompt
		assert.Same(t, reportOutSchema, req.Output)
		return []byte(`{"score":9,"tags":["good"],"ready":true,"lines":[{"label":"A","value":1}]}`), nil
	})
	rec := &recorder{}
	out, err := newReportFlow(gen, rec).Run(context.Background(), reportIn{
		Title: "May",
		Items: []lineItem{{"A", 1}, {"B", 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, reportOut{Score: 9, Tags: []string{"good"}, Ready: true, Lines: []lineItem{{"A", 1}}}, out)
	assert.Contains(t, prompt, "Items: A: 1, B: 2")
	assert.Equal(t, []transition{
		{StateIdle, StateCompiling},
		{StateCompiling, StateAwaitingGeneration},
		{StateAwaitingGeneration, StateDecoding},
		{StateDecoding, StateSucceeded},
	}, rec.steps)
}

func TestFlowFailureStates(t *testing.T) {
	calls := 0
	counting := func(raw string, err error) Generator {
		return GeneratorFunc(func(context.Context, Request) ([]byte, error) {
			calls++
			return []byte(raw), err
		})
	}
	valid := reportIn{Title: "May", Items: []lineItem{}}

	tests := []struct {
		name      string
		in        reportIn
		gen       Generator
		want      error
		wantCalls int
		steps     []transition
	}{
		{
			name: "blank input never reaches the model",
			in:   reportIn{Title: "  ", Items: []lineItem{}},
			gen:  counting(`{}`, nil), want: ErrValidation, wantCalls: 0,
			steps: []transition{{StateIdle, StateCompiling}, {StateCompiling, StateFailed}},
		},
		{
			name: "generation error",
			in:   valid,
			gen:  counting("", errors.New("boom")), want: ErrGeneration, wantCalls: 1,
			steps: []transition{{StateIdle, StateCompiling}, {StateCompiling, StateAwaitingGeneration}, {StateAwaitingGeneration, StateFailed}},
		},
		{
			name: "missing field",
			in:   valid,
			gen:  counting(`{"score":1,"tags":[],"ready":true}`, nil), want: ErrDecoding, wantCalls: 1,
			steps: []transition{{StateIdle, StateCompiling}, {StateCompiling, StateAwaitingGeneration}, {StateAwaitingGeneration, StateDecoding}, {StateDecoding, StateFailed}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls = 0
			rec := &recorder{}
			out, err := newReportFlow(tt.gen, rec).Run(context.Background(), tt.in)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, reportOut{}, out)
			assert.Equal(t, tt.wantCalls, calls)
			assert.Equal(t, tt.steps, rec.steps)
			assert.True(t, rec.steps[len(rec.steps)-1].to.Terminal())
		})
	}
}

func TestStateTransitions(t *testing.T) {
	for _, s := range []State{StateSucceeded, StateFailed} {
		for to := StateIdle; to <= StateFailed; to++ {
			assert.False(t, CanTransition(s, to), "%s -> %s", s, to)
		}
	}
	for _, s := range []State{StateIdle, StateCompiling, StateAwaitingGeneration, StateDecoding} {
		assert.True(t, CanTransition(s, StateFailed), "%s -> failed", s)
	}
	assert.False(t, CanTransition(StateCompiling, StateSucceeded))
	assert.Equal(t, "awaiting_generation", StateAwaitingGeneration.String())
}

func TestFlowConcurrentRuns(t *testing.T) {
	gen := GeneratorFunc(func(_ context.Context, req Request) ([]byte, error) {
		return []byte(`{"score":1,"tags":[],"ready":true,"lines":[]}`), nil
	})
	flow := NewFlow[reportIn, reportOut]("report", reportInSchema, reportOutSchema,
		MustPrompt("report", reportTemplate), NewInvoker(gen, time.Second))

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := flow.Run(context.Background(), reportIn{Title: "x", Items: []lineItem{}})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}
