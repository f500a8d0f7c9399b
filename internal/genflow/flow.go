package genflow

import (
	"context"

	"finsight/internal/log"
)

// State is the phase of a single flow run.
type State int

const (
	StateIdle State = iota
	StateCompiling
	StateAwaitingGeneration
	StateDecoding
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCompiling:
		return "compiling"
	case StateAwaitingGeneration:
		return "awaiting_generation"
	case StateDecoding:
		return "decoding"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

var transitions = map[State][]State{
	StateIdle:               {StateCompiling, StateFailed},
	StateCompiling:          {StateAwaitingGeneration, StateFailed},
	StateAwaitingGeneration: {StateDecoding, StateFailed},
	StateDecoding:           {StateSucceeded, StateFailed},
}

// CanTransition reports whether a run may move from one state to the other.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionHook observes every state change of a run.
type TransitionHook func(flow string, from, to State)

// Option configures a Flow.
type Option func(*options)

type options struct {
	logger *log.Logger
	hook   TransitionHook
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithTransitionHook(h TransitionHook) Option {
	return func(o *options) { o.hook = h }
}

// Flow is one named structured-generation operation from In to Out.
// A Flow holds no per-call state and is safe for concurrent use.
type Flow[In, Out any] struct {
	name    string
	input   *Descriptor
	output  *Descriptor
	prompt  *Prompt
	invoker *Invoker
	opts    options
}

func NewFlow[In, Out any](name string, input, output *Descriptor, prompt *Prompt, invoker *Invoker, opts ...Option) *Flow[In, Out] {
	o := options{logger: log.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.WithComponent(log.ComponentGenflow)
	return &Flow[In, Out]{
		name:    name,
		input:   input,
		output:  output,
		prompt:  prompt,
		invoker: invoker,
		opts:    o,
	}
}

func (f *Flow[In, Out]) Name() string { return f.name }

// Run validates in, compiles the prompt, invokes the model and decodes the reply.
// Every error returned is a *Fault.
func (f *Flow[In, Out]) Run(ctx context.Context, in In) (Out, error) {
	var zero Out
	r := &run{name: f.name, state: StateIdle, opts: f.opts}

	r.advance(ctx, StateCompiling)
	if err := ValidateInput(f.input, in); err != nil {
		return zero, r.fail(ctx, err)
	}
	prompt, err := f.prompt.Compile(in)
	if err != nil {
		return zero, r.fail(ctx, newFault(FaultValidation, err))
	}

	r.advance(ctx, StateAwaitingGeneration)
	f.opts.logger.DebugContext(ctx, "Invoking generator",
		log.FieldFlow, f.name,
		log.FieldPromptBytes, len(prompt))
	reply, err := f.invoker.Invoke(ctx, Request{Prompt: prompt, Input: f.input, Output: f.output})
	if err != nil {
		return zero, r.fail(ctx, err)
	}

	r.advance(ctx, StateDecoding)
	out, err := Decode[Out](f.output, reply)
	if err != nil {
		return zero, r.fail(ctx, err)
	}

	r.advance(ctx, StateSucceeded)
	return out, nil
}

type run struct {
	name  string
	state State
	opts  options
}

func (r *run) advance(ctx context.Context, to State) {
	from := r.state
	if !CanTransition(from, to) {
		// Unreachable from Run; keep the state as is.
		r.opts.logger.ErrorContext(ctx, "Illegal flow transition",
			log.FieldFlow, r.name,
			log.FieldStateFrom, from.String(),
			log.FieldStateTo, to.String())
		return
	}
	r.state = to
	r.opts.logger.DebugContext(ctx, "Flow transition",
		log.FieldFlow, r.name,
		log.FieldStateFrom, from.String(),
		log.FieldStateTo, to.String())
	if r.opts.hook != nil {
		r.opts.hook(r.name, from, to)
	}
}

func (r *run) fail(ctx context.Context, err error) error {
	r.advance(ctx, StateFailed)
	return err
}
