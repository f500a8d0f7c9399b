package genflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout bounds a generation call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Request is everything a hosted model needs for one structured generation.
type Request struct {
	Prompt string
	Input  *Descriptor
	Output *Descriptor
}

// Generator is the hosted generation capability. It returns the raw reply.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]byte, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) ([]byte, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) ([]byte, error) {
	return f(ctx, req)
}

// Invoker calls a Generator under a deadline and classifies what comes back.
type Invoker struct {
	gen     Generator
	timeout time.Duration
}

func NewInvoker(gen Generator, timeout time.Duration) *Invoker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Invoker{gen: gen, timeout: timeout}
}

func (iv *Invoker) Timeout() time.Duration { return iv.timeout }

// Invoke returns the raw reply once it is known to be a JSON object.
// The deadline holds even when the generator ignores its context.
func (iv *Invoker) Invoke(ctx context.Context, req Request) ([]byte, error) {
	if iv.gen == nil {
		return nil, newFault(FaultGeneration, errors.New("no generator configured"))
	}
	ctx, cancel := context.WithTimeout(ctx, iv.timeout)
	defer cancel()

	type result struct {
		reply []byte
		err   error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- result{err: fmt.Errorf("generator panicked: %v", p)}
			}
		}()
		reply, err := iv.gen.Generate(ctx, req)
		done <- result{reply: reply, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		return nil, iv.contextFault(ctx)
	}

	if res.err != nil {
		if ctx.Err() != nil {
			return nil, iv.contextFault(ctx)
		}
		return nil, newFault(FaultGeneration, res.err)
	}
	if len(bytes.TrimSpace(res.reply)) == 0 {
		return nil, newFault(FaultGeneration, errNoReply)
	}
	if _, err := parseObject(res.reply); err != nil {
		return nil, newFault(FaultDecoding, err)
	}
	return res.reply, nil
}

func (iv *Invoker) contextFault(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return newFault(FaultTimeout, fmt.Errorf("no reply within %s: %w", iv.timeout, ctx.Err()))
	}
	return newFault(FaultGeneration, ctx.Err())
}
