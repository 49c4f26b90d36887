package main

import (
	"context"
	"fmt"

	"github.com/skdltmxn/classwrap/classmodel"
	"github.com/skdltmxn/classwrap/internal/events"
)

// collect replays the script at path into a new pipeline emitting to b.
func collect(ctx context.Context, path string, b classmodel.Backend) (*classmodel.Pipeline, error) {
	script, err := events.Load(path)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts.Logger = logger
	opts.Observer = recorder

	p := classmodel.New(b, opts)
	if err := events.Replay(ctx, p.Collector(), script); err != nil {
		return nil, err
	}
	logger.Debug("script replayed", "file", script.File, "events", len(script.Events), "classes", p.Registry().Len())
	return p, nil
}

// emit collects path and emits every class to b.
func emit(ctx context.Context, path string, b classmodel.Backend) (*classmodel.Pipeline, error) {
	p, err := collect(ctx, path, b)
	if err != nil {
		return nil, err
	}
	if err := p.Emit(ctx); err != nil {
		return nil, fmt.Errorf("failed to emit: %w", err)
	}
	return p, nil
}
