package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts the preset name and rebuild generation from context
// and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if preset := GetPreset(ctx); preset != "" {
		e.Str("preset", preset)
	}

	if gen, ok := GetGeneration(ctx); ok {
		e.Uint64("generation", gen)
	}
}
