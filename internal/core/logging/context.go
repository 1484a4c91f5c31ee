package logging

import "context"

type contextKey string

const (
	presetKey     contextKey = "preset"
	generationKey contextKey = "generation"
)

// WithPreset adds a preset name to the context.
func WithPreset(ctx context.Context, preset string) context.Context {
	return context.WithValue(ctx, presetKey, preset)
}

// WithGeneration adds a rebuild generation to the context.
func WithGeneration(ctx context.Context, generation uint64) context.Context {
	return context.WithValue(ctx, generationKey, generation)
}

// GetPreset retrieves the preset name from the context.
// Returns empty string if not present.
func GetPreset(ctx context.Context) string {
	if preset, ok := ctx.Value(presetKey).(string); ok {
		return preset
	}
	return ""
}

// GetGeneration retrieves the rebuild generation from the context.
// Returns zero and false if not present.
func GetGeneration(ctx context.Context) (uint64, bool) {
	gen, ok := ctx.Value(generationKey).(uint64)
	return gen, ok
}
