package logutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NemoVonNirgend/promptdeck/pkg/logutils"
)

type markerHook struct{}

func (markerHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str("marker", "on")
}

func TestNew_WritesToFileAndInstallsHooks(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "promptdeck.log")

	logger, closer, err := logutils.New("debug", file, markerHook{})
	require.NoError(t, err)

	logger.Info().Msg("hello")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"marker":"on"`)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, _, err := logutils.New("shout", "")
	assert.Error(t, err)
}
