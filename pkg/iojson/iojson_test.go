package iojson_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NemoVonNirgend/promptdeck/pkg/iojson"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	err := iojson.WriteWith(&out, &errOut, map[string]int{"enabled": 2})
	require.NoError(t, err)

	assert.JSONEq(t, `{"enabled": 2}`, out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalFailureGoesToErrorStream(t *testing.T) {
	var out, errOut bytes.Buffer

	// Channels cannot be marshaled.
	err := iojson.WriteWith(&out, &errOut, map[string]any{"ch": make(chan int)})
	require.NoError(t, err)

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "json_error")
}
