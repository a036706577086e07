package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/rileyhilliard/slability/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONSuccess(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, map[string]string{"key": "value"}))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	dataMap, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", dataMap["key"])
}

func TestWriteJSONFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "structured",
			err:        errors.New(errors.ErrConfig, "Nothing to monitor", "Pass -a"),
			code:       errors.ErrConfig,
			message:    "Nothing to monitor",
			suggestion: "Pass -a",
		},
		{
			name:    "wrapped structured",
			err:     fmt.Errorf("loading: %w", errors.New(errors.ErrProbe, "down", "")),
			code:    errors.ErrProbe,
			message: "down",
		},
		{
			name:    "plain",
			err:     stderrors.New("boom"),
			code:    ErrCodeUnknown,
			message: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteJSONFromError(&buf, tt.err))

			var env JSONEnvelope
			require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.Equal(t, tt.message, env.Error.Message)
			assert.Equal(t, tt.suggestion, env.Error.Suggestion)
		})
	}
}

func TestWriteJSONResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONResult(&buf, []int{1, 2}, nil))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	assert.Len(t, env.Data, 2)
}

func TestErrorToJSON_Nil(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))
}
