package cli

import (
	"encoding/json"
	"io"

	"github.com/rileyhilliard/slability/internal/errors"
)

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ErrCodeUnknown is used for errors that carry no structured code.
const ErrCodeUnknown = "UNKNOWN"

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: true,
		Data:    data,
	})
}

// WriteJSONResult writes data with an error alongside it, for commands that
// produce a report and still fail (e.g. status with offline endpoints).
func WriteJSONResult(w io.Writer, data interface{}, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: err == nil,
		Data:    data,
		Error:   ErrorToJSON(err),
	})
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	})
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError, keeping the structured
// code when there is one.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	if structured, ok := errors.As(err); ok {
		return &JSONError{
			Code:       structured.Code,
			Message:    structured.Message,
			Suggestion: structured.Suggestion,
		}
	}

	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}
