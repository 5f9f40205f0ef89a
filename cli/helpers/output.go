package helpers

import (
	"encoding/json"
	"fmt"
	"time"
)

// JSONFormatter renders command results as a stable envelope for pipes and
// scripting.
type JSONFormatter struct {
	Indent bool
}

// NewJSONFormatter creates a formatter.
func NewJSONFormatter(indent bool) *JSONFormatter {
	return &JSONFormatter{Indent: indent}
}

type jsonEnvelope struct {
	Status    string    `json:"status"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// FormatSuccess renders a success envelope around data.
func (f *JSONFormatter) FormatSuccess(data any) (string, error) {
	return f.marshal(jsonEnvelope{Status: "success", Data: data, Timestamp: time.Now().UTC()})
}

// FormatError renders an error envelope.
func (f *JSONFormatter) FormatError(err error) (string, error) {
	return f.marshal(jsonEnvelope{Status: "error", Error: err.Error(), Timestamp: time.Now().UTC()})
}

func (f *JSONFormatter) marshal(env jsonEnvelope) (string, error) {
	var (
		out []byte
		err error
	)
	if f.Indent {
		out, err = json.MarshalIndent(env, "", "  ")
	} else {
		out, err = json.Marshal(env)
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode output: %w", err)
	}
	return string(out), nil
}
