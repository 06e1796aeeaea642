// Package output renders the stable JSON envelope the --json flag emits.
// Every command prints exactly one envelope: either data under "ok": true
// or a coded error, with trailing metadata for correlating invocations.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// SchemaVersion is bumped whenever the envelope shape changes.
const SchemaVersion = "1.0.0"

type SuccessEnvelope struct {
	Ok   bool `json:"ok"`
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

type ErrorEnvelope struct {
	Ok    bool      `json:"ok"`
	Error ErrorBody `json:"error"`
	Meta  Meta      `json:"meta"`
}

type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type Meta struct {
	TS            time.Time `json:"ts"`
	Command       string    `json:"command"`
	SchemaVersion string    `json:"schema_version"`
	Version       string    `json:"version,omitempty"`
	RequestID     string    `json:"request_id,omitempty"`
	DurationMS    float64   `json:"duration_ms,omitempty"`
}

func NewMeta(command, version string) Meta {
	return Meta{
		TS:            time.Now().UTC(),
		Command:       command,
		SchemaVersion: SchemaVersion,
		Version:       version,
	}
}

// WithDuration stamps the elapsed wall time since start, in milliseconds.
func WithDuration(meta Meta, start time.Time) Meta {
	meta.DurationMS = float64(time.Since(start).Milliseconds())
	return meta
}

func WriteSuccess(w io.Writer, meta Meta, data any) error {
	return emit(w, SuccessEnvelope{Ok: true, Data: data, Meta: meta})
}

func WriteError(w io.Writer, meta Meta, code, message string, details map[string]any) error {
	body := ErrorBody{Code: code, Message: message, Details: details}
	if body.Code == "" {
		body.Code = "unknown"
	}
	if body.Message == "" {
		body.Message = "unknown error"
	}
	return emit(w, ErrorEnvelope{Error: body, Meta: meta})
}

// emit writes one newline-terminated JSON object. HTML escaping is off so
// commands embedded in preset data survive the round trip verbatim.
func emit(w io.Writer, envelope any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(envelope); err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return nil
}
