// internal/app/system/envelope/envelope.go

// Package envelope defines the uniform response shape every API endpoint
// returns: {success, data?, message?, error?}. Handlers never write raw
// payloads; they go through OK/Fail so the contract stays consistent.
package envelope

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape shared by the API and the console client.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// OK writes a success envelope with the given payload and optional message.
func OK(w http.ResponseWriter, status int, data any, message string) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			Fail(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
		raw = b
	}
	write(w, status, Envelope{Success: true, Data: raw, Message: message})
}

// Fail writes a failure envelope carrying an operator-facing error string.
func Fail(w http.ResponseWriter, status int, errMsg string) {
	write(w, status, Envelope{Success: false, Error: errMsg})
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// Decode reads a JSON request body into dst, capped at maxBytes. On
// failure it writes a 400 failure envelope and returns false; handlers
// just return when it does.
func Decode(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		Fail(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
