// internal/console/services/services.go

// Package services wraps the AdminHub API in one service per entity
// type. Every method returns a service-specific envelope embedding
// Result; failures never surface as Go errors, and nothing here
// retries or caches.
package services

import (
	"encoding/json"

	"github.com/gashatech/adminhub/internal/console/api"
)

// pageSize is how many rows each list call asks for; it matches the
// API's per-page ceiling, so full listings page through in chunks of
// this size.
const pageSize = 200

// Result is the uniform outcome every service method reports. On
// failure, Error carries the server's message when one parsed, else
// the client's generic network-error string.
type Result struct {
	Success bool
	Error   string
}

func okResult() Result { return Result{Success: true} }

func failResult(msg string) Result { return Result{Success: false, Error: msg} }

// resultOf lifts an API envelope's outcome into a Result, ignoring any
// data payload.
func resultOf(env api.Envelope) Result {
	if env.Success {
		return okResult()
	}
	if env.Error == "" {
		return failResult("request failed")
	}
	return failResult(env.Error)
}

// decodeInto unmarshals a successful envelope's data into out. A data
// payload the caller's type cannot hold is reported as a failure, not
// a panic.
func decodeInto(env api.Envelope, out any) Result {
	if !env.Success {
		return resultOf(env)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return failResult("could not decode server response")
		}
	}
	return okResult()
}
