// internal/console/dashboard/state.go
package dashboard

import "strings"

// Phase is where a list is in its fetch lifecycle.
type Phase string

const (
	Idle    Phase = "idle"
	Loading Phase = "loading"
	Loaded  Phase = "loaded"
	Errored Phase = "errored"
)

// ListState is one entity list plus its phase. Items always holds the
// last successfully loaded rows: a refresh in flight or a failed one
// never clears them, so the operator keeps a usable (stale) view.
type ListState[T any] struct {
	Phase Phase
	Items []T
	Err   string
}

// The mark* functions are the only code that mutates a ListState.
// Every transition the controller performs goes through exactly one
// of them, under the controller's lock.

func markLoading[T any](s *ListState[T]) {
	s.Phase = Loading
	s.Err = ""
}

func markLoaded[T any](s *ListState[T], items []T) {
	s.Phase = Loaded
	s.Items = items
	s.Err = ""
}

func markErrored[T any](s *ListState[T], msg string) {
	s.Phase = Errored
	s.Err = msg
}

// listKey identifies a list for fetch-token bookkeeping.
type listKey string

const (
	listModules   listKey = "modules"
	listUsers     listKey = "users"
	listProducts  listKey = "products"
	listRequests  listKey = "requests"
	listDownloads listKey = "downloads"
)

// DerivedStats is recomputed from the loaded lists after every apply
// step that changes one of them; it is never fetched as-is.
type DerivedStats struct {
	TotalUsers    int
	TotalModules  int
	ActiveModules int

	TotalRequests     int
	PendingRequests   int
	CompletedRequests int

	// RequestsByModule groups case-insensitively (request submissions
	// carry operator-typed module names); DownloadsByModule groups on
	// the exact recorded slug.
	RequestsByModule  map[string]int
	DownloadsByModule map[string]float64
}

// recomputeStats rebuilds the derived numbers from the current lists.
// Caller holds c.mu.
func (c *Controller) recomputeStats() {
	s := DerivedStats{
		RequestsByModule:  make(map[string]int),
		DownloadsByModule: make(map[string]float64),
	}

	s.TotalUsers = len(c.users.Items)

	s.TotalModules = len(c.modules.Items)
	for _, m := range c.modules.Items {
		if m.Status == "active" {
			s.ActiveModules++
		}
	}

	s.TotalRequests = len(c.requests.Items)
	for _, r := range c.requests.Items {
		switch r.Status {
		case "pending":
			s.PendingRequests++
		case "completed":
			s.CompletedRequests++
		}
		if r.Module != "" {
			s.RequestsByModule[strings.ToLower(r.Module)]++
		}
	}

	for _, d := range c.downloads.Items {
		s.DownloadsByModule[d.Module] += d.Value
	}

	c.derived = s
}
