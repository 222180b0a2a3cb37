// internal/console/services/stats.go
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gashatech/adminhub/internal/console/api"
)

// downloadsMetric is the metric name the API records per released
// download.
const downloadsMetric = "downloads"

// Stats fetches the read-only data the dashboard's overview cards and
// per-module breakdowns are built from.
type Stats struct {
	api *api.Client
}

func NewStats(client *api.Client) *Stats {
	return &Stats{api: client}
}

type SummaryResult struct {
	Result
	Summary Summary
}

type RequestList struct {
	Result
	Requests []Request
}

type MetricList struct {
	Result
	Metrics []Metric
}

type requestPage struct {
	Requests []Request `json:"requests"`
	Total    int64     `json:"total"`
}

type metricPage struct {
	Metrics []Metric `json:"metrics"`
	Total   int64    `json:"total"`
}

// Summary returns the precomputed dashboard summary in one round trip.
func (s *Stats) Summary(ctx context.Context) SummaryResult {
	env := s.api.Do(ctx, http.MethodGet, "/api/analytics/summary", nil)

	var sum Summary
	if res := decodeInto(env, &sum); !res.Success {
		return SummaryResult{Result: res}
	}
	if sum.Requests == nil {
		sum.Requests = map[string]int64{}
	}
	return SummaryResult{Result: okResult(), Summary: sum}
}

// Requests fetches every download request, paging until the reported
// total is reached.
func (s *Stats) Requests(ctx context.Context) RequestList {
	all := []Request{}
	for offset := 0; ; offset += pageSize {
		env := s.api.Do(ctx, http.MethodGet,
			fmt.Sprintf("/api/requests?limit=%d&offset=%d", pageSize, offset), nil)

		var page requestPage
		if res := decodeInto(env, &page); !res.Success {
			return RequestList{Result: res}
		}
		for i := range page.Requests {
			page.Requests[i].normalizeID()
		}
		all = append(all, page.Requests...)
		if len(page.Requests) == 0 || int64(len(all)) >= page.Total {
			break
		}
	}
	return RequestList{Result: okResult(), Requests: all}
}

// Downloads fetches every recorded download sample.
func (s *Stats) Downloads(ctx context.Context) MetricList {
	return s.metrics(ctx, downloadsMetric)
}

func (s *Stats) metrics(ctx context.Context, name string) MetricList {
	all := []Metric{}
	for offset := 0; ; offset += pageSize {
		env := s.api.Do(ctx, http.MethodGet,
			fmt.Sprintf("/api/analytics?name=%s&limit=%d&offset=%d",
				url.QueryEscape(name), pageSize, offset), nil)

		var page metricPage
		if res := decodeInto(env, &page); !res.Success {
			return MetricList{Result: res}
		}
		for i := range page.Metrics {
			page.Metrics[i].normalizeID()
		}
		all = append(all, page.Metrics...)
		if len(page.Metrics) == 0 || int64(len(all)) >= page.Total {
			break
		}
	}
	return MetricList{Result: okResult(), Metrics: all}
}
