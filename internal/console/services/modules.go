// internal/console/services/modules.go
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gashatech/adminhub/internal/console/api"
)

// Modules wraps the /api/modules endpoints.
type Modules struct {
	api *api.Client
}

func NewModules(client *api.Client) *Modules {
	return &Modules{api: client}
}

// ModuleInput is the create/update payload. The slug is always derived
// server-side from the display name.
type ModuleInput struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	LogoPath    string `json:"logo_path,omitempty"`
	Status      string `json:"status,omitempty"`
}

type ModuleList struct {
	Result
	Modules []Module
}

type ModuleResult struct {
	Result
	Module Module
}

type modulePage struct {
	Modules []Module `json:"modules"`
	Total   int64    `json:"total"`
}

// List fetches every module, paging until the reported total is
// reached. Modules is never nil on success.
func (s *Modules) List(ctx context.Context) ModuleList {
	all := []Module{}
	for offset := 0; ; offset += pageSize {
		env := s.api.Do(ctx, http.MethodGet,
			fmt.Sprintf("/api/modules?limit=%d&offset=%d", pageSize, offset), nil)

		var page modulePage
		if res := decodeInto(env, &page); !res.Success {
			return ModuleList{Result: res}
		}
		for i := range page.Modules {
			page.Modules[i].normalizeID()
		}
		all = append(all, page.Modules...)
		if len(page.Modules) == 0 || int64(len(all)) >= page.Total {
			break
		}
	}
	return ModuleList{Result: okResult(), Modules: all}
}

func (s *Modules) Get(ctx context.Context, id string) ModuleResult {
	if id == "" {
		return ModuleResult{Result: failResult("module id is required")}
	}
	return moduleResult(s.api.Do(ctx, http.MethodGet, "/api/modules/"+id, nil))
}

func (s *Modules) Create(ctx context.Context, in ModuleInput) ModuleResult {
	return moduleResult(s.api.Do(ctx, http.MethodPost, "/api/modules", in))
}

func (s *Modules) Update(ctx context.Context, id string, in ModuleInput) ModuleResult {
	if id == "" {
		return ModuleResult{Result: failResult("module id is required")}
	}
	return moduleResult(s.api.Do(ctx, http.MethodPut, "/api/modules/"+id, in))
}

// Delete removes a module. The backend cascades into its products and
// unassigns it from every user.
func (s *Modules) Delete(ctx context.Context, id string) Result {
	if id == "" {
		return failResult("module id is required")
	}
	return resultOf(s.api.Do(ctx, http.MethodDelete, "/api/modules/"+id, nil))
}

func moduleResult(env api.Envelope) ModuleResult {
	var m Module
	if res := decodeInto(env, &m); !res.Success {
		return ModuleResult{Result: res}
	}
	m.normalizeID()
	return ModuleResult{Result: okResult(), Module: m}
}
