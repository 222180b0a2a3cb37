// internal/console/services/users.go
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gashatech/adminhub/internal/console/api"
)

// Users wraps the /api/users endpoints.
type Users struct {
	api *api.Client
}

func NewUsers(client *api.Client) *Users {
	return &Users{api: client}
}

type UserInput struct {
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     string   `json:"role"`
	Modules  []string `json:"modules"`
	Status   string   `json:"status,omitempty"`
}

// UserUpdate carries only the fields to change; omitted fields keep
// their stored values.
type UserUpdate struct {
	FullName string   `json:"full_name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Role     string   `json:"role,omitempty"`
	Status   string   `json:"status,omitempty"`
	Modules  []string `json:"modules,omitempty"`
}

type UserList struct {
	Result
	Users []User
}

type UserResult struct {
	Result
	User User
}

type userPage struct {
	Users []User `json:"users"`
	Total int64  `json:"total"`
}

// List fetches every user, paging until the reported total is reached.
// Users is never nil on success.
func (s *Users) List(ctx context.Context) UserList {
	all := []User{}
	for offset := 0; ; offset += pageSize {
		env := s.api.Do(ctx, http.MethodGet,
			fmt.Sprintf("/api/users?limit=%d&offset=%d", pageSize, offset), nil)

		var page userPage
		if res := decodeInto(env, &page); !res.Success {
			return UserList{Result: res}
		}
		for i := range page.Users {
			page.Users[i].normalizeID()
		}
		all = append(all, page.Users...)
		if len(page.Users) == 0 || int64(len(all)) >= page.Total {
			break
		}
	}
	return UserList{Result: okResult(), Users: all}
}

func (s *Users) Create(ctx context.Context, in UserInput) UserResult {
	return userResult(s.api.Do(ctx, http.MethodPost, "/api/users", in))
}

func (s *Users) Update(ctx context.Context, id string, in UserUpdate) UserResult {
	if id == "" {
		return UserResult{Result: failResult("user id is required")}
	}
	return userResult(s.api.Do(ctx, http.MethodPut, "/api/users/"+id, in))
}

// SetStatus changes only the user's status (active/inactive).
func (s *Users) SetStatus(ctx context.Context, id, status string) UserResult {
	return s.Update(ctx, id, UserUpdate{Status: status})
}

// SetModules replaces the user's module assignments wholesale.
func (s *Users) SetModules(ctx context.Context, id string, modules []string) UserResult {
	if id == "" {
		return UserResult{Result: failResult("user id is required")}
	}
	if modules == nil {
		modules = []string{}
	}
	body := map[string][]string{"modules": modules}
	return userResult(s.api.Do(ctx, http.MethodPut, "/api/users/"+id+"/modules", body))
}

func (s *Users) Delete(ctx context.Context, id string) Result {
	if id == "" {
		return failResult("user id is required")
	}
	return resultOf(s.api.Do(ctx, http.MethodDelete, "/api/users/"+id, nil))
}

func userResult(env api.Envelope) UserResult {
	var u User
	if res := decodeInto(env, &u); !res.Success {
		return UserResult{Result: res}
	}
	u.normalizeID()
	return UserResult{Result: okResult(), User: u}
}
