// internal/console/services/types.go
package services

import "time"

// The console types mirror the API's wire shapes. Each carries both
// identifier keys the backend has historically used ("id" from the
// feature handlers, "_id" from raw documents); normalizeID folds
// whichever was present into the canonical ID field.

type Module struct {
	ID          string    `json:"id"`
	MongoID     string    `json:"_id,omitempty"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description,omitempty"`
	LogoPath    string    `json:"logo_path,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *Module) normalizeID() {
	if m.ID == "" {
		m.ID = m.MongoID
	}
	m.MongoID = ""
}

type Product struct {
	ID          string   `json:"id"`
	MongoID     string   `json:"_id,omitempty"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	Module      string   `json:"module"`

	DownloadEnabled bool `json:"download_enabled"`
	RequestEnabled  bool `json:"request_enabled"`
	CatalogVisible  bool `json:"catalog_visible"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) normalizeID() {
	if p.ID == "" {
		p.ID = p.MongoID
	}
	p.MongoID = ""
}

type User struct {
	ID        string    `json:"id"`
	MongoID   string    `json:"_id,omitempty"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Modules   []string  `json:"modules"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) normalizeID() {
	if u.ID == "" {
		u.ID = u.MongoID
	}
	u.MongoID = ""
}

type Request struct {
	ID          string `json:"id"`
	MongoID     string `json:"_id,omitempty"`
	ProductID   string `json:"product_id,omitempty"`
	ProductName string `json:"product_name"`
	Module      string `json:"module,omitempty"`

	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company,omitempty"`
	Platform string `json:"platform,omitempty"`

	Status        string `json:"status"`
	DownloadCount int64  `json:"download_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Request) normalizeID() {
	if r.ID == "" {
		r.ID = r.MongoID
	}
	r.MongoID = ""
}

type Metric struct {
	ID      string            `json:"id"`
	MongoID string            `json:"_id,omitempty"`
	Name    string            `json:"name"`
	Value   float64           `json:"value"`
	Kind    string            `json:"kind"`
	Labels  map[string]string `json:"labels,omitempty"`
	Module  string            `json:"module,omitempty"`

	RecordedAt time.Time `json:"recorded_at"`
}

func (m *Metric) normalizeID() {
	if m.ID == "" {
		m.ID = m.MongoID
	}
	m.MongoID = ""
}

// ModuleTotal is one row of a per-module aggregate.
type ModuleTotal struct {
	Module string  `json:"module"`
	Total  float64 `json:"total"`
}

// Summary is the analytics summary endpoint's payload: the overview
// cards in one response.
type Summary struct {
	Users             int64            `json:"users"`
	Modules           int64            `json:"modules"`
	Products          int64            `json:"products"`
	Requests          map[string]int64 `json:"requests"`
	DownloadsByModule []ModuleTotal    `json:"downloads_by_module"`
	VisitsLast30Days  float64          `json:"visits_last_30_days"`
}

// UploadInfo describes a stored file as the upload endpoint reports
// it: FileName is the original pick, StoredName the unique name on
// disk.
type UploadInfo struct {
	Path        string `json:"path"`
	FileName    string `json:"file_name"`
	StoredName  string `json:"stored_name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	URL         string `json:"url,omitempty"`
}
