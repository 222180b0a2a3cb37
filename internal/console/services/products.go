// internal/console/services/products.go
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gashatech/adminhub/internal/console/api"
)

// Products wraps the /api/products endpoints.
type Products struct {
	api *api.Client
}

func NewProducts(client *api.Client) *Products {
	return &Products{api: client}
}

type ProductInput struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Description     string   `json:"description,omitempty"`
	Features        []string `json:"features,omitempty"`
	Module          string   `json:"module"`
	DownloadEnabled bool     `json:"download_enabled"`
	RequestEnabled  bool     `json:"request_enabled"`
	CatalogVisible  bool     `json:"catalog_visible"`
	Status          string   `json:"status,omitempty"`
}

// ProductUpdate uses pointers for the capability flags so an omitted
// flag keeps its stored value while an explicit false turns it off.
type ProductUpdate struct {
	Name            string   `json:"name,omitempty"`
	Category        string   `json:"category,omitempty"`
	Description     string   `json:"description,omitempty"`
	Features        []string `json:"features,omitempty"`
	Status          string   `json:"status,omitempty"`
	DownloadEnabled *bool    `json:"download_enabled,omitempty"`
	RequestEnabled  *bool    `json:"request_enabled,omitempty"`
	CatalogVisible  *bool    `json:"catalog_visible,omitempty"`
}

type ProductList struct {
	Result
	Products []Product
}

type ProductResult struct {
	Result
	Product Product
}

type productPage struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
}

// List fetches every product, paging until the reported total is
// reached. Products is never nil on success.
func (s *Products) List(ctx context.Context) ProductList {
	all := []Product{}
	for offset := 0; ; offset += pageSize {
		env := s.api.Do(ctx, http.MethodGet,
			fmt.Sprintf("/api/products?limit=%d&offset=%d", pageSize, offset), nil)

		var page productPage
		if res := decodeInto(env, &page); !res.Success {
			return ProductList{Result: res}
		}
		for i := range page.Products {
			page.Products[i].normalizeID()
		}
		all = append(all, page.Products...)
		if len(page.Products) == 0 || int64(len(all)) >= page.Total {
			break
		}
	}
	return ProductList{Result: okResult(), Products: all}
}

// GetByModule returns the products owned by one module in the order
// the full listing returned them. This fetches the entire collection
// and filters client-side, so it costs O(total products) per call.
// TODO: switch to the API's module query parameter once the catalog
// outgrows a few hundred products.
func (s *Products) GetByModule(ctx context.Context, module string) ProductList {
	if module == "" {
		return ProductList{Result: failResult("module is required")}
	}

	list := s.List(ctx)
	if !list.Success {
		return list
	}

	owned := []Product{}
	for _, p := range list.Products {
		if p.Module == module {
			owned = append(owned, p)
		}
	}
	return ProductList{Result: okResult(), Products: owned}
}

func (s *Products) Create(ctx context.Context, in ProductInput) ProductResult {
	return productResult(s.api.Do(ctx, http.MethodPost, "/api/products", in))
}

func (s *Products) Update(ctx context.Context, id string, in ProductUpdate) ProductResult {
	if id == "" {
		return ProductResult{Result: failResult("product id is required")}
	}
	return productResult(s.api.Do(ctx, http.MethodPut, "/api/products/"+id, in))
}

func (s *Products) Delete(ctx context.Context, id string) Result {
	if id == "" {
		return failResult("product id is required")
	}
	return resultOf(s.api.Do(ctx, http.MethodDelete, "/api/products/"+id, nil))
}

func productResult(env api.Envelope) ProductResult {
	var p Product
	if res := decodeInto(env, &p); !res.Success {
		return ProductResult{Result: res}
	}
	p.normalizeID()
	return ProductResult{Result: okResult(), Product: p}
}
