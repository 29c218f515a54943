package technet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Page страница списка в формате DRF. Бэкенд иногда отдаёт голый массив,
// тогда Count = len(Results), Next/Previous пустые.
type Page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
	Results  []T    `json:"results"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*p = Page[T]{Count: len(items), Results: items}
		return nil
	}

	var wrapper struct {
		Count    int     `json:"count"`
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
		Results  []T     `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return err
	}

	*p = Page[T]{Count: wrapper.Count, Results: wrapper.Results}
	if wrapper.Next != nil {
		p.Next = *wrapper.Next
	}
	if wrapper.Previous != nil {
		p.Previous = *wrapper.Previous
	}
	if p.Count == 0 {
		p.Count = len(p.Results)
	}

	return nil
}

type ListParams struct {
	Page     int
	PageSize int
	Search   string
	// Filters дополнительные query-параметры (id_tecnico, fecha_inicio, ...).
	Filters map[string]string
}

func (p ListParams) Values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	for k, v := range p.Filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}

// Resource CRUD над одной коллекцией technet (/technet/<name>/).
type Resource[T any] struct {
	client *Client
	path   string
}

func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: path}
}

func (r *Resource[T]) Path() string {
	return r.path
}

func (r *Resource[T]) itemURL(id string) string {
	return r.client.url(r.path+url.PathEscape(id)+"/", nil)
}

func (r *Resource[T]) List(ctx context.Context, params ListParams) (*Page[T], error) {
	const op = "technet.Resource.List"

	var page Page[T]
	if err := r.client.doJSON(ctx, http.MethodGet, r.client.url(r.path, params.Values()), nil, &page); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, r.path, err)
	}

	return &page, nil
}

// ListAll проходит по всем страницам, следуя ссылке next.
func (r *Resource[T]) ListAll(ctx context.Context, params ListParams) ([]T, error) {
	const op = "technet.Resource.ListAll"

	var all []T
	next := r.client.url(r.path, params.Values())
	seen := map[string]bool{}

	for next != "" {
		if seen[next] {
			return nil, fmt.Errorf("%s: %s: pagination loop at %s", op, r.path, next)
		}
		seen[next] = true

		var page Page[T]
		if err := r.client.doJSON(ctx, http.MethodGet, next, nil, &page); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, r.path, err)
		}

		all = append(all, page.Results...)
		next = page.Next
	}

	return all, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	const op = "technet.Resource.Get"

	var item T
	if err := r.client.doJSON(ctx, http.MethodGet, r.itemURL(id), nil, &item); err != nil {
		return nil, fmt.Errorf("%s: %s%s: %w", op, r.path, id, err)
	}

	return &item, nil
}

func (r *Resource[T]) Create(ctx context.Context, item T) (*T, error) {
	const op = "technet.Resource.Create"

	var created T
	if err := r.client.doJSON(ctx, http.MethodPost, r.client.url(r.path, nil), item, &created); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, r.path, err)
	}

	return &created, nil
}

func (r *Resource[T]) Update(ctx context.Context, id string, item T) (*T, error) {
	const op = "technet.Resource.Update"

	var updated T
	if err := r.client.doJSON(ctx, http.MethodPut, r.itemURL(id), item, &updated); err != nil {
		return nil, fmt.Errorf("%s: %s%s: %w", op, r.path, id, err)
	}

	return &updated, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	const op = "technet.Resource.Delete"

	if err := r.client.doJSON(ctx, http.MethodDelete, r.itemURL(id), nil, nil); err != nil {
		return fmt.Errorf("%s: %s%s: %w", op, r.path, id, err)
	}

	return nil
}
