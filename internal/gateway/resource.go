package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/apierr"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewstate"
)

// Route is an extra endpoint of a resource. Path may contain "{id}".
type Route struct {
	Method string
	Path   string
	// Query, when set, sends the payload as query parameters instead of a
	// JSON body.
	Query func(payload any) url.Values
}

func (r Route) path(id int64) string {
	return strings.ReplaceAll(r.Path, "{id}", strconv.FormatInt(id, 10))
}

// Routes describes a REST collection mounted at Base with the conventional
// GET/POST on Base and GET/PUT/DELETE on Base/{id}.
type Routes[P any] struct {
	Base string
	// List maps screen params to the list endpoint; nil lists Base.
	List    func(params P) (path string, query url.Values, err error)
	Actions map[string]Route
	Bulk    map[string]Route
}

// Resource implements viewstate.Gateway for one collection.
type Resource[T any, P any] struct {
	client *Client
	routes Routes[P]
}

func NewResource[T any, P any](client *Client, routes Routes[P]) *Resource[T, P] {
	return &Resource[T, P]{client: client, routes: routes}
}

func (r *Resource[T, P]) List(ctx context.Context, params P) ([]T, error) {
	path, query := r.routes.Base, url.Values(nil)
	if r.routes.List != nil {
		var err error
		path, query, err = r.routes.List(params)
		if err != nil {
			return nil, apierr.Invalid(err)
		}
	}

	items := []T{}
	if err := r.client.Do(ctx, http.MethodGet, path, query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Resource[T, P]) Get(ctx context.Context, id int64) (T, error) {
	var item T
	err := r.client.Do(ctx, http.MethodGet, r.itemPath(id), nil, nil, &item)
	return item, err
}

func (r *Resource[T, P]) Create(ctx context.Context, payload any) (T, error) {
	var item T
	if err := validate(payload); err != nil {
		return item, err
	}
	err := r.client.Do(ctx, http.MethodPost, r.routes.Base, nil, payload, &item)
	return item, err
}

func (r *Resource[T, P]) Update(ctx context.Context, id int64, payload any) (T, error) {
	var item T
	if err := validate(payload); err != nil {
		return item, err
	}
	err := r.client.Do(ctx, http.MethodPut, r.itemPath(id), nil, payload, &item)
	return item, err
}

func (r *Resource[T, P]) Delete(ctx context.Context, id int64) error {
	return r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

func (r *Resource[T, P]) Action(ctx context.Context, id int64, verb string, payload any) (T, error) {
	var item T
	route, ok := r.routes.Actions[verb]
	if !ok {
		return item, fmt.Errorf("%w: %s %s", viewstate.ErrUnsupported, r.routes.Base, verb)
	}
	if err := validate(payload); err != nil {
		return item, err
	}
	query, body := route.split(payload)
	err := r.client.Do(ctx, route.Method, route.path(id), query, body, &item)
	return item, err
}

func (r *Resource[T, P]) BulkAction(ctx context.Context, verb string, payload any) ([]T, error) {
	route, ok := r.routes.Bulk[verb]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", viewstate.ErrUnsupported, r.routes.Base, verb)
	}
	if err := validate(payload); err != nil {
		return nil, err
	}
	items := []T{}
	query, body := route.split(payload)
	if err := r.client.Do(ctx, route.Method, route.Path, query, body, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Resource[T, P]) itemPath(id int64) string {
	return r.routes.Base + "/" + strconv.FormatInt(id, 10)
}

func (r Route) split(payload any) (url.Values, any) {
	if r.Query != nil {
		return r.Query(payload), nil
	}
	return nil, payload
}

type validatable interface {
	Validate() error
}

func validate(payload any) error {
	v, ok := payload.(validatable)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return apierr.Invalid(err)
	}
	return nil
}
