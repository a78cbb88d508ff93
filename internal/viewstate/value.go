package viewstate

import (
	"context"
	"log/slog"
)

type ValueConfig[T any] struct {
	Resource string
	Fetch    func(ctx context.Context) (T, error)
	AutoLoad bool
	Session  Session
	Logger   *slog.Logger
}

// Value is a controller for a single remote value, such as dashboard stats.
// It shares Controller's load ordering and error handling.
type Value[T any] struct {
	ctrl *Controller[T, struct{}]
}

func NewValue[T any](cfg ValueConfig[T]) *Value[T] {
	return &Value[T]{
		ctrl: NewController(Config[T, struct{}]{
			Resource: cfg.Resource,
			Gateway:  valueGateway[T]{fetch: cfg.Fetch},
			AutoLoad: cfg.AutoLoad,
			Session:  cfg.Session,
			Logger:   cfg.Logger,
		}),
	}
}

func (v *Value[T]) Load(ctx context.Context) error {
	return v.ctrl.Load(ctx, struct{}{})
}

// Current returns the last successfully loaded value.
func (v *Value[T]) Current() (T, bool) {
	s := v.ctrl.Snapshot()
	if !s.HasLoaded || len(s.Items) == 0 {
		var zero T
		return zero, false
	}
	return s.Items[0], true
}

func (v *Value[T]) Snapshot() Snapshot[T, struct{}] {
	return v.ctrl.Snapshot()
}

func (v *Value[T]) Subscribe() (<-chan Snapshot[T, struct{}], func()) {
	return v.ctrl.Subscribe()
}

func (v *Value[T]) Close() {
	v.ctrl.Close()
}

type valueGateway[T any] struct {
	fetch func(ctx context.Context) (T, error)
}

func (g valueGateway[T]) List(ctx context.Context, _ struct{}) ([]T, error) {
	v, err := g.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return []T{v}, nil
}

func (g valueGateway[T]) Get(context.Context, int64) (T, error) {
	var zero T
	return zero, ErrUnsupported
}

func (g valueGateway[T]) Create(context.Context, any) (T, error) {
	var zero T
	return zero, ErrUnsupported
}

func (g valueGateway[T]) Update(context.Context, int64, any) (T, error) {
	var zero T
	return zero, ErrUnsupported
}

func (g valueGateway[T]) Delete(context.Context, int64) error {
	return ErrUnsupported
}

func (g valueGateway[T]) Action(context.Context, int64, string, any) (T, error) {
	var zero T
	return zero, ErrUnsupported
}

func (g valueGateway[T]) BulkAction(context.Context, string, any) ([]T, error) {
	return nil, ErrUnsupported
}
