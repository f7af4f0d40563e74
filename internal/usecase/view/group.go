package view

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meetmate/internal/usecase/errors"
)

// Group is the state of one independently fetched resource
type Group[T any] struct {
	Data    T               `json:"data" yaml:"data"`
	Loading bool            `json:"loading" yaml:"loading"`
	Err     error           `json:"-" yaml:"-"`
	Source  entities.Source `json:"source,omitempty" yaml:"source,omitempty"`
}

// base carries the mount lifecycle shared by every view. Fetch results are
// applied only while the mount that started them is still current.
type base struct {
	mu       sync.Mutex
	name     string
	ctx      context.Context
	cancel   context.CancelFunc
	mounted  bool
	gen      uint64
	fallback bool
	logger   *zap.Logger
}

func newBase(name string, fallback bool, logger *zap.Logger) base {
	return base{name: name, fallback: fallback, logger: logger.With(zap.String("view", name))}
}

// begin marks the view mounted and returns its lifetime context
func (b *base) begin(parent context.Context) context.Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
	}
	b.ctx, b.cancel = context.WithCancel(parent)
	b.mounted = true
	b.gen++
	b.logger.Debug("view.mount")
	return b.ctx
}

// end cancels in-flight requests; later results are dropped
func (b *base) end() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.mounted {
		return false
	}
	b.mounted = false
	b.cancel()
	b.logger.Debug("view.unmount")
	return true
}

// scope derives a request context that ends with the view or with ctx. It
// must be called with mu held.
func (b *base) scope(ctx context.Context) (context.Context, uint64, context.CancelFunc, error) {
	if !b.mounted {
		return nil, 0, nil, usecaseErrors.ErrNotMounted
	}
	reqCtx, cancel := context.WithCancel(b.ctx)
	stop := context.AfterFunc(ctx, cancel)
	return reqCtx, b.gen, func() {
		stop()
		cancel()
	}, nil
}

// current must be called with mu held
func (b *base) current(gen uint64) bool {
	return b.mounted && b.gen == gen
}

// IsMounted reports whether the view is mounted
func (b *base) IsMounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mounted
}

// fetcher is one fetch group prepared for a refresh
type fetcher struct {
	group string
	start func()
	load  func(ctx context.Context, gen uint64)
}

// fetch builds a fetcher that stores its outcome in grp. When mock is set
// and fallback is enabled a failed fetch stores the mock data tagged as
// such, keeping the error alongside.
func fetch[T any](b *base, group string, grp *Group[T], load func(context.Context) (T, error), mock func() T) fetcher {
	return fetcher{
		group: group,
		start: func() { grp.Loading = true },
		load: func(ctx context.Context, gen uint64) {
			data, err := load(ctx)

			b.mu.Lock()
			defer b.mu.Unlock()
			if !b.current(gen) {
				// a newer mount owns the group; after unmount nothing is loading
				if !b.mounted {
					grp.Loading = false
				}
				b.logger.Debug("view.fetch.discarded", zap.String("group", group))
				return
			}
			grp.Loading = false
			if err == nil {
				grp.Data, grp.Err, grp.Source = data, nil, entities.SourceLive
				return
			}

			b.logger.Warn("view.fetch.error", zap.String("group", group), zap.Error(err))
			grp.Err = err
			if mock != nil && b.fallback {
				grp.Data, grp.Source = mock(), entities.SourceMock
			}
		},
	}
}

// run executes fetchers in parallel; a failing group never blocks the rest
func (b *base) run(ctx context.Context, fetchers ...fetcher) error {
	b.mu.Lock()
	reqCtx, gen, done, err := b.scope(ctx)
	if err != nil {
		b.mu.Unlock()
		return err
	}
	for _, f := range fetchers {
		f.start()
	}
	b.mu.Unlock()
	defer done()

	var g errgroup.Group
	for _, f := range fetchers {
		g.Go(func() error {
			f.load(reqCtx, gen)
			return nil
		})
	}
	_ = g.Wait()
	return ctx.Err()
}

// mutate runs op within the view lifetime, then refreshes
func (b *base) mutate(ctx context.Context, action string, op func(ctx context.Context) error, refresh func(ctx context.Context) error) error {
	b.mu.Lock()
	reqCtx, _, done, err := b.scope(ctx)
	b.mu.Unlock()
	if err != nil {
		return err
	}
	err = op(reqCtx)
	done()
	if err != nil {
		b.logger.Error("view.action.error", zap.String("action", action), zap.Error(err))
		return err
	}
	b.logger.Info("view.action", zap.String("action", action))
	if refresh == nil {
		return nil
	}
	return refresh(ctx)
}
