package tasksync

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meetmate/internal/usecase/errors"
)

// DefaultConcurrency bounds in-flight sync requests when none is configured
const DefaultConcurrency = 4

// Report is the outcome of one batch. Results keep the input order.
type Report struct {
	Target  entities.SyncTarget       `json:"target" yaml:"target"`
	Results []entities.TaskSyncResult `json:"results" yaml:"results"`
}

// Synced returns the results that succeeded
func (r *Report) Synced() []entities.TaskSyncResult {
	return r.filter(true)
}

// Failed returns the results that did not succeed
func (r *Report) Failed() []entities.TaskSyncResult {
	return r.filter(false)
}

// Complete reports whether every item synced
func (r *Report) Complete() bool {
	return len(r.Failed()) == 0
}

func (r *Report) filter(synced bool) []entities.TaskSyncResult {
	var out []entities.TaskSyncResult
	for _, res := range r.Results {
		if res.Synced == synced {
			out = append(out, res)
		}
	}
	return out
}

// Service defines batch task synchronisation
type Service interface {
	// Sync pushes items to target and reports per item
	Sync(ctx context.Context, items []entities.ActionItem, target entities.SyncTarget) (*Report, error)
}

// Ensure Syncer implements Service interface
var _ Service = (*Syncer)(nil)

// Syncer pushes action items to external task systems
type Syncer struct {
	items       repositories.ItemRepository
	concurrency int
	logger      *zap.Logger
}

// NewSyncer creates a new task syncer
func NewSyncer(items repositories.ItemRepository, concurrency int, logger *zap.Logger) *Syncer {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Syncer{items: items, concurrency: concurrency, logger: logger}
}

// Sync pushes every item to target. One failing item never stops the others;
// the returned error is non-nil only for invalid input or cancellation.
// Items already linked to target are reported as synced without a request.
func (s *Syncer) Sync(ctx context.Context, items []entities.ActionItem, target entities.SyncTarget) (*Report, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %q", usecaseErrors.ErrUnknownSyncTarget, target)
	}
	if len(items) == 0 {
		return nil, usecaseErrors.ErrNoActionItems
	}

	report := &Report{Target: target, Results: make([]entities.TaskSyncResult, len(items))}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range items {
		item := items[i]
		if item.SyncedTo(target) {
			report.Results[i] = entities.TaskSyncResult{
				ItemID:     item.ID,
				Target:     target,
				ExternalID: item.ExternalTaskRefs[target],
				Synced:     true,
			}
			continue
		}
		g.Go(func() error {
			report.Results[i] = s.syncOne(gCtx, item, target)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return report, apperrors.ErrNetwork("POST", "/actions/sync", err)
	}

	synced := len(report.Synced())
	s.logger.Info("tasksync.batch",
		zap.String("target", string(target)),
		zap.Int("items", len(items)),
		zap.Int("synced", synced),
		zap.Int("failed", len(items)-synced),
	)
	return report, nil
}

func (s *Syncer) syncOne(ctx context.Context, item entities.ActionItem, target entities.SyncTarget) entities.TaskSyncResult {
	if item.ID == "" {
		return entities.TaskSyncResult{Target: target, Error: apperrors.ErrMissingID("action item").Message}
	}

	res, err := s.items.SyncAction(ctx, item.ID, target)
	if err != nil {
		s.logger.Warn("tasksync.item.error",
			zap.String("item_id", item.ID),
			zap.String("target", string(target)),
			zap.Error(err),
		)
		return entities.TaskSyncResult{
			ItemID: item.ID,
			Target: target,
			Error:  apperrors.UserMessage(err),
		}
	}

	out := *res
	out.ItemID = item.ID
	out.Target = target
	if !out.Synced && out.Error == "" {
		out.Error = "Not synced to " + string(target)
	}
	return out
}
