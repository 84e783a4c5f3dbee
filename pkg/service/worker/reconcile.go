package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/keepsake-app/keepsake/pkg/domain/interfaces"
	"github.com/keepsake-app/keepsake/pkg/domain/model"
	"github.com/keepsake-app/keepsake/pkg/domain/types"
	"github.com/keepsake-app/keepsake/pkg/utils/logging"
)

// DanglingRef is a group member id that no longer resolves to a memory.
type DanglingRef struct {
	GroupID  types.GroupID
	MemoryID types.MemoryID
}

// ReconcileWorker periodically scans groups for member ids that no longer
// resolve to a live memory and reports them via the logger. Member lists are
// weak references, so the worker never mutates anything: a dangling id is
// expected after a memory delete and only worth surfacing, not repairing.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
type ReconcileWorker struct {
	repo     interfaces.Repository
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewReconcileWorker(repo interfaces.Repository, interval time.Duration) *ReconcileWorker {
	return &ReconcileWorker{
		repo:     repo,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background scan loop. Does not block server startup.
func (w *ReconcileWorker) Start(ctx context.Context) error {
	logging.Default().Info("reconcile worker starting", "interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion.
func (w *ReconcileWorker) Stop() {
	logging.Default().Info("reconcile worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("reconcile worker stopped")
}

func (w *ReconcileWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.scan(ctx); err != nil {
		logging.Default().Error("reconcile scan failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.scan(ctx); err != nil {
				logging.Default().Error("reconcile scan failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("reconcile worker context cancelled")
			return
		}
	}
}

func (w *ReconcileWorker) scan(ctx context.Context) error {
	startTime := time.Now()

	dangling, err := Check(ctx, w.repo)
	if err != nil {
		return err
	}

	for _, ref := range dangling {
		logging.Default().Warn("group references a deleted memory",
			"groupId", ref.GroupID, "memoryId", ref.MemoryID)
	}

	logging.Default().Info("reconcile scan completed",
		"dangling", len(dangling),
		"duration", time.Since(startTime).String())

	return nil
}

// Check runs a single reconciliation pass: it loads memories and groups
// concurrently, then reports every member id without a matching memory.
// Duplicated dangling ids in one group are reported once per occurrence.
func Check(ctx context.Context, repo interfaces.Repository) ([]DanglingRef, error) {
	var memories []*model.Memory
	var groups []*model.Group

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		memories, err = repo.Memory().List(egCtx)
		if err != nil {
			return goerr.Wrap(err, "failed to list memories")
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		groups, err = repo.Group().List(egCtx)
		if err != nil {
			return goerr.Wrap(err, "failed to list groups")
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	live := make(map[types.MemoryID]struct{}, len(memories))
	for _, m := range memories {
		live[m.ID] = struct{}{}
	}

	var dangling []DanglingRef
	for _, g := range groups {
		for _, id := range g.MemoryIDs {
			if _, ok := live[id]; !ok {
				dangling = append(dangling, DanglingRef{GroupID: g.ID, MemoryID: id})
			}
		}
	}

	return dangling, nil
}
