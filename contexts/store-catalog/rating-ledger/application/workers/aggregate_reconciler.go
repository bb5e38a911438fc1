package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	application "storerating/contexts/store-catalog/rating-ledger/application"
	"storerating/contexts/store-catalog/rating-ledger/ports"
)

// AggregateReconciler sweeps every store and repairs aggregates that no
// longer match their ratings.
type AggregateReconciler struct {
	Reconciler ports.Reconciler
	Interval   time.Duration
	Logger     *slog.Logger
}

func (j AggregateReconciler) RunOnce(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(j.Logger)
	repaired, err := j.Reconciler.ReconcileAggregates(ctx)
	if err != nil {
		logger.Error("aggregate reconcile sweep failed",
			"event", "rating_aggregate_reconcile_failed",
			"module", application.Module,
			"layer", "worker",
			"error", err.Error(),
		)
		return 0, err
	}
	if repaired > 0 {
		logger.Warn("aggregate drift repaired",
			"event", "rating_aggregate_drift_repaired",
			"module", application.Module,
			"layer", "worker",
			"repaired_count", repaired,
		)
	}
	return repaired, nil
}

// Run sweeps once immediately and then every Interval until ctx is done.
// Sweep failures are logged and retried on the next tick.
func (j AggregateReconciler) Run(ctx context.Context) error {
	interval := j.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := j.RunOnce(ctx); err != nil && errors.Is(err, context.Canceled) {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
