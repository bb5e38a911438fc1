package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"storerating/contexts/store-catalog/rating-ledger/domain/entities"
	domainerrors "storerating/contexts/store-catalog/rating-ledger/domain/errors"
	"storerating/internal/platform/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db      *gorm.DB
	logger  *slog.Logger
	timeout time.Duration
}

func NewRepository(gdb *gorm.DB, logger *slog.Logger, timeout time.Duration) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:      gdb,
		logger:  logger,
		timeout: timeout,
	}
}

// Upsert locks the store row, then inserts or overwrites the pair with a
// single INSERT ... ON CONFLICT, re-reads the surviving row and recomputes
// the aggregate, all in one transaction.
func (r *Repository) Upsert(ctx context.Context, rating entities.Rating) (entities.SubmitResult, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var result entities.SubmitResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := db.LockStores(tx, rating.StoreID)
		if err != nil {
			return err
		}
		if len(locked) == 0 {
			return domainerrors.ErrStoreNotFound
		}

		row := ratingModelFromEntity(rating)
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return err
		}

		var stored ratingModel
		if err := tx.Where("user_id = ? AND store_id = ?", rating.UserID, rating.StoreID).First(&stored).Error; err != nil {
			return err
		}
		if err := db.RecomputeStoreAggregates(tx, rating.StoreID); err != nil {
			return err
		}
		store, err := storeAggregate(tx, rating.StoreID)
		if err != nil {
			return err
		}
		result = entities.SubmitResult{
			Rating:  stored.toEntity(),
			Created: stored.ID == rating.ID,
			Store:   store,
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrStoreNotFound):
			return entities.SubmitResult{}, err
		case db.IsForeignKeyViolation(err):
			return entities.SubmitResult{}, domainerrors.ErrRaterNotFound
		}
		return entities.SubmitResult{}, r.translate("rating_upsert_failed", err,
			"store_id", rating.StoreID, "user_id", rating.UserID)
	}
	return result, nil
}

func (r *Repository) GetRating(ctx context.Context, ratingID string) (entities.Rating, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var row ratingModel
	err := r.db.WithContext(ctx).Where("id = ?", strings.TrimSpace(ratingID)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Rating{}, domainerrors.ErrRatingNotFound
		}
		return entities.Rating{}, r.translate("rating_get_failed", err, "rating_id", ratingID)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetByPair(ctx context.Context, userID string, storeID string) (entities.Rating, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var row ratingModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", strings.TrimSpace(userID), strings.TrimSpace(storeID)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Rating{}, domainerrors.ErrRatingNotFound
		}
		return entities.Rating{}, r.translate("rating_get_by_pair_failed", err, "store_id", storeID)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateValue(ctx context.Context, ratingID string, value int, updatedAt time.Time) (entities.SubmitResult, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var result entities.SubmitResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockRatingStore(tx, ratingID)
		if err != nil {
			return err
		}
		update := tx.Model(&ratingModel{}).
			Where("id = ?", current.ID).
			Updates(map[string]any{"rating": value, "updated_at": updatedAt.UTC()})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return domainerrors.ErrRatingNotFound
		}
		if err := db.RecomputeStoreAggregates(tx, current.StoreID); err != nil {
			return err
		}
		var stored ratingModel
		if err := tx.Where("id = ?", current.ID).First(&stored).Error; err != nil {
			return err
		}
		store, err := storeAggregate(tx, current.StoreID)
		if err != nil {
			return err
		}
		result = entities.SubmitResult{Rating: stored.toEntity(), Store: store}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrRatingNotFound) {
			return entities.SubmitResult{}, err
		}
		return entities.SubmitResult{}, r.translate("rating_update_failed", err, "rating_id", ratingID)
	}
	return result, nil
}

func (r *Repository) Delete(ctx context.Context, ratingID string) (entities.StoreAggregate, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var store entities.StoreAggregate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockRatingStore(tx, ratingID)
		if err != nil {
			return err
		}
		deleted := tx.Where("id = ?", current.ID).Delete(&ratingModel{})
		if deleted.Error != nil {
			return deleted.Error
		}
		if deleted.RowsAffected == 0 {
			return domainerrors.ErrRatingNotFound
		}
		if err := db.RecomputeStoreAggregates(tx, current.StoreID); err != nil {
			return err
		}
		store, err = storeAggregate(tx, current.StoreID)
		return err
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrRatingNotFound) {
			return entities.StoreAggregate{}, err
		}
		return entities.StoreAggregate{}, r.translate("rating_delete_failed", err, "rating_id", ratingID)
	}
	return store, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]entities.RatingView, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rows []ratingViewRow
	err := r.db.WithContext(ctx).
		Table("ratings AS r").
		Select("r.id, r.user_id, r.store_id, r.rating, r.created_at, r.updated_at, s.name AS store_name, s.address AS store_address").
		Joins("JOIN stores s ON s.id = r.store_id").
		Where("r.user_id = ?", strings.TrimSpace(userID)).
		Order("r.updated_at DESC").
		Order("r.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, r.translate("rating_list_by_user_failed", err, "user_id", userID)
	}
	return toViews(rows), nil
}

func (r *Repository) ListByStore(ctx context.Context, storeID string) ([]entities.RatingView, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rows []ratingViewRow
	err := r.db.WithContext(ctx).
		Table("ratings AS r").
		Select("r.id, r.user_id, r.store_id, r.rating, r.created_at, r.updated_at, u.name AS user_name, u.email AS user_email").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.store_id = ?", strings.TrimSpace(storeID)).
		Order("r.updated_at DESC").
		Order("r.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, r.translate("rating_list_by_store_failed", err, "store_id", storeID)
	}
	return toViews(rows), nil
}

func (r *Repository) StoreAggregate(ctx context.Context, storeID string) (entities.StoreAggregate, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	store, err := storeAggregate(r.db.WithContext(ctx), strings.TrimSpace(storeID))
	if err != nil && !errors.Is(err, domainerrors.ErrStoreNotFound) {
		return entities.StoreAggregate{}, r.translate("rating_store_aggregate_failed", err, "store_id", storeID)
	}
	return store, err
}

func (r *Repository) ValuesByUser(ctx context.Context, userID string) (map[string]int, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rows []struct {
		StoreID string
		Rating  int
	}
	err := r.db.WithContext(ctx).
		Model(&ratingModel{}).
		Select("store_id, rating").
		Where("user_id = ?", strings.TrimSpace(userID)).
		Scan(&rows).Error
	if err != nil {
		return nil, r.translate("rating_values_by_user_failed", err, "user_id", userID)
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.StoreID] = row.Rating
	}
	return out, nil
}

func (r *Repository) Stats(ctx context.Context) (entities.Stats, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var row struct {
		Total   int
		Average float64
		Raters  int
		Stores  int
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS total,
		       COALESCE(AVG(rating), 0)::float8 AS average,
		       COUNT(DISTINCT user_id) AS raters,
		       COUNT(DISTINCT store_id) AS stores
		FROM ratings`).Scan(&row).Error
	if err != nil {
		return entities.Stats{}, r.translate("rating_stats_failed", err)
	}
	return entities.Stats{
		TotalRatings:  row.Total,
		AverageRating: row.Average,
		UniqueRaters:  row.Raters,
		RatedStores:   row.Stores,
	}, nil
}

// ReconcileAggregates recomputes each drifted store under its own lock. The
// scan and every per-store transaction get their own timeout.
func (r *Repository) ReconcileAggregates(ctx context.Context) (int, error) {
	drifted, err := r.driftedStores(ctx)
	if err != nil {
		return 0, r.translate("rating_reconcile_scan_failed", err)
	}
	repaired := 0
	for _, storeID := range drifted {
		if err := r.reconcileStore(ctx, storeID); err != nil {
			return repaired, r.translate("rating_reconcile_store_failed", err, "store_id", storeID)
		}
		repaired++
	}
	return repaired, nil
}

func (r *Repository) driftedStores(ctx context.Context) ([]string, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()
	return db.DriftedStoreIDs(r.db.WithContext(ctx))
}

func (r *Repository) reconcileStore(ctx context.Context, storeID string) error {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := db.LockStores(tx, storeID)
		if err != nil || len(locked) == 0 {
			return err
		}
		return db.RecomputeStoreAggregates(tx, storeID)
	})
}

// lockRatingStore finds the rating and locks its store before anything is
// written, keeping the lock order store-first like Upsert.
func lockRatingStore(tx *gorm.DB, ratingID string) (ratingModel, error) {
	var current ratingModel
	if err := tx.Where("id = ?", strings.TrimSpace(ratingID)).First(&current).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ratingModel{}, domainerrors.ErrRatingNotFound
		}
		return ratingModel{}, err
	}
	if _, err := db.LockStores(tx, current.StoreID); err != nil {
		return ratingModel{}, err
	}
	return current, nil
}

func storeAggregate(tx *gorm.DB, storeID string) (entities.StoreAggregate, error) {
	var row struct {
		ID            string
		Name          string
		Address       string
		AverageRating float64
		TotalRatings  int
	}
	result := tx.Table("stores").
		Select("id, name, address, average_rating, total_ratings").
		Where("id = ?", storeID).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return entities.StoreAggregate{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.StoreAggregate{}, domainerrors.ErrStoreNotFound
	}
	return entities.StoreAggregate{
		StoreID:       row.ID,
		Name:          row.Name,
		Address:       row.Address,
		AverageRating: row.AverageRating,
		TotalRatings:  row.TotalRatings,
	}, nil
}

func (r *Repository) translate(event string, err error, attrs ...any) error {
	r.logError(event, err, attrs...)
	if db.IsUnavailable(err) {
		return domainerrors.ErrServiceUnavailable
	}
	return err
}

func (r *Repository) logError(event string, err error, attrs ...any) {
	fields := []any{
		"event", event,
		"module", "store-catalog/rating-ledger",
		"layer", "adapter",
		"error", err.Error(),
	}
	fields = append(fields, attrs...)
	r.logger.Error("rating repository operation failed", fields...)
}

type ratingModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id"`
	StoreID   string    `gorm:"column:store_id"`
	Rating    int       `gorm:"column:rating"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ratingModel) TableName() string {
	return "ratings"
}

type ratingViewRow struct {
	ratingModel
	StoreName    string `gorm:"column:store_name"`
	StoreAddress string `gorm:"column:store_address"`
	UserName     string `gorm:"column:user_name"`
	UserEmail    string `gorm:"column:user_email"`
}

func ratingModelFromEntity(rating entities.Rating) ratingModel {
	return ratingModel{
		ID:        strings.TrimSpace(rating.ID),
		UserID:    strings.TrimSpace(rating.UserID),
		StoreID:   strings.TrimSpace(rating.StoreID),
		Rating:    rating.Value,
		CreatedAt: rating.CreatedAt.UTC(),
		UpdatedAt: rating.UpdatedAt.UTC(),
	}
}

func (m ratingModel) toEntity() entities.Rating {
	return entities.Rating{
		ID:        m.ID,
		UserID:    m.UserID,
		StoreID:   m.StoreID,
		Value:     m.Rating,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func toViews(rows []ratingViewRow) []entities.RatingView {
	items := make([]entities.RatingView, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.RatingView{
			Rating:       row.ratingModel.toEntity(),
			StoreName:    row.StoreName,
			StoreAddress: row.StoreAddress,
			UserName:     row.UserName,
			UserEmail:    row.UserEmail,
		})
	}
	return items
}
