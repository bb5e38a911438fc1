package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"storerating/contexts/store-catalog/store-service/domain/entities"
	domainerrors "storerating/contexts/store-catalog/store-service/domain/errors"
	"storerating/contexts/store-catalog/store-service/ports"
	"storerating/internal/platform/db"
	"storerating/internal/shared/listing"

	"gorm.io/gorm"
)

const (
	constraintStoreEmail = "stores_email_key"
	constraintStoreOwner = "stores_owner_id_key"
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

func (r *Repository) CreateStore(ctx context.Context, store entities.Store) error {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := storeModelFromEntity(store)
	row.AverageRating = 0
	row.TotalRatings = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		switch {
		case db.IsUniqueViolation(err, constraintStoreOwner):
			return domainerrors.ErrOwnerAlreadyHasStore
		case db.IsUniqueViolation(err, ""):
			return domainerrors.ErrStoreEmailTaken
		case db.IsForeignKeyViolation(err):
			return domainerrors.ErrOwnerNotFound
		}
		return r.translate("store_create_failed", err, "store_id", store.ID)
	}
	return nil
}

func (r *Repository) GetStore(ctx context.Context, storeID string) (entities.Store, error) {
	return r.first(ctx, "store_get_failed", "id = ?", strings.TrimSpace(storeID))
}

func (r *Repository) GetStoreByOwner(ctx context.Context, ownerID string) (entities.Store, error) {
	return r.first(ctx, "store_get_by_owner_failed", "owner_id = ?", strings.TrimSpace(ownerID))
}

func (r *Repository) first(ctx context.Context, event string, query string, arg string) (entities.Store, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var row storeModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Store{}, domainerrors.ErrStoreNotFound
		}
		return entities.Store{}, r.translate(event, err, "lookup", arg)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListStores(ctx context.Context, filter ports.StoreFilter) ([]entities.Store, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx := r.db.WithContext(ctx).Model(&storeModel{})
	if filter.Name != "" {
		tx = tx.Where("name ILIKE ?", listing.LikePattern(filter.Name))
	}
	if filter.Email != "" {
		tx = tx.Where("email ILIKE ?", listing.LikePattern(filter.Email))
	}
	if filter.Address != "" {
		tx = tx.Where("address ILIKE ?", listing.LikePattern(filter.Address))
	}
	sortSpec := filter.Sort
	if sortSpec.Column == "" {
		sortSpec = listing.NewSort("", "", ports.StoreSortColumns)
	}

	var rows []storeModel
	if err := tx.Order(sortSpec.Clause("")).Order("id").Find(&rows).Error; err != nil {
		return nil, r.translate("store_list_failed", err)
	}
	items := make([]entities.Store, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateStore(ctx context.Context, storeID string, update ports.StoreUpdate) (entities.Store, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	storeID = strings.TrimSpace(storeID)
	var updated storeModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&storeModel{}).
			Where("id = ?", storeID).
			Updates(map[string]any{
				"name":       update.Name,
				"email":      update.Email,
				"address":    update.Address,
				"updated_at": update.UpdatedAt.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrStoreNotFound
		}
		return tx.Where("id = ?", storeID).First(&updated).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrStoreNotFound):
			return entities.Store{}, err
		case db.IsUniqueViolation(err, constraintStoreEmail):
			return entities.Store{}, domainerrors.ErrStoreEmailTaken
		}
		return entities.Store{}, r.translate("store_update_failed", err, "store_id", storeID)
	}
	return updated.toEntity(), nil
}

func (r *Repository) DeleteStore(ctx context.Context, storeID string) error {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	result := r.db.WithContext(ctx).Where("id = ?", strings.TrimSpace(storeID)).Delete(&storeModel{})
	if result.Error != nil {
		return r.translate("store_delete_failed", result.Error, "store_id", storeID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrStoreNotFound
	}
	return nil
}

func (r *Repository) Stats(ctx context.Context) (entities.Stats, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var row struct {
		Total   int
		Rated   int
		Average float64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE total_ratings > 0) AS rated,
		       COALESCE(AVG(average_rating) FILTER (WHERE total_ratings > 0), 0)::float8 AS average
		FROM stores`).Scan(&row).Error
	if err != nil {
		return entities.Stats{}, r.translate("store_stats_failed", err)
	}
	return entities.Stats{
		TotalStores:       row.Total,
		StoresWithRatings: row.Rated,
		OverallAverage:    row.Average,
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
		"module", "store-catalog/store-service",
		"layer", "adapter",
		"error", err.Error(),
	}
	fields = append(fields, attrs...)
	r.logger.Error("store repository operation failed", fields...)
}

type storeModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	Name          string    `gorm:"column:name"`
	Email         string    `gorm:"column:email"`
	Address       string    `gorm:"column:address"`
	OwnerID       *string   `gorm:"column:owner_id"`
	AverageRating float64   `gorm:"column:average_rating"`
	TotalRatings  int       `gorm:"column:total_ratings"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (storeModel) TableName() string {
	return "stores"
}

func storeModelFromEntity(store entities.Store) storeModel {
	var ownerID *string
	if trimmed := strings.TrimSpace(store.OwnerID); trimmed != "" {
		ownerID = &trimmed
	}
	return storeModel{
		ID:            strings.TrimSpace(store.ID),
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		OwnerID:       ownerID,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
		CreatedAt:     store.CreatedAt.UTC(),
		UpdatedAt:     store.UpdatedAt.UTC(),
	}
}

func (m storeModel) toEntity() entities.Store {
	ownerID := ""
	if m.OwnerID != nil {
		ownerID = *m.OwnerID
	}
	return entities.Store{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Address:       m.Address,
		OwnerID:       ownerID,
		AverageRating: m.AverageRating,
		TotalRatings:  m.TotalRatings,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}
