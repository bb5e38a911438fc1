package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"storerating/contexts/identity-access/account-service/domain/entities"
	domainerrors "storerating/contexts/identity-access/account-service/domain/errors"
	"storerating/contexts/identity-access/account-service/ports"
	"storerating/internal/platform/db"
	"storerating/internal/shared/identity"
	"storerating/internal/shared/listing"

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

func (r *Repository) CreateUser(ctx context.Context, user entities.User) error {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return domainerrors.ErrEmailTaken
		}
		return r.translate("account_create_user_failed", err, "user_id", user.ID)
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (entities.User, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var row userModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, r.translate("account_get_user_failed", err, "user_id", userID)
	}
	return row.toEntity()
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var row userModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, r.translate("account_get_user_by_email_failed", err)
	}
	return row.toEntity()
}

func (r *Repository) ListUsers(ctx context.Context, filter ports.UserFilter) ([]entities.UserListing, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx := r.db.WithContext(ctx).
		Table("users AS u").
		Select(`u.id, u.name, u.email, u.password_hash, u.address, u.role, u.created_at, u.updated_at,
			s.id AS store_id, s.average_rating AS store_rating`).
		Joins("LEFT JOIN stores s ON s.owner_id = u.id")
	if filter.Name != "" {
		tx = tx.Where("u.name ILIKE ?", listing.LikePattern(filter.Name))
	}
	if filter.Email != "" {
		tx = tx.Where("u.email ILIKE ?", listing.LikePattern(filter.Email))
	}
	if filter.Address != "" {
		tx = tx.Where("u.address ILIKE ?", listing.LikePattern(filter.Address))
	}
	if filter.Role.Valid() {
		tx = tx.Where("u.role = ?", filter.Role.String())
	}
	sortSpec := filter.Sort
	if sortSpec.Column == "" {
		sortSpec = listing.NewSort("", "", ports.UserSortColumns)
	}

	var rows []userListingRow
	if err := tx.Order(sortSpec.Clause("u")).Order("u.id").Scan(&rows).Error; err != nil {
		return nil, r.translate("account_list_users_failed", err)
	}

	items := make([]entities.UserListing, 0, len(rows))
	for _, row := range rows {
		user, err := row.userModel.toEntity()
		if err != nil {
			return nil, err
		}
		item := entities.UserListing{User: user, StoreRating: row.StoreRating}
		if row.StoreID != nil {
			item.StoreID = *row.StoreID
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", strings.TrimSpace(userID)).
		Updates(map[string]any{
			"password_hash": passwordHash,
			"updated_at":    updatedAt.UTC(),
		})
	if result.Error != nil {
		return r.translate("account_update_password_failed", result.Error, "user_id", userID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

// DeleteUser locks the stores the user rated, then the user row, so no new
// rating by this user can land mid-delete. The FK cascade removes ratings,
// ownership is cleared by ON DELETE SET NULL, and the touched aggregates are
// recomputed before commit.
func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	userID = strings.TrimSpace(userID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rated, err := ratedStoreIDs(tx, userID)
		if err != nil {
			return err
		}
		if _, err := db.LockStores(tx, rated...); err != nil {
			return err
		}

		var found []string
		if err := tx.Table("users").
			Where("id = ?", userID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Pluck("id", &found).Error; err != nil {
			return err
		}
		if len(found) == 0 {
			return domainerrors.ErrUserNotFound
		}

		again, err := ratedStoreIDs(tx, userID)
		if err != nil {
			return err
		}
		affected := mergeIDs(rated, again)
		if _, err := db.LockStores(tx, affected...); err != nil {
			return err
		}

		if err := tx.Where("id = ?", userID).Delete(&userModel{}).Error; err != nil {
			return err
		}
		return db.RecomputeStoreAggregates(tx, affected...)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return err
		}
		return r.translate("account_delete_user_failed", err, "user_id", userID)
	}
	return nil
}

func (r *Repository) CountByRole(ctx context.Context) (map[identity.Role]int, error) {
	ctx, cancel := db.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rows []struct {
		Role  string
		Count int
	}
	if err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, r.translate("account_count_by_role_failed", err)
	}
	out := make(map[identity.Role]int, len(rows))
	for _, row := range rows {
		role, err := identity.ParseRole(row.Role)
		if err != nil {
			continue
		}
		out[role] = row.Count
	}
	return out, nil
}

func ratedStoreIDs(tx *gorm.DB, userID string) ([]string, error) {
	var ids []string
	err := tx.Table("ratings").
		Where("user_id = ?", userID).
		Distinct("store_id").
		Pluck("store_id", &ids).Error
	return ids, err
}

func mergeIDs(first []string, second []string) []string {
	seen := make(map[string]struct{}, len(first)+len(second))
	out := make([]string, 0, len(first)+len(second))
	for _, id := range append(append([]string(nil), first...), second...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
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
		"module", "identity-access/account-service",
		"layer", "adapter",
		"error", err.Error(),
	}
	fields = append(fields, attrs...)
	r.logger.Error("account repository operation failed", fields...)
}

type userModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	Address      *string   `gorm:"column:address"`
	Role         string    `gorm:"column:role"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string {
	return "users"
}

type userListingRow struct {
	userModel
	StoreID     *string  `gorm:"column:store_id"`
	StoreRating *float64 `gorm:"column:store_rating"`
}

func userModelFromEntity(user entities.User) userModel {
	var address *string
	if trimmed := strings.TrimSpace(user.Address); trimmed != "" {
		address = &trimmed
	}
	return userModel{
		ID:           strings.TrimSpace(user.ID),
		Name:         user.Name,
		Email:        strings.ToLower(strings.TrimSpace(user.Email)),
		PasswordHash: user.PasswordHash,
		Address:      address,
		Role:         user.Role.String(),
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}
}

func (m userModel) toEntity() (entities.User, error) {
	role, err := identity.ParseRole(m.Role)
	if err != nil {
		return entities.User{}, err
	}
	address := ""
	if m.Address != nil {
		address = *m.Address
	}
	return entities.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Address:      address,
		Role:         role,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}, nil
}
