package memory

import (
	"context"
	"errors"
	"strings"
	"time"

	"storerating/contexts/store-catalog/rating-ledger/domain/entities"
	domainerrors "storerating/contexts/store-catalog/rating-ledger/domain/errors"
	"storerating/internal/platform/memdb"

	"github.com/google/uuid"
)

// Store keeps ratings in a memdb shared with the other in-memory modules.
// Store aggregates returned from writes are read right after the write
// commits, so they may already include a later concurrent write.
type Store struct {
	db *memdb.DB
}

func NewStore(db *memdb.DB) *Store {
	if db == nil {
		db = memdb.New()
	}
	return &Store{db: db}
}

func (s *Store) DB() *memdb.DB {
	return s.db
}

func (s *Store) Upsert(_ context.Context, rating entities.Rating) (entities.SubmitResult, error) {
	storeID := strings.TrimSpace(rating.StoreID)
	if _, ok := s.db.GetStore(storeID); !ok {
		return entities.SubmitResult{}, domainerrors.ErrStoreNotFound
	}
	row, created, err := s.db.UpsertRating(
		strings.TrimSpace(rating.ID),
		strings.TrimSpace(rating.UserID),
		storeID,
		rating.Value,
		rating.UpdatedAt.UTC(),
	)
	if err != nil {
		if errors.Is(err, memdb.ErrForeignKeyViolation) {
			if _, ok := s.db.GetStore(storeID); !ok {
				return entities.SubmitResult{}, domainerrors.ErrStoreNotFound
			}
			return entities.SubmitResult{}, domainerrors.ErrRaterNotFound
		}
		return entities.SubmitResult{}, err
	}
	store, err := s.aggregate(storeID)
	if err != nil {
		return entities.SubmitResult{}, err
	}
	return entities.SubmitResult{Rating: toEntity(row), Created: created, Store: store}, nil
}

func (s *Store) GetRating(_ context.Context, ratingID string) (entities.Rating, error) {
	row, ok := s.db.GetRating(strings.TrimSpace(ratingID))
	if !ok {
		return entities.Rating{}, domainerrors.ErrRatingNotFound
	}
	return toEntity(row), nil
}

func (s *Store) GetByPair(_ context.Context, userID string, storeID string) (entities.Rating, error) {
	row, ok := s.db.GetRatingByPair(strings.TrimSpace(userID), strings.TrimSpace(storeID))
	if !ok {
		return entities.Rating{}, domainerrors.ErrRatingNotFound
	}
	return toEntity(row), nil
}

func (s *Store) UpdateValue(_ context.Context, ratingID string, value int, updatedAt time.Time) (entities.SubmitResult, error) {
	row, err := s.db.UpdateRatingValue(strings.TrimSpace(ratingID), value, updatedAt.UTC())
	if err != nil {
		if errors.Is(err, memdb.ErrNotFound) {
			return entities.SubmitResult{}, domainerrors.ErrRatingNotFound
		}
		return entities.SubmitResult{}, err
	}
	store, err := s.aggregate(row.StoreID)
	if err != nil {
		return entities.SubmitResult{}, err
	}
	return entities.SubmitResult{Rating: toEntity(row), Store: store}, nil
}

func (s *Store) Delete(_ context.Context, ratingID string) (entities.StoreAggregate, error) {
	row, err := s.db.DeleteRating(strings.TrimSpace(ratingID))
	if err != nil {
		if errors.Is(err, memdb.ErrNotFound) {
			return entities.StoreAggregate{}, domainerrors.ErrRatingNotFound
		}
		return entities.StoreAggregate{}, err
	}
	return s.aggregate(row.StoreID)
}

func (s *Store) ListByUser(_ context.Context, userID string) ([]entities.RatingView, error) {
	userID = strings.TrimSpace(userID)
	rows := s.db.Ratings(func(row memdb.RatingRow) bool { return row.UserID == userID })
	items := make([]entities.RatingView, 0, len(rows))
	for _, row := range rows {
		store, ok := s.db.GetStore(row.StoreID)
		if !ok {
			continue
		}
		items = append(items, entities.RatingView{
			Rating:       toEntity(row),
			StoreName:    store.Name,
			StoreAddress: store.Address,
		})
	}
	return items, nil
}

func (s *Store) ListByStore(_ context.Context, storeID string) ([]entities.RatingView, error) {
	storeID = strings.TrimSpace(storeID)
	rows := s.db.Ratings(func(row memdb.RatingRow) bool { return row.StoreID == storeID })
	items := make([]entities.RatingView, 0, len(rows))
	for _, row := range rows {
		user, ok := s.db.GetUser(row.UserID)
		if !ok {
			continue
		}
		items = append(items, entities.RatingView{
			Rating:    toEntity(row),
			UserName:  user.Name,
			UserEmail: user.Email,
		})
	}
	return items, nil
}

func (s *Store) StoreAggregate(_ context.Context, storeID string) (entities.StoreAggregate, error) {
	return s.aggregate(strings.TrimSpace(storeID))
}

func (s *Store) ValuesByUser(_ context.Context, userID string) (map[string]int, error) {
	userID = strings.TrimSpace(userID)
	out := make(map[string]int)
	for _, row := range s.db.Ratings(func(row memdb.RatingRow) bool { return row.UserID == userID }) {
		out[row.StoreID] = row.Value
	}
	return out, nil
}

func (s *Store) Stats(_ context.Context) (entities.Stats, error) {
	rows := s.db.Ratings(nil)
	stats := entities.Stats{TotalRatings: len(rows)}
	if len(rows) == 0 {
		return stats, nil
	}
	raters := make(map[string]struct{})
	stores := make(map[string]struct{})
	sum := 0
	for _, row := range rows {
		sum += row.Value
		raters[row.UserID] = struct{}{}
		stores[row.StoreID] = struct{}{}
	}
	stats.AverageRating = float64(sum) / float64(len(rows))
	stats.UniqueRaters = len(raters)
	stats.RatedStores = len(stores)
	return stats, nil
}

func (s *Store) ReconcileAggregates(_ context.Context) (int, error) {
	return s.db.ReconcileAggregates(), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) aggregate(storeID string) (entities.StoreAggregate, error) {
	row, ok := s.db.GetStore(storeID)
	if !ok {
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

func toEntity(row memdb.RatingRow) entities.Rating {
	return entities.Rating{
		ID:        row.ID,
		UserID:    row.UserID,
		StoreID:   row.StoreID,
		Value:     row.Value,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
