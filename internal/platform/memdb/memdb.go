// Package memdb is the process-local storage engine behind every memory
// adapter. It enforces the same constraints as the Postgres schema (unique
// emails, one store per owner, one rating per user and store, cascades) so
// the memory and Postgres backends are interchangeable in tests and in
// STORAGE_DRIVER=memory deployments.
package memdb

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	ErrUniqueViolation     = errors.New("memdb: unique constraint violated")
	ErrForeignKeyViolation = errors.New("memdb: referenced row does not exist")
	ErrNotFound            = errors.New("memdb: row not found")
)

const (
	ConstraintUserEmail   = "users_email_key"
	ConstraintStoreEmail  = "stores_email_key"
	ConstraintStoreOwner  = "stores_owner_id_key"
	ConstraintRatingOwner = "ratings_user_store_key"
)

// UniqueError names the violated constraint and unwraps to ErrUniqueViolation.
type UniqueError struct {
	Constraint string
}

func (e *UniqueError) Error() string {
	return ErrUniqueViolation.Error() + ": " + e.Constraint
}

func (e *UniqueError) Unwrap() error {
	return ErrUniqueViolation
}

type UserRow struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type StoreRow struct {
	ID            string
	Name          string
	Email         string
	Address       string
	OwnerID       string
	AverageRating float64
	TotalRatings  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type RatingRow struct {
	ID        string
	UserID    string
	StoreID   string
	Value     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type pairKey struct {
	userID  string
	storeID string
}

// DB holds all three tables behind one lock. Every exported method is a
// single atomic unit, the in-memory analogue of one transaction.
type DB struct {
	mu sync.RWMutex

	users   map[string]UserRow
	stores  map[string]StoreRow
	ratings map[string]RatingRow

	userByEmail  map[string]string
	storeByEmail map[string]string
	storeByOwner map[string]string
	ratingByPair map[pairKey]string
}

func New() *DB {
	return &DB{
		users:        make(map[string]UserRow),
		stores:       make(map[string]StoreRow),
		ratings:      make(map[string]RatingRow),
		userByEmail:  make(map[string]string),
		storeByEmail: make(map[string]string),
		storeByOwner: make(map[string]string),
		ratingByPair: make(map[pairKey]string),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (db *DB) InsertUser(row UserRow) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.users[row.ID]; exists {
		return &UniqueError{Constraint: "users_pkey"}
	}
	key := emailKey(row.Email)
	if _, exists := db.userByEmail[key]; exists {
		return &UniqueError{Constraint: ConstraintUserEmail}
	}
	db.users[row.ID] = row
	db.userByEmail[key] = row.ID
	return nil
}

func (db *DB) GetUser(id string) (UserRow, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	row, ok := db.users[id]
	return row, ok
}

func (db *DB) GetUserByEmail(email string) (UserRow, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	id, ok := db.userByEmail[emailKey(email)]
	if !ok {
		return UserRow{}, false
	}
	return db.users[id], true
}

// Users returns a snapshot ordered by creation time, newest first.
func (db *DB) Users() []UserRow {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]UserRow, 0, len(db.users))
	for _, row := range db.users {
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (db *DB) UpdateUserPassword(id string, hash string, at time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	row, ok := db.users[id]
	if !ok {
		return ErrNotFound
	}
	row.PasswordHash = hash
	row.UpdatedAt = at
	db.users[id] = row
	return nil
}

// DeleteUser removes the user, cascades their ratings, detaches any store
// they owned and recomputes aggregates of every store that lost a rating.
func (db *DB) DeleteUser(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	row, ok := db.users[id]
	if !ok {
		return ErrNotFound
	}
	touched := make(map[string]struct{})
	for ratingID, rating := range db.ratings {
		if rating.UserID != id {
			continue
		}
		touched[rating.StoreID] = struct{}{}
		delete(db.ratingByPair, pairKey{userID: rating.UserID, storeID: rating.StoreID})
		delete(db.ratings, ratingID)
	}
	if storeID, owns := db.storeByOwner[id]; owns {
		store := db.stores[storeID]
		store.OwnerID = ""
		db.stores[storeID] = store
		delete(db.storeByOwner, id)
	}
	for storeID := range touched {
		db.recomputeLocked(storeID)
	}
	delete(db.userByEmail, emailKey(row.Email))
	delete(db.users, id)
	return nil
}

func (db *DB) InsertStore(row StoreRow) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.stores[row.ID]; exists {
		return &UniqueError{Constraint: "stores_pkey"}
	}
	key := emailKey(row.Email)
	if _, exists := db.storeByEmail[key]; exists {
		return &UniqueError{Constraint: ConstraintStoreEmail}
	}
	if row.OwnerID != "" {
		if _, exists := db.users[row.OwnerID]; !exists {
			return ErrForeignKeyViolation
		}
		if _, exists := db.storeByOwner[row.OwnerID]; exists {
			return &UniqueError{Constraint: ConstraintStoreOwner}
		}
		db.storeByOwner[row.OwnerID] = row.ID
	}
	row.AverageRating = 0
	row.TotalRatings = 0
	db.stores[row.ID] = row
	db.storeByEmail[key] = row.ID
	return nil
}

func (db *DB) GetStore(id string) (StoreRow, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	row, ok := db.stores[id]
	return row, ok
}

func (db *DB) GetStoreByOwner(ownerID string) (StoreRow, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	id, ok := db.storeByOwner[ownerID]
	if !ok {
		return StoreRow{}, false
	}
	return db.stores[id], true
}

// Stores returns a snapshot ordered by creation time, newest first.
func (db *DB) Stores() []StoreRow {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]StoreRow, 0, len(db.stores))
	for _, row := range db.stores {
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// UpdateStore replaces the descriptive columns. Aggregates and ownership are
// never touched here.
func (db *DB) UpdateStore(id string, name string, email string, address string, at time.Time) (StoreRow, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	row, ok := db.stores[id]
	if !ok {
		return StoreRow{}, ErrNotFound
	}
	oldKey, newKey := emailKey(row.Email), emailKey(email)
	if oldKey != newKey {
		if _, exists := db.storeByEmail[newKey]; exists {
			return StoreRow{}, &UniqueError{Constraint: ConstraintStoreEmail}
		}
		delete(db.storeByEmail, oldKey)
		db.storeByEmail[newKey] = id
	}
	row.Name = name
	row.Email = email
	row.Address = address
	row.UpdatedAt = at
	db.stores[id] = row
	return row, nil
}

func (db *DB) DeleteStore(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	row, ok := db.stores[id]
	if !ok {
		return ErrNotFound
	}
	for ratingID, rating := range db.ratings {
		if rating.StoreID == id {
			delete(db.ratingByPair, pairKey{userID: rating.UserID, storeID: rating.StoreID})
			delete(db.ratings, ratingID)
		}
	}
	if row.OwnerID != "" {
		delete(db.storeByOwner, row.OwnerID)
	}
	delete(db.storeByEmail, emailKey(row.Email))
	delete(db.stores, id)
	return nil
}

// UpsertRating inserts or overwrites the caller's rating for a store and
// recomputes that store's aggregate before releasing the lock. newID is only
// used when no rating exists for the pair yet.
func (db *DB) UpsertRating(newID string, userID string, storeID string, value int, at time.Time) (RatingRow, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.users[userID]; !ok {
		return RatingRow{}, false, ErrForeignKeyViolation
	}
	if _, ok := db.stores[storeID]; !ok {
		return RatingRow{}, false, ErrForeignKeyViolation
	}

	key := pairKey{userID: userID, storeID: storeID}
	if existingID, ok := db.ratingByPair[key]; ok {
		row := db.ratings[existingID]
		row.Value = value
		row.UpdatedAt = at
		db.ratings[existingID] = row
		db.recomputeLocked(storeID)
		return row, false, nil
	}

	row := RatingRow{
		ID:        newID,
		UserID:    userID,
		StoreID:   storeID,
		Value:     value,
		CreatedAt: at,
		UpdatedAt: at,
	}
	db.ratings[newID] = row
	db.ratingByPair[key] = newID
	db.recomputeLocked(storeID)
	return row, true, nil
}

func (db *DB) GetRating(id string) (RatingRow, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	row, ok := db.ratings[id]
	return row, ok
}

func (db *DB) GetRatingByPair(userID string, storeID string) (RatingRow, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	id, ok := db.ratingByPair[pairKey{userID: userID, storeID: storeID}]
	if !ok {
		return RatingRow{}, false
	}
	return db.ratings[id], true
}

func (db *DB) UpdateRatingValue(id string, value int, at time.Time) (RatingRow, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	row, ok := db.ratings[id]
	if !ok {
		return RatingRow{}, ErrNotFound
	}
	row.Value = value
	row.UpdatedAt = at
	db.ratings[id] = row
	db.recomputeLocked(row.StoreID)
	return row, nil
}

func (db *DB) DeleteRating(id string) (RatingRow, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	row, ok := db.ratings[id]
	if !ok {
		return RatingRow{}, ErrNotFound
	}
	delete(db.ratingByPair, pairKey{userID: row.UserID, storeID: row.StoreID})
	delete(db.ratings, id)
	db.recomputeLocked(row.StoreID)
	return row, nil
}

// Ratings returns a snapshot of the ratings matching keep, most recently
// updated first. A nil keep returns every rating.
func (db *DB) Ratings(keep func(RatingRow) bool) []RatingRow {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]RatingRow, 0)
	for _, row := range db.ratings {
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// SetStoreAggregate overwrites a store's stored aggregate without touching
// ratings. It exists for out-of-band writers such as imports; regular
// mutations never need it.
func (db *DB) SetStoreAggregate(storeID string, average float64, total int) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	row, ok := db.stores[storeID]
	if !ok {
		return ErrNotFound
	}
	row.AverageRating = average
	row.TotalRatings = total
	db.stores[storeID] = row
	return nil
}

// ReconcileAggregates recomputes every store and returns how many drifted.
func (db *DB) ReconcileAggregates() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	fixed := 0
	for storeID, before := range db.stores {
		db.recomputeLocked(storeID)
		after := db.stores[storeID]
		if after.TotalRatings != before.TotalRatings || after.AverageRating != before.AverageRating {
			fixed++
		}
	}
	return fixed
}

func (db *DB) recomputeLocked(storeID string) {
	store, ok := db.stores[storeID]
	if !ok {
		return
	}
	sum, count := 0, 0
	for _, rating := range db.ratings {
		if rating.StoreID == storeID {
			sum += rating.Value
			count++
		}
	}
	store.TotalRatings = count
	store.AverageRating = 0
	if count > 0 {
		store.AverageRating = float64(sum) / float64(count)
	}
	db.stores[storeID] = store
}
