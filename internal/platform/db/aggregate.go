package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockStores takes row locks on the given stores in id order. Every
// transaction that changes a store's rating set locks the store first, so
// writers on one store serialize and each recompute sees all committed rows.
// It returns the ids that exist.
func LockStores(tx *gorm.DB, storeIDs ...string) ([]string, error) {
	if len(storeIDs) == 0 {
		return nil, nil
	}
	var locked []string
	err := tx.Table("stores").
		Where("id IN ?", storeIDs).
		Order("id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Pluck("id", &locked).Error
	if err != nil {
		return nil, fmt.Errorf("lock stores: %w", err)
	}
	return locked, nil
}

// RecomputeStoreAggregates rewrites average_rating and total_ratings for the
// given stores from the ratings table. Call it inside the transaction that
// made the aggregate stale, after LockStores.
func RecomputeStoreAggregates(tx *gorm.DB, storeIDs ...string) error {
	if len(storeIDs) == 0 {
		return nil
	}
	err := tx.Exec(`
		UPDATE stores AS s
		SET average_rating = agg.avg_rating,
		    total_ratings  = agg.total
		FROM (
			SELECT st.id,
			       COALESCE(AVG(r.rating), 0)::float8 AS avg_rating,
			       COUNT(r.id)::int AS total
			FROM stores st
			LEFT JOIN ratings r ON r.store_id = st.id
			WHERE st.id IN ?
			GROUP BY st.id
		) AS agg
		WHERE s.id = agg.id`, storeIDs).Error
	if err != nil {
		return fmt.Errorf("recompute store aggregates: %w", err)
	}
	return nil
}

// DriftedStoreIDs lists stores whose stored aggregate disagrees with their
// ratings. The read is unlocked, so an in-flight writer can cause a false
// positive; recomputing such a store under its lock is harmless.
func DriftedStoreIDs(tx *gorm.DB) ([]string, error) {
	var ids []string
	err := tx.Raw(`
		SELECT s.id
		FROM stores s
		LEFT JOIN (
			SELECT store_id, AVG(rating)::float8 AS avg_rating, COUNT(*)::int AS total
			FROM ratings
			GROUP BY store_id
		) agg ON agg.store_id = s.id
		WHERE s.total_ratings <> COALESCE(agg.total, 0)
		   OR ABS(s.average_rating - COALESCE(agg.avg_rating, 0)) > 1e-9
		ORDER BY s.id`).Scan(&ids).Error
	if err != nil {
		return nil, fmt.Errorf("find drifted stores: %w", err)
	}
	return ids, nil
}
