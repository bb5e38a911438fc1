// Package ratings is the rating ledger: at most one rating per user and
// store, plus the store aggregates derived from them.
//
// Invariants:
//   - (user_id, store_id) is unique. Submitting again overwrites the value and
//     keeps the original creation time.
//   - A store's average_rating and total_ratings always equal the mean and
//     count of its ratings. Every write path recomputes them in the same
//     transaction, under a row lock on the store, and the aggregate
//     reconciler repairs anything written around the ledger.
//   - Only the author may change or delete a rating. Admins get no bypass.
package ratings
