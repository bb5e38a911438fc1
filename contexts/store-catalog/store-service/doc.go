// Package store manages the store catalog: admin CRUD, listings with
// filters and sorting, and the owner's view of their own store.
//
// Stores carry a materialized average_rating and total_ratings. This module
// only reads them; the rating ledger is the single writer.
package store
