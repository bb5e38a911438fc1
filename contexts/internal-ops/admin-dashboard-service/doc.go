// Package admindashboardservice aggregates platform-wide counts for the
// admin dashboard from the account, store and rating contexts.
package admindashboardservice
