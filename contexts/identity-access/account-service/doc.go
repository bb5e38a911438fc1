// Package account owns user accounts: registration, login, bearer-token
// authentication, password changes and admin user management.
//
// Layering:
//   - domain: the User entity and sentinel errors
//   - application: commands (register, login, change password, create and
//     delete users) and queries (authenticate, profile, list, count by role)
//   - ports: persistence, hashing, token and clock boundaries
//   - adapters: postgres and memory repositories, bcrypt and JWT security,
//     HTTP handler
//   - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
//   - Deleting a user cascades their ratings and recomputes the aggregates of
//     every store that lost one, inside the same transaction.
//   - Email uniqueness is enforced by the storage constraint, never by a
//     read-then-write check.
package account
