// Package authorization is the access gate shared by every protected route.
//
// Layering:
//   - domain: capabilities, decisions, deny reasons and the pure policy engine
//   - application: the CheckAccess query that logs and maps decisions to errors
//
// Boundary notes:
//   - The gate never touches storage. Callers resolve resource ownership first
//     and hand the owner id in, so a missing resource is always reported as
//     not found before any ownership decision is made.
//   - Role checks read the principal attached by the bearer-token middleware.
package authorization
