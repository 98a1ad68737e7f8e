// Package auth is the identity and access-control core for a multi-user
// application: it registers accounts, authenticates them, issues stateless
// bearer tokens, gates actions by role, and activates accounts via one-time
// codes.
//
// The package is transport-thin. It ships a fiber JSON controller and a
// token-resolving middleware (middleware/jwtware), but every invariant lives
// in the command handlers, the Auther, and the Users store:
//
//   - registration validates input, hashes the password with bcrypt, and
//     creates an inactive account holding a fresh activation code
//   - login collapses "no such account", "not yet activated", and "wrong
//     password" into one Unauthorized result so account existence never leaks
//   - tokens are self-contained HS256 JWTs; signature and expiry are the only
//     validity checks, there is no server-side session state
//   - the role gate consumes already-resolved claims and only ever answers
//     "allowed" or Forbidden
package auth
