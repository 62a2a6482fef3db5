// Package auth implements the session and token lifecycle for stateless
// HTTP APIs: issuance, validation, refresh, and revocation of bearer
// credentials backed by a relational session registry.
//
// Token model:
//   - Access tokens are compact HS256-signed JWTs carrying only identity
//     (sub, jti, iat, exp, iss). The jti names a durable Session row, the
//     join point for revocation: a signed token alone is never sufficient,
//     the registry and blacklist are consulted on every request.
//   - Refresh tokens are opaque 256-bit secrets. Only a keyed hash is
//     persisted; the raw value is returned to the caller exactly once at
//     login. Refreshing re-dates the access token under the same jti and
//     does not rotate the secret.
//
// Session registry:
//   - Each user has at most one live Session. Logging in destroys the
//     previous session and its dependents inside the same transaction,
//     backed by a uniqueness constraint on user_id.
//   - Revoke deletes the refresh credential and inserts a blacklist
//     marker. Revocation is permanent for the session; a second revoke is
//     a conflict, not a no-op, so callers can detect replayed logouts.
//
// The package is storage-first: construct a RepositoryManager over a
// *bun.DB, wire Issuer/Refresher/Revoker/Auther with an immutable Config,
// and mount HTTPController on a go-router router for the HTTP surface.
package auth
