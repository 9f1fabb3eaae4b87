package repositories

import "context"

// Authorizer owns the password check and the persisted set of authorized
// user IDs. Implementations must compare passwords in constant time.
type Authorizer interface {
	// IsAuthorized reports whether the user already authenticated.
	IsAuthorized(ctx context.Context, userID int64) (bool, error)

	// Authenticate checks the password and, when correct, persists the
	// user as authorized.
	Authenticate(ctx context.Context, userID int64, password string) (bool, error)

	// Revoke removes a user's authorization. Returns true when the user
	// was authorized before the call.
	Revoke(ctx context.Context, userID int64) (bool, error)
}
