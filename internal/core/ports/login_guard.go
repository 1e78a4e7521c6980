package ports

import "context"

// LoginGuard throttles repeated failed logins per email. A nil-safe no-op
// implementation is acceptable; the service treats guard errors as advisory
// and never fails a login because the guard store is down.
type LoginGuard interface {
	IsLocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
