package tx

import (
	"context"
	"database/sql"
	"time"

	dErrors "turnero/pkg/domain-errors"
)

const defaultTimeout = 5 * time.Second

// Runner executes a callback inside one database transaction. The
// transaction rides the context, so every store call made through the
// callback shares it; row locks taken inside then serialize concurrent
// writers.
type Runner struct {
	db      *sql.DB
	timeout time.Duration
}

type RunnerOption func(r *Runner)

func WithTimeout(timeout time.Duration) RunnerOption {
	return func(r *Runner) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

func NewRunner(db *sql.DB, opts ...RunnerOption) *Runner {
	r := &Runner{db: db, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(WithTx(ctx, sqlTx)); err != nil {
		return err
	}
	return sqlTx.Commit()
}
