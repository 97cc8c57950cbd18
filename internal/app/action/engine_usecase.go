package action

import (
	"context"
	"errors"
	"time"

	"farmverse/internal/app/ports"
	"farmverse/internal/app/session"
)

var (
	ErrInvalidRequest      = errors.New("invalid intent request")
	ErrInvalidIntentParams = errors.New("invalid intent params")
	ErrUnsupportedIntent   = errors.New("unsupported intent type")
)

type UnsupportedIntentError struct {
	Type IntentType
}

func (e *UnsupportedIntentError) Error() string {
	return ErrUnsupportedIntent.Error()
}

func (e *UnsupportedIntentError) Unwrap() error {
	return ErrUnsupportedIntent
}

// UseCase executes agent intents against the running session. The runner
// guard serializes the mutation; the transaction covers the idempotency
// read and the execution write so a replayed key never applies twice.
type UseCase struct {
	Runner     *session.Runner
	TxManager  ports.TxManager
	ActionRepo ports.ActionExecutionRepository
	Metrics    ports.ActionMetrics
	Now        func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	ac, err := u.ValidateRequest(req)
	if err != nil {
		return Response{}, err
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	ac.In.NowAt = nowFn()

	var out Response
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		replay, ok, err := u.ReplayIdempotent(txCtx, &ac)
		if err != nil {
			return err
		}
		if ok {
			out = replay
			return nil
		}
		if err := u.ResolveSpec(&ac); err != nil {
			return err
		}
		if err := u.ApplyIntent(txCtx, &ac); err != nil {
			return err
		}
		if err := u.PersistExecution(txCtx, &ac); err != nil {
			return err
		}
		out = u.BuildResponse(&ac)
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			if errors.Is(err, ports.ErrConflict) {
				u.Metrics.RecordConflict()
			} else {
				u.Metrics.RecordFailure()
			}
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess(out.ResultCode)
	}

	return out, nil
}
