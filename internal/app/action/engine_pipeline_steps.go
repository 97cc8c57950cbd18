package action

import (
	"context"
	"errors"
	"strings"

	"farmverse/internal/app/ports"
	"farmverse/internal/app/session"
	"farmverse/internal/app/shared/stateview"
)

func (u UseCase) ValidateRequest(req Request) (IntentContext, error) {
	req.AgentID = strings.TrimSpace(req.AgentID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	req.Intent = normalizeIntent(req.Intent)

	if req.AgentID == "" || req.IdempotencyKey == "" {
		return IntentContext{}, ErrInvalidRequest
	}
	if !isSupportedIntentType(req.Intent.Type) {
		return IntentContext{}, &UnsupportedIntentError{Type: req.Intent.Type}
	}
	if !hasValidIntentParams(req.Intent) {
		return IntentContext{}, ErrInvalidIntentParams
	}

	return IntentContext{
		In: IntentInput{
			Req:            req,
			AgentID:        req.AgentID,
			IdempotencyKey: req.IdempotencyKey,
			Intent:         req.Intent,
		},
	}, nil
}

func (u UseCase) ReplayIdempotent(ctx context.Context, ac *IntentContext) (Response, bool, error) {
	exec, err := u.ActionRepo.GetByIdempotencyKey(ctx, ac.In.AgentID, ac.In.IdempotencyKey)
	if err == nil && exec != nil {
		return Response{
			Applied:    exec.Result.Applied,
			ResultCode: exec.Result.ResultCode,
			Message:    exec.Result.Message,
			Replayed:   true,
			State:      u.captureState(),
		}, true, nil
	}
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return Response{}, false, err
	}
	return Response{}, false, nil
}

func (u UseCase) ResolveSpec(ac *IntentContext) error {
	spec, ok := intentRegistry()[ac.In.Intent.Type]
	if !ok {
		return ErrInvalidRequest
	}
	ac.View.Spec = spec
	return nil
}

func (u UseCase) ApplyIntent(ctx context.Context, ac *IntentContext) error {
	var applyErr error
	u.Runner.Do(func(s *session.Session) {
		applyErr = ac.View.Spec.Handler.Apply(ctx, u, s, ac)
		ac.Out.State = stateview.Capture(s)
	})
	return applyErr
}

func (u UseCase) PersistExecution(ctx context.Context, ac *IntentContext) error {
	return u.ActionRepo.SaveExecution(ctx, ports.ActionExecutionRecord{
		AgentID:        ac.In.AgentID,
		IdempotencyKey: ac.In.IdempotencyKey,
		IntentType:     string(ac.In.Intent.Type),
		Result: ports.ActionResult{
			Applied:    ac.Out.Applied,
			ResultCode: ac.Out.ResultCode,
			Message:    ac.Out.Message,
		},
		AppliedAt: ac.In.NowAt,
	})
}

func (u UseCase) BuildResponse(ac *IntentContext) Response {
	return Response{
		Applied:    ac.Out.Applied,
		ResultCode: ac.Out.ResultCode,
		Message:    ac.Out.Message,
		State:      ac.Out.State,
	}
}

func (u UseCase) captureState() stateview.State {
	var view stateview.State
	u.Runner.Do(func(s *session.Session) {
		view = stateview.Capture(s)
	})
	return view
}

func hasValidIntentParams(in Intent) bool {
	validator, ok := intentParamValidators()[in.Type]
	if !ok {
		return true
	}
	return validator(in)
}

func normalizeIntent(in Intent) Intent {
	out := in
	out.Type = IntentType(strings.TrimSpace(string(out.Type)))
	out.ItemID = strings.TrimSpace(out.ItemID)
	out.Direction = strings.ToLower(strings.TrimSpace(out.Direction))
	switch out.Direction {
	case "up":
		out.DX, out.DY = 0, -1
	case "down":
		out.DX, out.DY = 0, 1
	case "left":
		out.DX, out.DY = -1, 0
	case "right":
		out.DX, out.DY = 1, 0
	}
	if out.Count <= 0 {
		out.Count = 1
	}
	return out
}
