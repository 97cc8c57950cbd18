package action

import (
	"context"
	"time"

	"farmverse/internal/app/session"
	"farmverse/internal/app/shared/stateview"
	"farmverse/internal/domain/farm"
)

// maxSaveSlot caps the save slot range accepted over the wire.
const maxSaveSlot = 9

type IntentSpec struct {
	Type    IntentType
	Handler IntentHandler
}

// IntentHandler applies one normalized intent to the session. Apply runs
// under the runner guard, so the session may be read and mutated freely;
// rejections go into ac.Out, errors abort the request.
type IntentHandler interface {
	Apply(ctx context.Context, uc UseCase, s *session.Session, ac *IntentContext) error
}

type IntentInput struct {
	Req            Request
	NowAt          time.Time
	AgentID        string
	IdempotencyKey string
	Intent         Intent
}

type IntentView struct {
	Spec IntentSpec
}

type IntentOutcome struct {
	Applied    bool
	ResultCode farm.ResultCode
	Message    string
	State      stateview.State
}

type IntentContext struct {
	In   IntentInput
	View IntentView
	Out  IntentOutcome
}

func appliedOutcome(message string) IntentOutcome {
	return IntentOutcome{Applied: true, ResultCode: farm.ResultOK, Message: message}
}

func rejectedOutcome(message string) IntentOutcome {
	return IntentOutcome{Applied: false, ResultCode: farm.ResultRejected, Message: message}
}

func intentRegistry() map[IntentType]IntentSpec {
	return map[IntentType]IntentSpec{
		IntentSelectSlot: {Type: IntentSelectSlot, Handler: selectSlotHandler{}},
		IntentAssignSlot: {Type: IntentAssignSlot, Handler: assignSlotHandler{}},
		IntentUse:        {Type: IntentUse, Handler: useHandler{}},
		IntentMove:       {Type: IntentMove, Handler: moveHandler{}},
		IntentEndDay:     {Type: IntentEndDay, Handler: endDayHandler{}},
		IntentBuy:        {Type: IntentBuy, Handler: buyHandler{}},
		IntentSell:       {Type: IntentSell, Handler: sellHandler{}},
		IntentSave:       {Type: IntentSave, Handler: saveHandler{}},
		IntentLoad:       {Type: IntentLoad, Handler: loadHandler{}},
		IntentDeleteSlot: {Type: IntentDeleteSlot, Handler: deleteSlotHandler{}},
	}
}

func supportedIntentTypes() []IntentType {
	return []IntentType{
		IntentSelectSlot,
		IntentAssignSlot,
		IntentUse,
		IntentMove,
		IntentEndDay,
		IntentBuy,
		IntentSell,
		IntentSave,
		IntentLoad,
		IntentDeleteSlot,
	}
}

func isSupportedIntentType(t IntentType) bool {
	for _, intentType := range supportedIntentTypes() {
		if t == intentType {
			return true
		}
	}
	return false
}

func intentParamValidators() map[IntentType]func(Intent) bool {
	return map[IntentType]func(Intent) bool{
		IntentSelectSlot: validateHotbarSlotParams,
		IntentAssignSlot: validateAssignSlotParams,
		IntentMove:       validateMoveParams,
		IntentBuy:        validateTradeParams,
		IntentSell:       validateTradeParams,
		IntentSave:       validateSaveSlotParams,
		IntentLoad:       validateSaveSlotParams,
		IntentDeleteSlot: validateDeleteSlotParams,
	}
}

func validateHotbarSlotParams(in Intent) bool {
	return in.Slot >= 1 && in.Slot <= farm.HotbarSlots
}

func validateAssignSlotParams(in Intent) bool {
	return validateHotbarSlotParams(in) && in.ItemID != ""
}

func validateMoveParams(in Intent) bool {
	return in.DX >= -1 && in.DX <= 1 && in.DY >= -1 && in.DY <= 1
}

func validateTradeParams(in Intent) bool {
	return in.ItemID != ""
}

func validateSaveSlotParams(in Intent) bool {
	return in.Slot >= 0 && in.Slot <= maxSaveSlot
}

// validateDeleteSlotParams requires an explicit slot: deleting has no
// sensible "current slot" default.
func validateDeleteSlotParams(in Intent) bool {
	return in.Slot >= 1 && in.Slot <= maxSaveSlot
}
