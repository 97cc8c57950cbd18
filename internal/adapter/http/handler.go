package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"farmverse/internal/app/action"
	"farmverse/internal/app/almanac"
	"farmverse/internal/app/auth"
	"farmverse/internal/app/observe"
	"farmverse/internal/app/ports"
	"farmverse/internal/app/replay"
	"farmverse/internal/app/status"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const agentIDHeader = "X-Agent-ID"
const agentKeyHeader = "X-Agent-Key"

type Handler struct {
	RegisterUC auth.RegisterUseCase
	AuthUC     auth.VerifyUseCase
	ObserveUC  observe.UseCase
	ActionUC   action.UseCase
	StatusUC   status.UseCase
	ReplayUC   replay.UseCase
	AlmanacUC  almanac.UseCase
	KPI        kpiSnapshotProvider
	Exporter   ports.SaveArchiver
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	agent := s.Group("/api/agent")
	agent.POST("/register", h.register)
	agent.POST("/observe", h.observe)
	agent.POST("/act", h.act)
	agent.POST("/status", h.status)
	agent.GET("/replay", h.replay)

	s.GET("/almanac/index.json", h.almanacIndex)
	s.GET("/almanac/*filepath", h.almanacFile)
	s.GET("/ops/kpi", h.kpi)
	s.GET("/ops/export", h.export)
}

type observeRequest struct {
	AgentID string `json:"agent_id"`
}

type statusRequest struct {
	AgentID string `json:"agent_id"`
}

type actRequest struct {
	AgentID        string        `json:"agent_id"`
	IdempotencyKey string        `json:"idempotency_key"`
	Intent         action.Intent `json:"intent"`
}

func (h Handler) observe(c context.Context, ctx *app.RequestContext) {
	agentID, err := h.requireAuthenticatedAgent(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body observeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.ObserveUC.Execute(c, observe.Request{AgentID: agentID})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) act(c context.Context, ctx *app.RequestContext) {
	agentID, err := h.requireAuthenticatedAgent(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body actRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if hasJSONField(ctx.Request.Body(), "dt") {
		writeIntentRejected(ctx, consts.StatusBadRequest, "dt_managed_by_server", "dt is managed by server", map[string]any{"field": "dt"})
		return
	}

	resp, err := h.ActionUC.Execute(c, action.Request{
		AgentID:        agentID,
		IdempotencyKey: body.IdempotencyKey,
		Intent:         body.Intent,
	})
	if err != nil {
		if writeIntentRejectedFromErr(ctx, err) {
			return
		}
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	agentID, err := h.requireAuthenticatedAgent(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body statusRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.StatusUC.Execute(c, status.Request{AgentID: agentID})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	agentID, err := h.requireAuthenticatedAgent(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	sessionID := strings.TrimSpace(string(ctx.Query("session_id")))
	if sessionID == "" {
		sessionID = "farm-" + agentID
	}
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		SessionID:    sessionID,
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) almanacIndex(c context.Context, ctx *app.RequestContext) {
	b, err := h.AlmanacUC.Index(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "application/json", b)
}

func (h Handler) almanacFile(c context.Context, ctx *app.RequestContext) {
	path := strings.TrimPrefix(string(ctx.Param("filepath")), "/")
	if path == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_filepath", "invalid filepath")
		return
	}

	b, err := h.AlmanacUC.File(c, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeErrorBody(ctx, consts.StatusNotFound, "not_found", "almanac file not found")
			return
		}
		writeError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", b)
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	resp, err := h.RegisterUC.Execute(c, auth.RegisterRequest{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) export(c context.Context, ctx *app.RequestContext) {
	if h.Exporter == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "save exporter not configured")
		return
	}
	var buf bytes.Buffer
	if err := h.Exporter.WriteBundle(c, &buf); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="farmverse_saves.tar.zst"`)
	ctx.Data(http.StatusOK, "application/zstd", buf.Bytes())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func hasJSONField(body []byte, key string) bool {
	if len(body) == 0 {
		return false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return false
	}
	_, ok := m[key]
	return ok
}

var ErrMissingAgentIDHeader = errors.New("missing x-agent-id header")
var ErrMissingAgentKeyHeader = errors.New("missing x-agent-key header")
var ErrMissingAgentCredentials = errors.New("missing agent credentials")

func (h Handler) requireAuthenticatedAgent(c context.Context, ctx *app.RequestContext) (string, error) {
	agentID := strings.TrimSpace(string(ctx.GetHeader(agentIDHeader)))
	agentKey := strings.TrimSpace(string(ctx.GetHeader(agentKeyHeader)))
	if agentID == "" && agentKey == "" {
		return "", ErrMissingAgentCredentials
	}
	if agentID == "" {
		return "", ErrMissingAgentIDHeader
	}
	if agentKey == "" {
		return "", ErrMissingAgentKeyHeader
	}
	if err := h.AuthUC.Execute(c, auth.VerifyRequest{
		AgentID:  agentID,
		AgentKey: agentKey,
	}); err != nil {
		return "", err
	}
	return agentID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	var loadErr *ports.LoadError
	var saveErr *ports.SaveError
	switch {
	case errors.Is(err, ErrMissingAgentCredentials):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_agent_credentials", err.Error())
	case errors.Is(err, ErrMissingAgentIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_agent_id", err.Error())
	case errors.Is(err, ErrMissingAgentKeyHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_agent_key", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_agent_credentials", err.Error())
	case errors.As(err, &loadErr):
		if errors.Is(err, ports.ErrNotFound) {
			writeErrorBody(ctx, consts.StatusNotFound, "save_slot_not_found", err.Error())
			return
		}
		writeErrorBody(ctx, consts.StatusInternalServerError, "load_failed", err.Error())
	case errors.As(err, &saveErr):
		writeErrorBody(ctx, consts.StatusInternalServerError, "save_failed", err.Error())
	case errors.Is(err, action.ErrInvalidIntentParams):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_intent_params", err.Error())
	case errors.Is(err, action.ErrUnsupportedIntent):
		writeErrorBody(ctx, consts.StatusBadRequest, "unsupported_intent", err.Error())
	case errors.Is(err, action.ErrInvalidRequest),
		errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeIntentRejectedFromErr(ctx *app.RequestContext, err error) bool {
	switch {
	case errors.Is(err, action.ErrInvalidIntentParams):
		writeIntentRejected(ctx, consts.StatusBadRequest, "invalid_intent_params", err.Error(), nil)
		return true
	case errors.Is(err, action.ErrUnsupportedIntent):
		details := map[string]any{}
		var unsupportedErr *action.UnsupportedIntentError
		if errors.As(err, &unsupportedErr) && unsupportedErr != nil {
			details["type"] = string(unsupportedErr.Type)
		}
		if len(details) == 0 {
			details = nil
		}
		writeIntentRejected(ctx, consts.StatusBadRequest, "unsupported_intent", err.Error(), details)
		return true
	case errors.Is(err, action.ErrInvalidRequest):
		writeIntentRejected(ctx, consts.StatusBadRequest, "bad_request", err.Error(), nil)
		return true
	default:
		return false
	}
}

// writeIntentRejected mirrors the act success envelope so clients parse one
// shape. Engine-level rejections still travel as 200 responses with
// applied=false; this path is for requests that never reached the engine.
func writeIntentRejected(ctx *app.RequestContext, status int, code, message string, details map[string]any) {
	errObj := map[string]any{
		"code":    code,
		"message": message,
	}
	if details != nil {
		errObj["details"] = details
	}
	ctx.JSON(status, map[string]any{
		"applied":     false,
		"result_code": "REJECTED",
		"error":       errObj,
	})
}
