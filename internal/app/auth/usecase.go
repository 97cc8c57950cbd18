package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"farmverse/internal/app/ports"
)

const (
	CredentialStatusActive = "active"
)

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrInvalidCredentials = errors.New("invalid agent credentials")
)

type RegisterRequest struct{}

type RegisterResponse struct {
	AgentID   string `json:"agent_id"`
	AgentKey  string `json:"agent_key"`
	SessionID string `json:"session_id"`
	IssuedAt  string `json:"issued_at"`
}

type VerifyRequest struct {
	AgentID  string
	AgentKey string
}

type RegisterUseCase struct {
	Credentials ports.AgentCredentialRepository
	Sessions    ports.SessionRepository
	TxManager   ports.TxManager
	Now         func() time.Time
}

type VerifyUseCase struct {
	Credentials ports.AgentCredentialRepository
}

func (u RegisterUseCase) Execute(ctx context.Context, _ RegisterRequest) (RegisterResponse, error) {
	if u.Credentials == nil || u.Sessions == nil || u.TxManager == nil {
		return RegisterResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	for i := 0; i < 3; i++ {
		agentID, err := newAgentID(now)
		if err != nil {
			return RegisterResponse{}, err
		}
		agentKey, err := randomToken(32)
		if err != nil {
			return RegisterResponse{}, err
		}
		salt, err := randomBytes(16)
		if err != nil {
			return RegisterResponse{}, err
		}
		hash := credentialHash(salt, agentKey)
		sessionID := "farm-" + agentID

		err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
			if err := u.Credentials.Create(txCtx, ports.AgentCredentialRecord{
				AgentID:   agentID,
				KeySalt:   salt,
				KeyHash:   hash,
				Status:    CredentialStatusActive,
				CreatedAt: now,
			}); err != nil {
				return err
			}
			return u.Sessions.EnsureActive(txCtx, sessionID, agentID)
		})
		if err == ports.ErrConflict {
			continue
		}
		if err != nil {
			return RegisterResponse{}, err
		}
		return RegisterResponse{
			AgentID:   agentID,
			AgentKey:  agentKey,
			SessionID: sessionID,
			IssuedAt:  now.Format(time.RFC3339),
		}, nil
	}

	return RegisterResponse{}, ports.ErrConflict
}

// SeedUseCase installs credentials for a preconfigured agent so a
// deployment can authenticate without calling register first. Existing
// credentials always win over the configured key.
type SeedUseCase struct {
	Credentials ports.AgentCredentialRepository
	Sessions    ports.SessionRepository
	TxManager   ports.TxManager
	Now         func() time.Time
}

type SeedRequest struct {
	AgentID  string
	AgentKey string
}

func (u SeedUseCase) Execute(ctx context.Context, req SeedRequest) (string, error) {
	agentID := strings.TrimSpace(req.AgentID)
	agentKey := strings.TrimSpace(req.AgentKey)
	if agentID == "" || agentKey == "" || u.Credentials == nil || u.Sessions == nil || u.TxManager == nil {
		return "", ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	sessionID := "farm-" + agentID

	_, err := u.Credentials.GetByAgentID(ctx, agentID)
	if err == nil {
		return sessionID, u.Sessions.EnsureActive(ctx, sessionID, agentID)
	}
	if err != ports.ErrNotFound {
		return "", err
	}

	salt, err := randomBytes(16)
	if err != nil {
		return "", err
	}
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Credentials.Create(txCtx, ports.AgentCredentialRecord{
			AgentID:   agentID,
			KeySalt:   salt,
			KeyHash:   credentialHash(salt, agentKey),
			Status:    CredentialStatusActive,
			CreatedAt: nowFn().UTC(),
		}); err != nil {
			return err
		}
		return u.Sessions.EnsureActive(txCtx, sessionID, agentID)
	})
	if err == ports.ErrConflict {
		// Lost a create race with another boot; the stored credential wins.
		return sessionID, nil
	}
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (u VerifyUseCase) Execute(ctx context.Context, req VerifyRequest) error {
	req.AgentID = strings.TrimSpace(req.AgentID)
	req.AgentKey = strings.TrimSpace(req.AgentKey)
	if req.AgentID == "" || req.AgentKey == "" || u.Credentials == nil {
		return ErrInvalidRequest
	}

	cred, err := u.Credentials.GetByAgentID(ctx, req.AgentID)
	if err != nil {
		if err == ports.ErrNotFound {
			return ErrInvalidCredentials
		}
		return err
	}
	if cred.Status != CredentialStatusActive {
		return ErrInvalidCredentials
	}

	got := credentialHash(cred.KeySalt, req.AgentKey)
	if subtle.ConstantTimeCompare(got, cred.KeyHash) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

func credentialHash(salt []byte, key string) []byte {
	b := make([]byte, 0, len(salt)+len(key))
	b = append(b, salt...)
	b = append(b, key...)
	sum := sha256.Sum256(b)
	return sum[:]
}

func newAgentID(now time.Time) (string, error) {
	randPart, err := randomToken(9)
	if err != nil {
		return "", err
	}
	return "farmer_" + now.Format("20060102") + "_" + randPart, nil
}

func randomToken(n int) (string, error) {
	b, err := randomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
