// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"tedtam-service/internal/domain/agent"
	xerrors "tedtam-service/internal/pkg/errors"
	"tedtam-service/internal/pkg/jwt"
	"tedtam-service/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	agentRepo  *postgres.AgentRepository
	jwtManager *jwt.Manager
	logger     *zap.Logger
	entropy    *ulid.MonotonicEntropy
}

func NewAuthService(agentRepo *postgres.AgentRepository, jwtManager *jwt.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		agentRepo:  agentRepo,
		jwtManager: jwtManager,
		logger:     logger,
		entropy:    ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

// Register creates a new agent account.
func (s *AuthService) Register(ctx context.Context, req *agent.RegisterRequest) (*agent.Agent, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.agentRepo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", xerrors.ErrConflict)
	} else if !errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	a := &agent.Agent{
		ID:           ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		FieldTeam:    req.FieldTeam,
	}
	if err := s.agentRepo.Create(ctx, a); err != nil {
		s.logger.Error("failed to create agent", zap.Error(err))
		return nil, err
	}

	s.logger.Info("agent registered", zap.String("agent_id", a.ID), zap.String("email", a.Email))
	return a, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, req *agent.LoginRequest) (*agent.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	a, err := s.agentRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login rejected", zap.String("email", email))
		return nil, xerrors.ErrUnauthorized
	}

	token, err := s.jwtManager.Generate(a.ID, a.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("agent logged in", zap.String("agent_id", a.ID))
	return &agent.LoginResponse{Token: token, Agent: a}, nil
}

// ValidateToken verifies an access token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*jwt.Claims, error) {
	return s.jwtManager.Verify(tokenString)
}

// GetAgent retrieves the agent behind an identity.
func (s *AuthService) GetAgent(ctx context.Context, agentID string) (*agent.Agent, error) {
	return s.agentRepo.FindByID(ctx, agentID)
}
