package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	models "github.com/seatwise/seatwise/internal"
	"github.com/seatwise/seatwise/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	users  ports.UserRepository
	tokens ports.TokenManager
	logger *zap.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenManager, logger *zap.Logger) *authService {
	return &authService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if !req.UserType.Valid() {
		return nil, models.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	// only flight operators carry a meaningful approval state; travelers
	// and admins are approved from the start
	approval := models.ApprovalApproved
	if req.UserType == models.RoleFlightOperator {
		approval = models.ApprovalNotApproved
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		Role:         req.UserType,
		PasswordHash: string(hash),
		Approval:     approval,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(models.Claims{UserID: user.ID, Role: user.Role, Approval: user.Approval})
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	if user.Role == models.RoleFlightOperator && user.Approval != models.ApprovalApproved {
		return nil, models.ErrOperatorNotApproved
	}

	token, err := s.tokens.Issue(models.Claims{UserID: user.ID, Role: user.Role, Approval: user.Approval})
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) ApproveOperator(ctx context.Context, targetID string) (*models.User, error) {
	return s.setApproval(ctx, targetID, models.ApprovalApproved)
}

func (s *authService) RejectOperator(ctx context.Context, targetID string) (*models.User, error) {
	return s.setApproval(ctx, targetID, models.ApprovalRejected)
}

func (s *authService) setApproval(ctx context.Context, targetID string, approval models.ApprovalStatus) (*models.User, error) {
	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleFlightOperator {
		return nil, models.ErrNotOperator
	}

	if err := s.users.UpdateApproval(ctx, targetID, approval); err != nil {
		return nil, err
	}
	user.Approval = approval

	s.logger.Info("operator approval changed",
		zap.String("user_id", targetID),
		zap.String("approval", string(approval)))

	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
