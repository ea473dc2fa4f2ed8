package service_test

import (
	"context"
	"testing"

	models "github.com/seatwise/seatwise/internal"
	"github.com/seatwise/seatwise/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister(t *testing.T) {
	t.Run("traveler is approved immediately", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenManager)

		var created *models.User
		users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*models.User) }).
			Return(nil)
		tokens.On("Issue", mock.AnythingOfType("models.Claims")).Return("tok-123", nil)

		svc := service.NewAuthService(users, tokens, zap.NewNop())
		resp, err := svc.Register(context.Background(), &models.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			UserType: models.RoleTraveler,
			Password: "hunter22",
		})
		require.NoError(t, err)

		assert.Equal(t, "tok-123", resp.Token)
		assert.Equal(t, models.ApprovalApproved, resp.User.Approval)
		require.NotNil(t, created)
		assert.NotEmpty(t, created.ID)
		assert.NotEqual(t, "hunter22", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter22")))
		users.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	t.Run("operator starts unapproved", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenManager)
		users.On("Create", mock.Anything, mock.Anything).Return(nil)
		tokens.On("Issue", mock.Anything).Return("tok-456", nil)

		svc := service.NewAuthService(users, tokens, zap.NewNop())
		resp, err := svc.Register(context.Background(), &models.RegisterRequest{
			Username: "opco",
			Email:    "ops@example.com",
			UserType: models.RoleFlightOperator,
			Password: "hunter22",
		})
		require.NoError(t, err)
		assert.Equal(t, models.ApprovalNotApproved, resp.User.Approval)
	})

	t.Run("unknown role is rejected before any write", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := service.NewAuthService(users, new(MockTokenManager), zap.NewNop())

		_, err := svc.Register(context.Background(), &models.RegisterRequest{
			Username: "bob",
			Email:    "bob@example.com",
			UserType: "superuser",
			Password: "hunter22",
		})
		assert.ErrorIs(t, err, models.ErrInvalidRole)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email or username", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("Create", mock.Anything, mock.Anything).Return(models.ErrDuplicateUser)

		svc := service.NewAuthService(users, new(MockTokenManager), zap.NewNop())
		_, err := svc.Register(context.Background(), &models.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			UserType: models.RoleTraveler,
			Password: "hunter22",
		})
		assert.ErrorIs(t, err, models.ErrDuplicateUser)
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenManager)
		users.On("GetByEmail", mock.Anything, "alice@example.com").Return(&models.User{
			ID:           "user-1",
			Email:        "alice@example.com",
			Role:         models.RoleTraveler,
			PasswordHash: mustHash(t, "hunter22"),
			Approval:     models.ApprovalApproved,
		}, nil)
		tokens.On("Issue", models.Claims{
			UserID:   "user-1",
			Role:     models.RoleTraveler,
			Approval: models.ApprovalApproved,
		}).Return("tok-789", nil)

		svc := service.NewAuthService(users, tokens, zap.NewNop())
		resp, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "alice@example.com",
			Password: "hunter22",
		})
		require.NoError(t, err)
		assert.Equal(t, "tok-789", resp.Token)
		assert.Equal(t, "user-1", resp.User.ID)
		tokens.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, mock.Anything).Return(&models.User{
			PasswordHash: mustHash(t, "hunter22"),
		}, nil)

		svc := service.NewAuthService(users, new(MockTokenManager), zap.NewNop())
		_, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, models.ErrUserNotFound)

		svc := service.NewAuthService(users, new(MockTokenManager), zap.NewNop())
		_, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "ghost@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("unapproved operator is refused", func(t *testing.T) {
		for _, approval := range []models.ApprovalStatus{models.ApprovalNotApproved, models.ApprovalRejected} {
			users := new(MockUserRepository)
			users.On("GetByEmail", mock.Anything, mock.Anything).Return(&models.User{
				Role:         models.RoleFlightOperator,
				PasswordHash: mustHash(t, "hunter22"),
				Approval:     approval,
			}, nil)

			svc := service.NewAuthService(users, new(MockTokenManager), zap.NewNop())
			_, err := svc.Login(context.Background(), &models.LoginRequest{
				Email:    "ops@example.com",
				Password: "hunter22",
			})
			assert.ErrorIs(t, err, models.ErrOperatorNotApproved, "approval=%s", approval)
		}
	})

	t.Run("approved operator may log in", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenManager)
		users.On("GetByEmail", mock.Anything, mock.Anything).Return(&models.User{
			ID:           "op-1",
			Role:         models.RoleFlightOperator,
			PasswordHash: mustHash(t, "hunter22"),
			Approval:     models.ApprovalApproved,
		}, nil)
		tokens.On("Issue", mock.Anything).Return("tok-op", nil)

		svc := service.NewAuthService(users, tokens, zap.NewNop())
		resp, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "ops@example.com",
			Password: "hunter22",
		})
		require.NoError(t, err)
		assert.Equal(t, "tok-op", resp.Token)
	})
}

func TestOperatorApproval(t *testing.T) {
	t.Run("approve", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", mock.Anything, "op-1").Return(&models.User{
			ID:       "op-1",
			Role:     models.RoleFlightOperator,
			Approval: models.ApprovalNotApproved,
		}, nil)
		users.On("UpdateApproval", mock.Anything, "op-1", models.ApprovalApproved).Return(nil)

		svc := service.NewAuthService(users, new(MockTokenManager), zap.NewNop())
		user, err := svc.ApproveOperator(context.Background(), "op-1")
		require.NoError(t, err)
		assert.Equal(t, models.ApprovalApproved, user.Approval)
		users.AssertExpectations(t)
	})

	t.Run("reject", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", mock.Anything, "op-1").Return(&models.User{
			ID:   "op-1",
			Role: models.RoleFlightOperator,
		}, nil)
		users.On("UpdateApproval", mock.Anything, "op-1", models.ApprovalRejected).Return(nil)

		svc := service.NewAuthService(users, new(MockTokenManager), zap.NewNop())
		user, err := svc.RejectOperator(context.Background(), "op-1")
		require.NoError(t, err)
		assert.Equal(t, models.ApprovalRejected, user.Approval)
	})

	t.Run("target is not an operator", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", mock.Anything, "user-1").Return(&models.User{
			ID:   "user-1",
			Role: models.RoleTraveler,
		}, nil)

		svc := service.NewAuthService(users, new(MockTokenManager), zap.NewNop())
		_, err := svc.ApproveOperator(context.Background(), "user-1")
		assert.ErrorIs(t, err, models.ErrNotOperator)
		users.AssertNotCalled(t, "UpdateApproval", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown target", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", mock.Anything, "missing").Return(nil, models.ErrUserNotFound)

		svc := service.NewAuthService(users, new(MockTokenManager), zap.NewNop())
		_, err := svc.ApproveOperator(context.Background(), "missing")
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})
}
