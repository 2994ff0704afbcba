package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizverse-api/internal/pkg/errors"
	"github.com/yourusername/quizverse-api/pkg/auth"
)

func newAuthService(t *testing.T, userRepo *MockUserRepo) *AuthService {
	t.Helper()
	jwtService, err := auth.NewJWTService("test-secret", 1)
	require.NoError(t, err)
	svc, err := NewAuthService(userRepo, jwtService, nil, nil)
	require.NoError(t, err)
	return svc
}

func hashedUser(t *testing.T, id uint, username, password string) *entity.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{ID: id, FullName: "Test User", Username: username, Password: string(hashed)}
}

// ============================================================================
// Password policy
// ============================================================================

func TestValidatePasswordComplexity(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"meets every rule", "Str0ng@pass", false},
		{"minimum length boundary", "Aa1@aaaa", false},
		{"too short", "Aa1@aaa", true},
		{"no uppercase", "weak@pass1", true},
		{"no lowercase", "WEAK@PASS1", true},
		{"no digit", "Weak@password", true},
		{"no symbol", "Weakpass1", true},
		{"symbol outside the allowed set", "Weakpass1!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePasswordComplexity(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// ============================================================================
// Registration
// ============================================================================

func TestRegister_Success(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("Create", mock.MatchedBy(func(u *entity.User) bool {
		return u.FullName == "Casey Smith" && u.Username == "casey"
	})).Return(nil).Once()

	svc := newAuthService(t, userRepo)
	user, err := svc.Register(RegisterInput{
		FullName: "  Casey Smith ",
		Username: " casey ",
		Password: "Str0ng@pass",
	})

	require.NoError(t, err)
	assert.Equal(t, "casey", user.Username)
	userRepo.AssertExpectations(t)
}

func TestRegister_TakenUsernameSurfacesAsConflict(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("Create", mock.Anything).Return(apperrors.ErrConflict)

	svc := newAuthService(t, userRepo)
	_, err := svc.Register(RegisterInput{
		FullName: "Casey Smith",
		Username: "casey",
		Password: "Str0ng@pass",
	})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestRegister_InvalidInputRejected(t *testing.T) {
	svc := newAuthService(t, new(MockUserRepo))

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"blank full name", RegisterInput{FullName: " ", Username: "casey", Password: "Str0ng@pass"}},
		{"short username", RegisterInput{FullName: "Casey", Username: "ab", Password: "Str0ng@pass"}},
		{"username with space", RegisterInput{FullName: "Casey", Username: "ca sey", Password: "Str0ng@pass"}},
		{"weak password", RegisterInput{FullName: "Casey", Username: "casey", Password: "password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.input)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

// ============================================================================
// Login
// ============================================================================

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("GetByUsername", "casey").Return(hashedUser(t, 5, "casey", "Str0ng@pass"), nil)

	svc := newAuthService(t, userRepo)
	user, token, err := svc.Login("casey", "Str0ng@pass")

	require.NoError(t, err)
	assert.Equal(t, uint(5), user.ID)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPasswordAndUnknownUserLookTheSame(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("GetByUsername", "casey").Return(hashedUser(t, 5, "casey", "Str0ng@pass"), nil)
	userRepo.On("GetByUsername", "nobody").Return(nil, apperrors.ErrNotFound)

	svc := newAuthService(t, userRepo)

	_, _, errWrongPass := svc.Login("casey", "wrong-password")
	_, _, errNoUser := svc.Login("nobody", "Str0ng@pass")

	assert.ErrorIs(t, errWrongPass, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, errNoUser, apperrors.ErrUnauthorized)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

// ============================================================================
// Account management
// ============================================================================

func TestChangePassword_VerifiesCurrentPassword(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("GetByID", uint(5)).Return(hashedUser(t, 5, "casey", "Str0ng@pass"), nil)

	svc := newAuthService(t, userRepo)
	err := svc.ChangePassword(5, "not-the-password", "N3w@secret")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}

func TestChangePassword_StoresNewHash(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("GetByID", uint(5)).Return(hashedUser(t, 5, "casey", "Str0ng@pass"), nil)
	userRepo.On("UpdatePassword", uint(5), mock.MatchedBy(func(hashed string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hashed), []byte("N3w@secret")) == nil
	})).Return(nil).Once()

	svc := newAuthService(t, userRepo)
	err := svc.ChangePassword(5, "Str0ng@pass", "N3w@secret")

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestDeleteAccount_RequiresPasswordConfirmation(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("GetByID", uint(5)).Return(hashedUser(t, 5, "casey", "Str0ng@pass"), nil)

	svc := newAuthService(t, userRepo)
	err := svc.DeleteAccount(5, "guess")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDeleteAccount_Success(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("GetByID", uint(5)).Return(hashedUser(t, 5, "casey", "Str0ng@pass"), nil)
	userRepo.On("Delete", uint(5)).Return(nil).Once()

	svc := newAuthService(t, userRepo)
	err := svc.DeleteAccount(5, "Str0ng@pass")

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}
