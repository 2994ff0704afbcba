package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
	"github.com/yourusername/quizverse-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizverse-api/internal/pkg/errors"
	"github.com/yourusername/quizverse-api/pkg/auth"
)

// passwordSymbols is the set of special characters a password must draw from.
const passwordSymbols = "@#$%^&*"

// AuthService provides registration, login and account management.
type AuthService struct {
	userRepo    repository.UserRepository
	jwtService  *auth.JWTService
	activitySvc *ActivityService
	db          *gorm.DB
}

// RegisterInput contains the data needed to create an account.
type RegisterInput struct {
	FullName string `json:"fullname" binding:"required,min=1,max=100"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required"`
}

// NewAuthService creates a new auth service and returns an error on problems.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	activitySvc *ActivityService,
	db *gorm.DB,
) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		activitySvc: activitySvc,
		db:          db,
	}, nil
}

// Register creates a new account. A taken username surfaces as ErrConflict.
func (s *AuthService) Register(input RegisterInput) (*entity.User, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Username = strings.TrimSpace(input.Username)

	if input.FullName == "" {
		return nil, fmt.Errorf("%w: full name is required", apperrors.ErrValidation)
	}
	if len(input.Username) < 3 {
		return nil, fmt.Errorf("%w: username must be at least 3 characters", apperrors.ErrValidation)
	}
	if strings.ContainsAny(input.Username, " \t") {
		return nil, fmt.Errorf("%w: username must not contain spaces", apperrors.ErrValidation)
	}
	if err := validatePasswordComplexity(input.Password); err != nil {
		return nil, err
	}

	user := &entity.User{
		FullName: input.FullName,
		Username: input.Username,
		Password: input.Password,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	log.Printf("[AuthService] User #%d (%s) registered", user.ID, user.Username)
	return user, nil
}

// Login verifies the credentials and issues a JWT. Wrong username and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (*entity.User, string, error) {
	username = strings.TrimSpace(username)

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
		}
		return nil, "", err
	}
	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("[AuthService] User #%d (%s) logged in", user.ID, user.Username)
	return user, token, nil
}

// GetProfile returns the user behind an id.
func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// ChangePassword replaces the user's password after verifying the current one.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(currentPassword) {
		return fmt.Errorf("%w: current password is incorrect", apperrors.ErrUnauthorized)
	}
	if err := validatePasswordComplexity(newPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(userID, string(hashed)); err != nil {
		return err
	}

	if s.activitySvc != nil {
		s.activitySvc.Log(userID, entity.ActivityPasswordChanged, "Your password was changed")
	}
	log.Printf("[AuthService] User #%d changed password", userID)
	return nil
}

// DeleteAccount removes the account after verifying the password. Quizzes,
// answers, completions and activity entries cascade in the database.
func (s *AuthService) DeleteAccount(userID uint, password string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(password) {
		return fmt.Errorf("%w: password is incorrect", apperrors.ErrUnauthorized)
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return err
	}
	log.Printf("[AuthService] User #%d (%s) deleted their account", userID, user.Username)
	return nil
}

// validatePasswordComplexity enforces the password policy: at least 8
// characters with an uppercase letter, a lowercase letter, a digit and one of
// the passwordSymbols characters.
func validatePasswordComplexity(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("%w: password must contain an uppercase letter", apperrors.ErrValidation)
	}
	if !hasLower {
		return fmt.Errorf("%w: password must contain a lowercase letter", apperrors.ErrValidation)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain a digit", apperrors.ErrValidation)
	}
	if !hasSymbol {
		return fmt.Errorf("%w: password must contain one of %q", apperrors.ErrValidation, passwordSymbols)
	}
	return nil
}
