package service

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/minikart-next/minikart/internal/config"
	"github.com/minikart-next/minikart/internal/constants"
	"github.com/minikart-next/minikart/internal/logger"
	"github.com/minikart-next/minikart/internal/models"
	"github.com/minikart-next/minikart/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, sign-in and password recovery.
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewAuthService creates an auth service.
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo}
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Answer   string `json:"answer"`
	Role     string `json:"role"`
	Location string `json:"location"`
}

// JWTClaims are the storefront token claims.
type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// HashPassword hashes with bcrypt.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a bcrypt hash against a candidate.
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword checks the candidate against the configured policy.
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	minLength := s.cfg.Security.PasswordPolicy.MinLength
	if minLength > 0 && len([]rune(password)) < minLength {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a user account. All form fields except location are
// required; the security answer is hashed alongside the password and used
// for password recovery. Role requests are not honored: every
// self-registered account starts as a regular user.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	address := strings.TrimSpace(input.Address)
	answer := strings.TrimSpace(input.Answer)
	if name == "" || phone == "" || address == "" || answer == "" || input.Password == "" {
		return nil, ErrMissingField
	}

	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := s.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	passwordHash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	answerHash, err := s.HashPassword(strings.ToLower(answer))
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        phone,
		Address:      address,
		AnswerHash:   answerHash,
		Role:         constants.RoleUser,
		Location:     strings.TrimSpace(input.Location),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Infow("user_registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(email, password string) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Warnw("last_login_update_failed", "user_id", user.ID, "error", err)
	}
	return user, token, expiresAt, nil
}

// ForgotPassword resets the password when the security answer matches.
func (s *AuthService) ForgotPassword(email, answer, newPassword string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if strings.TrimSpace(answer) == "" || newPassword == "" {
		return ErrMissingField
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if err := s.VerifyPassword(user.AnswerHash, strings.ToLower(strings.TrimSpace(answer))); err != nil {
		return ErrInvalidAnswer
	}

	passwordHash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	logger.Infow("password_reset", "user_id", user.ID)
	return nil
}

// FederatedIdentity is the provider popup result the storefront posts back.
type FederatedIdentity struct {
	Provider string `json:"provider"`
	Subject  string `json:"subject"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// LogFederatedIdentity records a federated sign-in result. Accounts are
// neither created nor linked; the identity is only logged.
func (s *AuthService) LogFederatedIdentity(identity FederatedIdentity) error {
	if strings.TrimSpace(identity.Provider) == "" || strings.TrimSpace(identity.Subject) == "" {
		return ErrMissingField
	}
	logger.Infow("federated_sign_in",
		"provider", identity.Provider,
		"subject", identity.Subject,
		"email", identity.Email,
		"name", identity.Name,
	)
	return nil
}

// GenerateJWT issues an HS256 token for the user.
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)

	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT validates a token and returns its claims.
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &JWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if parsed, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return parsed, nil
	}
	return nil, errors.New("invalid token")
}

// GetByID exposes the user directory to checkout.
func (s *AuthService) GetByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrMissingField
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}
