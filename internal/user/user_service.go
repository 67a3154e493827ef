package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dashboard-service/internal/events"
	"dashboard-service/internal/realtime"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Custom errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error)
	Login(ctx context.Context, req *LoginRequest) (string, error)
	GetProfile(ctx context.Context, userID string) (*UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*UserResponse, error)
	UpdateWallet(ctx context.Context, userID string, req *UpdateWalletRequest) (*UserResponse, error)
	SetAvatar(ctx context.Context, userID, url string) (*UserResponse, error)
	VerifyToken(token string) (string, error)
}

type userService struct {
	repo      UserRepository
	emitter   *events.Emitter
	jwtSecret string
	jwtExpire time.Duration
}

func NewUserService(repo UserRepository, emitter *events.Emitter, jwtSecret string, jwtExpire time.Duration) UserService {
	if jwtExpire <= 0 {
		jwtExpire = 24 * time.Hour
	}
	return &userService{
		repo:      repo,
		emitter:   emitter,
		jwtSecret: jwtSecret,
		jwtExpire: jwtExpire,
	}
}

// generateJWT creates a new JWT token for the user
func (s *userService) generateJWT(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.jwtExpire).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// VerifyToken resolves a signed token back to its user ID. Also satisfies
// the realtime channel's TokenVerifier.
func (s *userService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	existingUser, _ := s.repo.FindByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:          uuid.New().String(),
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashedPassword),
		Role:        RoleBasic,
		BdagBalance: "0",
		Level:       1,
		Created:     time.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return NewUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req *LoginRequest) (string, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateJWT(user)
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return NewUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return NewUserResponse(user), nil
}

// UpdateWallet shallow-merges the provided wallet fields onto the user and
// pushes the refreshed stats to the owner's connections.
func (s *userService) UpdateWallet(ctx context.Context, userID string, req *UpdateWalletRequest) (*UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.WalletAddress != nil {
		user.WalletAddress = *req.WalletAddress
	}
	if req.BdagBalance != nil {
		amount, err := ParseAmount(*req.BdagBalance)
		if err != nil || amount < 0 {
			return nil, ErrInvalidAmount
		}
		user.BdagBalance = FormatAmount(amount)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.emitter.ToUser(ctx, user.ID, realtime.MessageTypeUserStatsUpdate, NewStatsPayload(user))
	return NewUserResponse(user), nil
}

func (s *userService) SetAvatar(ctx context.Context, userID, url string) (*UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.Avatar = url
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return NewUserResponse(user), nil
}
