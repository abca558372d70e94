package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studydeck-backend/internal/logger"
	"github.com/yungbote/studydeck-backend/internal/repos"
	"github.com/yungbote/studydeck-backend/internal/requestdata"
	"github.com/yungbote/studydeck-backend/internal/types"
	"github.com/yungbote/studydeck-backend/internal/utils"
)

type AuthService interface {
	RegisterUser(ctx context.Context, email, password, firstName, lastName string) (*types.User, error)
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, userTokenRepo repos.UserTokenRepo, jwtSecretKey string, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		db:            db,
		log:           baseLog.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *authService) RegisterUser(ctx context.Context, email, password, firstName, lastName string) (*types.User, error) {
	email = utils.NormalizeEmail(email)
	if err := utils.ValidateCredentials(email, password); err != nil {
		return nil, err
	}
	exists, err := s.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email already registered")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  hash,
		FirstName: firstName,
		LastName:  lastName,
	}
	if _, err := s.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.log.Info("Registered user", "user_id", user.ID.String())
	return user, nil
}

func (s *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = utils.NormalizeEmail(email)
	users, err := s.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", "", fmt.Errorf("failed to look up user: %w", err)
	}
	if len(users) == 0 {
		return "", "", fmt.Errorf("invalid credentials")
	}
	user := users[0]
	if err := utils.CheckPassword(user.Password, password); err != nil {
		return "", "", fmt.Errorf("invalid credentials")
	}
	var accessToken, refreshToken string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userTokenRepo.DeleteExpired(ctx, tx, time.Now()); err != nil {
			return err
		}
		accessToken, err = s.generateAccessToken(user.ID)
		if err != nil {
			return err
		}
		refreshToken = uuid.New().String()
		_, err = s.userTokenRepo.Create(ctx, tx, []*types.UserToken{{
			ID:           uuid.New(),
			UserID:       user.ID,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(s.refreshTTL),
		}})
		return err
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to issue tokens: %w", err)
	}
	return accessToken, refreshToken, nil
}

func (s *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	token, err := s.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if token == nil || time.Now().After(token.ExpiresAt) {
		return "", "", fmt.Errorf("invalid refresh token")
	}
	var accessToken, newRefreshToken string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userTokenRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{token.UserID}); err != nil {
			return err
		}
		accessToken, err = s.generateAccessToken(token.UserID)
		if err != nil {
			return err
		}
		newRefreshToken = uuid.New().String()
		_, err = s.userTokenRepo.Create(ctx, tx, []*types.UserToken{{
			ID:           uuid.New(),
			UserID:       token.UserID,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(s.refreshTTL),
		}})
		return err
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to rotate tokens: %w", err)
	}
	return accessToken, newRefreshToken, nil
}

func (s *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("not authenticated")
	}
	if err := s.userTokenRepo.DeleteByUserIDs(ctx, nil, []uuid.UUID{rd.UserID}); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}

func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("invalid token subject")
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}), nil
}

func (s *authService) generateAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecretKey))
}
