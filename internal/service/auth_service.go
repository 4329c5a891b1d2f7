package service

import (
	"context"
	"fmt"
	"time"

	"quicknote-be/internal/dto"
	"quicknote-be/internal/entity"
	"quicknote-be/internal/pkg/apperror"
	"quicknote-be/internal/repository/contract"
	"quicknote-be/internal/repository/specification"
	"quicknote-be/internal/repository/unitofwork"
	"quicknote-be/pkg/events"
	"quicknote-be/pkg/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, sessionId string) (*entity.User, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   contract.SessionRepository
	publisher  IPublisherService
	jwtSecret  string
	tokenTTL   time.Duration
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	sessions contract.SessionRepository,
	publisher IPublisherService,
	jwtSecret string,
	tokenTTL time.Duration,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		sessions:   sessions,
		publisher:  publisher,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
	}
}

// Register validates fail-fast: the first failing check wins and exactly
// one error is reported per attempt. The duplicate check runs before the
// format checks, matching the documented contract.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrDuplicateEmail
	}

	if len(req.Email) < 4 {
		return nil, apperror.ErrInvalidEmail
	}
	if len(req.FirstName) < 2 {
		return nil, apperror.ErrInvalidFirstName
	}
	if len(req.LastName) < 2 {
		return nil, apperror.ErrInvalidLastName
	}
	if req.Password != req.PasswordConfirmation {
		return nil, apperror.ErrPasswordMismatch
	}
	if len(req.Password) < 7 {
		return nil, apperror.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	signedToken, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeUserRegistered, map[string]interface{}{
		"user_id": user.Id,
		"email":   user.Email,
	})

	return &dto.AuthResponse{
		AccessToken: signedToken,
		User: dto.UserDTO{
			Id:        user.Id,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUnknownEmail
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	signedToken, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeUserLogin, map[string]interface{}{
		"user_id": user.Id,
	})

	return &dto.AuthResponse{
		AccessToken: signedToken,
		User: dto.UserDTO{
			Id:        user.Id,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}, nil
}

// Logout invalidates the session bound to the token. It is idempotent:
// missing, malformed, expired, or already revoked tokens all succeed.
func (s *authService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}

	token, err := jwt.Parse(accessToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil
	}

	return s.sessions.Delete(ctx, sid)
}

// CurrentUser resolves a session id to its account. A missing or revoked
// session resolves to nil, as does a session whose account has been
// deleted in the meantime.
func (s *authService) CurrentUser(ctx context.Context, sessionId string) (*entity.User, error) {
	session, err := s.sessions.Find(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserRepository().FindOne(ctx, specification.ByID{ID: session.UserID})
}

func (s *authService) issueSession(ctx context.Context, user *entity.User) (string, error) {
	sid := uuid.New().String()
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"sid":     sid,
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	if err := s.sessions.Save(ctx, &store.Session{
		ID:        sid,
		UserID:    user.Id,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return signedToken, nil
}

func (s *authService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishEvent(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}
