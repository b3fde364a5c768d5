package service

import (
	"context"
	"errors"
	"time"

	"buddyai-be/internal/constant"
	"buddyai-be/internal/dto"
	"buddyai-be/internal/entity"
	"buddyai-be/internal/pkg/apperror"
	"buddyai-be/internal/pkg/logger"
	"buddyai-be/internal/pkg/mailer"
	"buddyai-be/internal/repository/contract"
	"buddyai-be/internal/repository/specification"
	"buddyai-be/internal/repository/unitofwork"
	"buddyai-be/pkg/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, claims *token.Claims) error
	Authenticate(ctx context.Context, rawToken string) (*entity.User, *token.Claims, error)
	Me(user *entity.User) *dto.UserResponse
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	tokens       *token.Manager
	denylist     contract.TokenDenylist
	emailService mailer.IEmailService
	publisher    IPublisherService
	logger       logger.ILogger
}

// NewAuthService accepts a nil emailService when SMTP is not configured.
func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	tokens *token.Manager,
	denylist contract.TokenDenylist,
	emailService mailer.IEmailService,
	publisher IPublisherService,
	logger logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		tokens:       tokens,
		denylist:     denylist,
		emailService: emailService,
		publisher:    publisher,
		logger:       logger,
	}
}

var errInvalidCredentials = apperror.Validation("Invalid credentials")

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	// 1. Hash password before touching the database
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// 2. Check for existing user
	taken, err := uow.UserRepository().Count(ctx, specification.ByEmailOrUsername{Email: req.Email, Username: req.Username})
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, apperror.Validation("User already exists")
	}

	// 3. Save; the unique indexes still catch a registration racing this one
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		if errors.Is(err, contract.ErrDuplicateKey) {
			return nil, apperror.Validation("User already exists")
		}
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		go func(email, username string) {
			_ = s.emailService.SendWelcome(email, username)
		}(user.Email, user.Username)
	}

	s.publisher.Publish(ctx, constant.EventUserRegistered, map[string]interface{}{
		"user_id":  user.Id.String(),
		"username": user.Username,
	})

	res := toUserResponse(user)
	return &res, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var spec specification.Specification = specification.ByUsername{Username: req.Username}
	if req.Email != "" {
		spec = specification.ByEmail{Email: req.Email}
	}

	user, err := uow.UserRepository().FindOne(ctx, spec)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	issued, err := s.tokens.Issue(user.Id)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, constant.EventUserLogin, map[string]interface{}{
		"user_id": user.Id.String(),
	})

	return &dto.LoginResponse{
		Token: issued.Token,
		User:  toUserResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *token.Claims) error {
	if claims.ExpiresAt == nil {
		return apperror.InvalidToken("Invalid Token")
	}
	return s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Authenticate verifies the token and loads its user. A valid token whose user has since
// disappeared is rejected just like a missing one.
func (s *authService) Authenticate(ctx context.Context, rawToken string) (*entity.User, *token.Claims, error) {
	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		return nil, nil, apperror.InvalidToken("Invalid Token")
	}

	userId, err := uuid.Parse(claims.UserId)
	if err != nil {
		return nil, nil, apperror.InvalidToken("Invalid Token")
	}

	if claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, nil, err
		}
		if revoked {
			return nil, nil, apperror.Unauthorized("Token has been revoked")
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, apperror.Unauthorized("User not found")
	}

	return user, claims, nil
}

func (s *authService) Me(user *entity.User) *dto.UserResponse {
	res := toUserResponse(user)
	return &res
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:        user.Id,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
