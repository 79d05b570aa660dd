// service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/blog-api/auth"
	"github.com/dev-mohitbeniwal/blog-api/dao"
	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	logger "github.com/dev-mohitbeniwal/blog-api/logging"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

type IAuthService interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResult, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResult, error)
	Me(ctx context.Context, principal *model.Principal) (*model.Author, error)
}

type AuthService struct {
	authorDAO    *dao.AuthorDAO
	issuer       *auth.TokenIssuer
	cacheService *util.CacheService
	eventBus     *util.EventBus
	defaultRole  string
	now          func() time.Time
}

var _ IAuthService = &AuthService{}

func NewAuthService(authorDAO *dao.AuthorDAO, issuer *auth.TokenIssuer, cacheService *util.CacheService, eventBus *util.EventBus, defaultRole string) *AuthService {
	if defaultRole == "" {
		defaultRole = model.RoleAuthor
	}
	return &AuthService{
		authorDAO:    authorDAO,
		issuer:       issuer,
		cacheService: cacheService,
		eventBus:     eventBus,
		defaultRole:  defaultRole,
		now:          time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login exchanges credentials for a token. Unknown email and wrong password
// are indistinguishable to the caller. Legacy digests are upgraded in place.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResult, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", blog_errors.ErrInvalidInput)
	}

	author, err := s.authorDAO.GetAuthorByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, blog_errors.ErrAuthorNotFound) {
			s.loginFailed(ctx, email, "unknown email")
			return nil, blog_errors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up author: %w", err)
	}

	if !auth.VerifyPassword(req.Password, author.PasswordHash) {
		s.loginFailed(ctx, email, "wrong password")
		return nil, blog_errors.ErrInvalidCredentials
	}

	if auth.NeedsRehash(author.PasswordHash) {
		if digest, err := auth.HashPassword(req.Password); err == nil {
			if err := s.authorDAO.UpdatePasswordHash(ctx, author.ID, digest, s.now().UTC()); err != nil {
				logger.Warn("Failed to upgrade password digest", zap.Error(err), zap.Int64("authorID", author.ID))
			}
		}
	}

	token, err := s.issuer.Issue(author.ID, author.Email, author.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.eventBus.Publish(ctx, util.EventAuthLogin, util.ChangePayload{
		Resource:   "author",
		ResourceID: strconv.FormatInt(author.ID, 10),
		Actor:      author.Email,
	})
	author.PasswordHash = ""
	return &model.AuthResult{Token: token, Author: *author}, nil
}

func (s *AuthService) loginFailed(ctx context.Context, email, reason string) {
	logger.Info("Login failed", zap.String("email", email), zap.String("reason", reason))
	s.eventBus.Publish(ctx, util.EventAuthLoginFailed, util.ChangePayload{
		Resource: "author",
		Actor:    email,
		Details:  map[string]string{"reason": reason},
	})
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", blog_errors.ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", blog_errors.ErrInvalidInput)
	}

	digest, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC().Truncate(time.Second)
	author := &model.Author{
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		Bio:          req.Bio,
		Role:         s.defaultRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := s.authorDAO.CreateAuthor(ctx, author)
	if err != nil {
		return nil, fmt.Errorf("failed to register author: %w", err)
	}
	author.ID = id

	token, err := s.issuer.Issue(author.ID, author.Email, author.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.cacheService.Invalidate(ctx, util.CacheAuthors)
	s.eventBus.Publish(ctx, util.EventAuthorRegistered, util.ChangePayload{
		Resource:   "author",
		ResourceID: strconv.FormatInt(id, 10),
		Actor:      email,
	})
	logger.Info("Author registered", zap.Int64("authorID", id))

	author.PasswordHash = ""
	return &model.AuthResult{Token: token, Author: *author}, nil
}

// Me returns the author behind a token principal.
func (s *AuthService) Me(ctx context.Context, principal *model.Principal) (*model.Author, error) {
	if principal == nil || principal.UserID <= 0 {
		return nil, blog_errors.ErrUnauthorized
	}
	author, err := s.authorDAO.GetAuthorByID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	author.PasswordHash = ""
	return author, nil
}
