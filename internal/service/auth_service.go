package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/apperror"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

// Client-facing messages of the auth flow.
const (
	MsgAdminOnly          = "Only Admin can create another Admin"
	MsgEmailExists        = "Email already exists"
	MsgInvalidCredentials = "Invalid email or password"
	MsgRegistrationFailed = "Registration failed"
	MsgLoginFailed        = "Login failed"
)

// AuthService registers accounts and starts sessions.
type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	signer TokenSigner
	log    *zap.Logger
}

func NewAuthService(users UserStore, hasher PasswordHasher, signer TokenSigner, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{users: users, hasher: hasher, signer: signer, log: log}
}

// RegisterInput is a validated registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthResult is the outcome of a successful register or login.
type AuthResult struct {
	User  model.AuthUser
	Token string
}

// EffectiveRole decides the stored role of a new account.  Without any
// active admin the account becomes the bootstrap admin whatever was asked
// for.  Once an admin exists, only an admin caller may create another.
func EffectiveRole(requested string, caller *utils.Identity) repository.RoleResolver {
	return func(adminExists bool) (string, error) {
		if !adminExists {
			return model.RoleAdmin, nil
		}
		if requested == model.RoleAdmin && (caller == nil || caller.Role != model.RoleAdmin) {
			return "", repository.ErrForbidden
		}
		if requested == "" {
			return model.RoleUser, nil
		}
		return requested, nil
	}
}

// Register creates the account and signs a token for it.  caller is the
// identity of the session making the request, nil when anonymous.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, caller *utils.Identity) (*AuthResult, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, MsgRegistrationFailed)
	}

	u := &model.User{Name: in.Name, Email: in.Email, PasswordHash: hash}
	if err := s.users.Create(ctx, u, EffectiveRole(in.Role, caller)); err != nil {
		switch {
		case errors.Is(err, repository.ErrForbidden):
			return nil, apperror.New(apperror.CodeForbidden, MsgAdminOnly)
		case errors.Is(err, repository.ErrEmailExists):
			return nil, apperror.New(apperror.CodeConflict, MsgEmailExists)
		default:
			return nil, apperror.Wrap(err, apperror.CodeInternal, MsgRegistrationFailed)
		}
	}
	if u.Role == model.RoleAdmin {
		s.log.Info("admin account created", zap.String("user_id", u.ID), zap.Bool("by_admin", caller != nil))
	}

	token, err := s.signer.Sign(utils.Identity{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil || token == "" {
		return nil, apperror.Wrap(err, apperror.CodeInternal, MsgRegistrationFailed)
	}
	return &AuthResult{User: u.AuthView(), Token: token}, nil
}

// Login checks the credentials.  An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.New(apperror.CodeUnauthorized, MsgInvalidCredentials)
		}
		return nil, apperror.Wrap(err, apperror.CodeInternal, MsgLoginFailed)
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, apperror.New(apperror.CodeUnauthorized, MsgInvalidCredentials)
	}

	token, err := s.signer.Sign(utils.Identity{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil || token == "" {
		return nil, apperror.Wrap(err, apperror.CodeInternal, MsgLoginFailed)
	}
	return &AuthResult{User: u.AuthView(), Token: token}, nil
}

// AdminExists reports whether the catalog already has an active admin.
func (s *AuthService) AdminExists(ctx context.Context) (bool, error) {
	return s.users.AdminExists(ctx)
}
