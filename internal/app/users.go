package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"hotelbook/internal/domain"
)

type UserService struct {
	users  domain.UserRepository
	hasher domain.PasswordHasher
	tokens domain.TokenManager
}

func NewUserService(u domain.UserRepository, h domain.PasswordHasher, t domain.TokenManager) *UserService {
	return &UserService{users: u, hasher: h, tokens: t}
}

type Credentials struct {
	User  domain.User
	Token string
}

// Register creates an account and logs it in. The role defaults to User;
// only an already-authenticated Admin may set a different one.
func (s *UserService) Register(ctx context.Context, email, pseudo, password string, role *domain.Role, caller *domain.Identity) (Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Credentials{}, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return Credentials{}, fmt.Errorf("%w: email already in use", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return Credentials{}, err
	}

	r := domain.RoleUser
	if role != nil && *role != domain.RoleUser {
		if caller == nil || !CanSetRole(*caller) {
			return Credentials{}, domain.ErrForbidden
		}
		if !role.Valid() {
			return Credentials{}, fmt.Errorf("%w: unknown role", domain.ErrValidation)
		}
		r = *role
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return Credentials{}, err
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Pseudo:       pseudo,
		PasswordHash: digest,
		Role:         r,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return Credentials{}, err
	}
	return s.login(u)
}

// Login checks the credentials and issues a token. A wrong email and a
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Credentials{}, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
		}
		return Credentials{}, err
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return Credentials{}, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}
	return s.login(u)
}

func (s *UserService) login(u domain.User) (Credentials, error) {
	tok, err := s.tokens.Issue(domain.Identity{UserID: u.ID, Pseudo: u.Pseudo, Role: u.Role})
	if err != nil {
		return Credentials{}, err
	}
	u.PasswordHash = ""
	return Credentials{User: u, Token: tok}, nil
}

func (s *UserService) Get(ctx context.Context, caller domain.Identity, id string) (domain.User, error) {
	if id == "" {
		id = caller.UserID
	}
	if !CanReadUser(caller, id) {
		return domain.User{}, domain.ErrForbidden
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *UserService) Update(ctx context.Context, caller domain.Identity, id string, upd domain.UserUpdate) (domain.User, error) {
	if id == "" {
		id = caller.UserID
	}
	if !CanUpdateUser(caller, id) {
		return domain.User{}, domain.ErrForbidden
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		if email != u.Email {
			if other, err := s.users.GetByEmail(ctx, email); err == nil && other.ID != id {
				return domain.User{}, fmt.Errorf("%w: email already in use", domain.ErrConflict)
			} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return domain.User{}, err
			}
			u.Email = email
		}
	}
	if upd.Pseudo != nil {
		u.Pseudo = *upd.Pseudo
	}
	if upd.Password != nil {
		digest, err := s.hasher.Hash(*upd.Password)
		if err != nil {
			return domain.User{}, err
		}
		u.PasswordHash = digest
	}
	if upd.Role != nil && *upd.Role != u.Role {
		if !CanSetRole(caller) {
			return domain.User{}, domain.ErrForbidden
		}
		if !upd.Role.Valid() {
			return domain.User{}, fmt.Errorf("%w: unknown role", domain.ErrValidation)
		}
		u.Role = *upd.Role
	}

	if err := s.users.Update(ctx, u); err != nil {
		return domain.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}

// Delete removes the caller's own account.
func (s *UserService) Delete(ctx context.Context, caller domain.Identity) error {
	if _, err := s.users.GetByID(ctx, caller.UserID); err != nil {
		return err
	}
	return s.users.Delete(ctx, caller.UserID)
}

func (s *UserService) List(ctx context.Context, caller domain.Identity, limit, page int) ([]domain.User, error) {
	if !CanListUsers(caller) {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}
	us, err := s.users.List(ctx, limit, page)
	if err != nil {
		return nil, err
	}
	for i := range us {
		us[i].PasswordHash = ""
	}
	return us, nil
}
