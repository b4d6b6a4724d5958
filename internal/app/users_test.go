package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"hotelbook/internal/app"
	"hotelbook/internal/domain"
)

type fakeUsers struct {
	m map[string]domain.User
}

func (f *fakeUsers) Create(ctx context.Context, u domain.User) error {
	if f.m == nil {
		f.m = map[string]domain.User{}
	}
	f.m[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (domain.User, error) {
	u, ok := f.m[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range f.m {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUsers) Update(ctx context.Context, u domain.User) error {
	if _, ok := f.m[u.ID]; !ok {
		return domain.ErrNotFound
	}
	f.m[u.ID] = u
	return nil
}

func (f *fakeUsers) Delete(ctx context.Context, id string) error {
	if _, ok := f.m[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.m, id)
	return nil
}

func (f *fakeUsers) List(ctx context.Context, limit, page int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.m {
		out = append(out, u)
	}
	return out, nil
}

// fakeHasher makes digests reversible so tests can assert without bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "digest:" + plain, nil }
func (fakeHasher) Verify(digest, plain string) bool  { return digest == "digest:"+plain }

type fakeTokens struct{}

func (fakeTokens) Issue(id domain.Identity) (string, error) {
	return fmt.Sprintf("tok:%s:%d", id.UserID, id.Role), nil
}

func (fakeTokens) Verify(token string) (domain.Identity, error) {
	return domain.Identity{}, domain.ErrUnauthorized
}

func newUserEnv(t *testing.T) (*app.UserService, *fakeUsers) {
	t.Helper()
	users := &fakeUsers{}
	return app.NewUserService(users, fakeHasher{}, fakeTokens{}), users
}

func TestRegister(t *testing.T) {
	svc, users := newUserEnv(t)
	ctx := context.Background()

	creds, err := svc.Register(ctx, "  Alice@Example.COM ", "alice", "s3cret", nil, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if creds.User.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", creds.User.Email)
	}
	if creds.User.Role != domain.RoleUser {
		t.Fatalf("role = %v, want RoleUser", creds.User.Role)
	}
	if creds.Token == "" {
		t.Fatal("register must log the account in")
	}
	if creds.User.PasswordHash != "" {
		t.Fatal("password digest leaked in response")
	}
	stored := users.m[creds.User.ID]
	if stored.PasswordHash != "digest:s3cret" {
		t.Fatalf("stored digest = %q", stored.PasswordHash)
	}

	// same address, different casing: conflict
	if _, err := svc.Register(ctx, "ALICE@example.com", "alice2", "pw", nil, nil); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate email: err = %v, want ErrConflict", err)
	}

	if _, err := svc.Register(ctx, "", "noone", "pw", nil, nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty email: err = %v, want ErrValidation", err)
	}
}

func TestRegisterRoleElevation(t *testing.T) {
	svc, _ := newUserEnv(t)
	ctx := context.Background()
	emp := domain.RoleEmployee

	// anonymous callers cannot pick a role
	if _, err := svc.Register(ctx, "e@x.com", "e", "pw", &emp, nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("anonymous elevation: err = %v, want ErrForbidden", err)
	}
	// neither can a plain user
	caller := ident("u1", domain.RoleUser)
	if _, err := svc.Register(ctx, "e@x.com", "e", "pw", &emp, &caller); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("user elevation: err = %v, want ErrForbidden", err)
	}
	// an admin can
	admin := ident("a1", domain.RoleAdmin)
	creds, err := svc.Register(ctx, "e@x.com", "e", "pw", &emp, &admin)
	if err != nil {
		t.Fatalf("admin elevation: %v", err)
	}
	if creds.User.Role != domain.RoleEmployee {
		t.Fatalf("role = %v, want RoleEmployee", creds.User.Role)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newUserEnv(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice@example.com", "alice", "s3cret", nil, nil); err != nil {
		t.Fatalf("register: %v", err)
	}

	creds, err := svc.Login(ctx, "Alice@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if creds.Token == "" || creds.User.PasswordHash != "" {
		t.Fatalf("creds = %+v", creds)
	}

	// wrong password and unknown email fail the same way
	if _, err := svc.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("bad password: err = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "s3cret"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unknown email: err = %v, want ErrUnauthorized", err)
	}
}

func TestGetUser(t *testing.T) {
	svc, _ := newUserEnv(t)
	ctx := context.Background()

	creds, err := svc.Register(ctx, "alice@example.com", "alice", "pw", nil, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	self := ident(creds.User.ID, domain.RoleUser)

	// empty id resolves to the caller
	u, err := svc.Get(ctx, self, "")
	if err != nil || u.ID != creds.User.ID {
		t.Fatalf("self get = %+v, %v", u, err)
	}
	if u.PasswordHash != "" {
		t.Fatal("password digest leaked")
	}

	if _, err := svc.Get(ctx, ident("other", domain.RoleUser), creds.User.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger get: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(ctx, ident("staff", domain.RoleEmployee), creds.User.ID); err != nil {
		t.Fatalf("employee get: %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	svc, _ := newUserEnv(t)
	ctx := context.Background()

	a, err := svc.Register(ctx, "alice@example.com", "alice", "pw", nil, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	b, err := svc.Register(ctx, "bob@example.com", "bob", "pw", nil, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	self := ident(a.User.ID, domain.RoleUser)

	// taking another account's email is a conflict
	email := "bob@example.com"
	if _, err := svc.Update(ctx, self, "", domain.UserUpdate{Email: &email}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("email takeover: err = %v, want ErrConflict", err)
	}

	// self role elevation is refused
	adm := domain.RoleAdmin
	if _, err := svc.Update(ctx, self, "", domain.UserUpdate{Role: &adm}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("self elevation: err = %v, want ErrForbidden", err)
	}

	// an admin can promote
	admin := ident("root", domain.RoleAdmin)
	emp := domain.RoleEmployee
	u, err := svc.Update(ctx, admin, b.User.ID, domain.UserUpdate{Role: &emp})
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if u.Role != domain.RoleEmployee {
		t.Fatalf("role = %v, want RoleEmployee", u.Role)
	}

	// pseudo change keeps everything else
	p := "alicia"
	u, err = svc.Update(ctx, self, "", domain.UserUpdate{Pseudo: &p})
	if err != nil {
		t.Fatalf("pseudo: %v", err)
	}
	if u.Pseudo != "alicia" || u.Email != "alice@example.com" {
		t.Fatalf("updated user = %+v", u)
	}
}

func TestDeleteUser(t *testing.T) {
	svc, users := newUserEnv(t)
	ctx := context.Background()

	creds, err := svc.Register(ctx, "alice@example.com", "alice", "pw", nil, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Delete(ctx, ident(creds.User.ID, domain.RoleUser)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(users.m) != 0 {
		t.Fatal("account still stored")
	}
}

func TestListUsers(t *testing.T) {
	svc, _ := newUserEnv(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice@example.com", "alice", "pw", nil, nil); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.List(ctx, ident("e", domain.RoleEmployee), 10, 0); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("employee list: err = %v, want ErrForbidden", err)
	}
	us, err := svc.List(ctx, ident("a", domain.RoleAdmin), 10, 0)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	for _, u := range us {
		if u.PasswordHash != "" {
			t.Fatal("password digest leaked in listing")
		}
	}
}
