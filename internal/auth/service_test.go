package auth

import (
	"context"
	"testing"

	pkgAuth "github.com/amcdesk/amcdesk-backend/pkg/auth"
	"github.com/amcdesk/amcdesk-backend/pkg/config"
	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"github.com/amcdesk/amcdesk-backend/pkg/enums"
	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
	"github.com/amcdesk/amcdesk-backend/pkg/security"
	"gorm.io/gorm"
)

var testPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    8,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     8,
	ArgonKeyLen:      16,
}

func testJWTCfg() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "amcdesk-test", ExpirationMinutes: 60}
}

type stubUserRepo struct {
	byEmail map[string]*models.AdminUser
	byID    map[int64]*models.AdminUser
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: make(map[string]*models.AdminUser),
		byID:    make(map[int64]*models.AdminUser),
	}
}

func (s *stubUserRepo) add(user *models.AdminUser) {
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id int64) (*models.AdminUser, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func seedUser(t *testing.T, repo *stubUserRepo, id int64, email, password string, status enums.RecordStatus) {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo.add(&models.AdminUser{
		ID:           id,
		Email:        email,
		Name:         "Test Admin",
		PasswordHash: hash,
		Role:         "admin",
		Status:       status,
	})
}

func TestLoginSuccess(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, 1, "admin@example.com", "correct horse", enums.RecordStatusActive)

	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: testJWTCfg()})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "Admin@Example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if resp.User.ID != 1 || resp.User.Email != "admin@example.com" {
		t.Fatalf("unexpected user summary %+v", resp.User)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTCfg(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 1 || claims.Role != "admin" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, 1, "admin@example.com", "correct horse", enums.RecordStatusActive)

	svc, _ := NewService(ServiceParams{UserRepo: repo, JWTConfig: testJWTCfg()})

	cases := []struct {
		name string
		req  LoginRequest
	}{
		{name: "wrong password", req: LoginRequest{Email: "admin@example.com", Password: "nope"}},
		{name: "unknown email", req: LoginRequest{Email: "ghost@example.com", Password: "correct horse"}},
		{name: "empty email", req: LoginRequest{Password: "correct horse"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.req)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected UNAUTHENTICATED, got %v", err)
			}
		})
	}
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, 2, "retired@example.com", "pw123456", enums.RecordStatusInactive)

	svc, _ := NewService(ServiceParams{UserRepo: repo, JWTConfig: testJWTCfg()})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "retired@example.com", Password: "pw123456"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHENTICATED, got %v", err)
	}
}

func TestMe(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, 3, "me@example.com", "pw123456", enums.RecordStatusActive)

	svc, _ := NewService(ServiceParams{UserRepo: repo, JWTConfig: testJWTCfg()})

	summary, err := svc.Me(context.Background(), 3)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if summary.Email != "me@example.com" {
		t.Fatalf("unexpected summary %+v", summary)
	}

	if _, err := svc.Me(context.Background(), 99); pkgerrors.As(err) == nil {
		t.Fatal("expected error for unknown user")
	}
	if _, err := svc.Me(context.Background(), 0); pkgerrors.As(err) == nil {
		t.Fatal("expected error for missing identity")
	}
}
