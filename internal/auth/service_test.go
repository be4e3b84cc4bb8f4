package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	pkgAuth "github.com/petrocini/fast-sale-backend/pkg/auth"
	"github.com/petrocini/fast-sale-backend/pkg/auth/session"
	"github.com/petrocini/fast-sale-backend/pkg/config"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
	pkgerrors "github.com/petrocini/fast-sale-backend/pkg/errors"
	"github.com/petrocini/fast-sale-backend/pkg/security"
	"gorm.io/gorm"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "secret",
	Issuer:            "fastsale-test",
	ExpirationMinutes: 15,
}

type stubUserRepo struct {
	byEmail map[string]*models.User
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if account, ok := s.byEmail[strings.ToLower(email)]; ok {
		return account, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubSessions struct {
	tokens  map[string]string
	revoked []string
}

func (s *stubSessions) Generate(_ context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	s.tokens[accessID] = token
	return token, nil
}

func (s *stubSessions) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.tokens, oldAccessID)
	newAccessID := session.NewAccessID()
	newToken := "refresh-" + newAccessID
	s.tokens[newAccessID] = newToken
	return newAccessID, newToken, nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	delete(s.tokens, accessID)
	s.revoked = append(s.revoked, accessID)
	return nil
}

func newTestService(t *testing.T, accounts ...*models.User) (Service, *stubSessions) {
	t.Helper()
	repo := &stubUserRepo{byEmail: map[string]*models.User{}}
	for _, account := range accounts {
		repo.byEmail[strings.ToLower(account.Email)] = account
	}
	sessions := &stubSessions{tokens: map[string]string{}}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, sessions
}

func operatorAccount(t *testing.T, email, password string, active bool) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Operator",
		PasswordHash: hash,
		IsActive:     active,
	}
}

func TestLoginSuccess(t *testing.T) {
	account := operatorAccount(t, "op@example.com", "hunter2secret", true)
	svc, _ := newTestService(t, account)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "OP@example.com", Password: "hunter2secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.User.ID != account.ID {
		t.Fatalf("unexpected user in response: %s", resp.User.ID)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != account.ID || claims.ID == "" {
		t.Fatal("expected user id and jti in claims")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	account := operatorAccount(t, "op@example.com", "hunter2secret", true)
	svc, _ := newTestService(t, account)
	ctx := context.Background()

	cases := []struct {
		name string
		req  LoginRequest
	}{
		{"wrongPassword", LoginRequest{Email: "op@example.com", Password: "wrong"}},
		{"unknownEmail", LoginRequest{Email: "nobody@example.com", Password: "hunter2secret"}},
		{"blankEmail", LoginRequest{Email: "  ", Password: "hunter2secret"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tc.req)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	account := operatorAccount(t, "op@example.com", "hunter2secret", false)
	svc, _ := newTestService(t, account)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "op@example.com", Password: "hunter2secret"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for inactive account, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	account := operatorAccount(t, "op@example.com", "hunter2secret", true)
	svc, _ := newTestService(t, account)
	ctx := context.Background()

	login, err := svc.Login(ctx, LoginRequest{Email: "op@example.com", Password: "hunter2secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == login.RefreshToken {
		t.Fatal("expected a rotated token pair")
	}

	// the old pair is burned
	_, err = svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for reused refresh token, got %v", err)
	}
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  "not-a-jwt",
		RefreshToken: "whatever",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	account := operatorAccount(t, "op@example.com", "hunter2secret", true)
	svc, sessions := newTestService(t, account)
	ctx := context.Background()

	login, err := svc.Login(ctx, LoginRequest{Email: "op@example.com", Password: "hunter2secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, login.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	if err := svc.Logout(ctx, claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != claims.ID {
		t.Fatalf("expected session %s revoked, got %v", claims.ID, sessions.revoked)
	}

	if err := svc.Logout(ctx, "  "); err == nil {
		t.Fatal("expected error for blank access id")
	}
}

func TestMintedTokenExpiry(t *testing.T) {
	account := operatorAccount(t, "op@example.com", "hunter2secret", true)
	svc, _ := newTestService(t, account)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "op@example.com", Password: "hunter2secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 || ttl > time.Duration(testJWTConfig.ExpirationMinutes)*time.Minute {
		t.Fatalf("unexpected token ttl %s", ttl)
	}
}
