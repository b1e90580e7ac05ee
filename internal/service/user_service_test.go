package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/contesthub/backend/internal/domain"
	"github.com/contesthub/backend/internal/infrastructure"
)

func newUserFixture() (*UserService, *memUserRepo) {
	repo := newMemUserRepo()
	cfg := &infrastructure.JWTConfig{
		SecretKey:          "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "contesthub",
	}
	return NewUserService(repo, cfg, otel.Tracer("test"), zap.NewNop()), repo
}

func TestRegister(t *testing.T) {
	t.Run("defaults to contestee", func(t *testing.T) {
		svc, _ := newUserFixture()
		user, err := svc.Register(context.Background(), &domain.SignupRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "secret1",
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if user.Role != domain.RoleContestee {
			t.Fatalf("role = %s, want contestee", user.Role)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
			t.Fatal("stored hash must verify against the original password")
		}
		if user.PasswordHash == "secret1" {
			t.Fatal("password must not be stored in plain text")
		}
	})

	t.Run("keeps requested role", func(t *testing.T) {
		svc, _ := newUserFixture()
		user, err := svc.Register(context.Background(), &domain.SignupRequest{
			Name:     "Bob",
			Email:    "bob@example.com",
			Password: "secret1",
			Role:     domain.RoleCreator,
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if user.Role != domain.RoleCreator {
			t.Fatalf("role = %s, want creator", user.Role)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, _ := newUserFixture()
		req := &domain.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"}
		if _, err := svc.Register(context.Background(), req); err != nil {
			t.Fatalf("first Register: %v", err)
		}
		_, err := svc.Register(context.Background(), req)
		if !errors.Is(err, domain.ErrEmailTaken) {
			t.Fatalf("err = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc, _ := newUserFixture()
		_, err := svc.Register(context.Background(), &domain.SignupRequest{
			Name:     "Eve",
			Email:    "eve@example.com",
			Password: "secret1",
			Role:     domain.Role("admin"),
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newUserFixture()
	if _, err := svc.Register(context.Background(), &domain.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret1",
		Role:     domain.RoleCreator,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("success issues a token pair", func(t *testing.T) {
		user, tokens, err := svc.Login(context.Background(), "alice@example.com", "secret1")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if tokens.AccessToken == "" || tokens.RefreshToken == "" {
			t.Fatal("expected both tokens to be issued")
		}

		identity, err := svc.ValidateAccessToken(tokens.AccessToken)
		if err != nil {
			t.Fatalf("ValidateAccessToken: %v", err)
		}
		if identity.UserID != user.ID {
			t.Fatalf("identity user = %s, want %s", identity.UserID, user.ID)
		}
		if identity.Role != domain.RoleCreator {
			t.Fatalf("identity role = %s, want creator", identity.Role)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong-1")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email looks identical to wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "secret1")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestValidateAccessToken(t *testing.T) {
	svc, _ := newUserFixture()
	if _, err := svc.Register(context.Background(), &domain.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret1",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, tokens, err := svc.Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	t.Run("refresh token is not an access token", func(t *testing.T) {
		if _, err := svc.ValidateAccessToken(tokens.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := svc.ValidateAccessToken("not.a.jwt"); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		other, _ := newUserFixture()
		other.jwtConfig.SecretKey = "other-secret"
		if _, err := other.ValidateAccessToken(tokens.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("err = %v, want ErrInvalidToken", err)
		}
	})
}

func TestRefreshToken(t *testing.T) {
	svc, _ := newUserFixture()
	if _, err := svc.Register(context.Background(), &domain.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret1",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, tokens, err := svc.Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	t.Run("issues a fresh pair", func(t *testing.T) {
		fresh, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
		if err != nil {
			t.Fatalf("RefreshToken: %v", err)
		}
		if _, err := svc.ValidateAccessToken(fresh.AccessToken); err != nil {
			t.Fatalf("refreshed access token invalid: %v", err)
		}
	})

	t.Run("access token cannot be used to refresh", func(t *testing.T) {
		if _, err := svc.RefreshToken(context.Background(), tokens.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("err = %v, want ErrInvalidToken", err)
		}
	})
}
