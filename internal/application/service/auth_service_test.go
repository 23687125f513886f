package service

import (
	"context"
	"testing"
	"time"

	"github.com/sellwise/pos-api/internal/infrastructure/memory"
	"github.com/sellwise/pos-api/pkg/apperror"
	"github.com/sellwise/pos-api/pkg/utils"
)

func newAuthService() *AuthService {
	return NewAuthService(memory.NewCashierRepository(), utils.NewJWTManager("test-secret", time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	cashier, err := svc.Register(ctx, &RegisterInput{
		Name:     "Nino",
		Email:    "nino@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if cashier.Password == "correct horse" {
		t.Fatal("password stored in plaintext")
	}

	out, err := svc.Login(ctx, &LoginInput{Email: "nino@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if out.AccessToken == "" {
		t.Error("login returned empty access token")
	}
	if out.Cashier.ID != cashier.ID {
		t.Error("login returned a different cashier")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@example.com", Password: "long enough"}},
		{"missing email", RegisterInput{Name: "A", Password: "long enough"}},
		{"short password", RegisterInput{Name: "A", Email: "a@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, &tt.input); !apperror.IsKind(err, apperror.KindValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	input := &RegisterInput{Name: "Nino", Email: "nino@example.com", Password: "correct horse"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.Register(ctx, input); !apperror.IsKind(err, apperror.KindAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{Name: "Nino", Email: "nino@example.com", Password: "correct horse"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name  string
		input LoginInput
	}{
		{"unknown email", LoginInput{Email: "ghost@example.com", Password: "correct horse"}},
		{"wrong password", LoginInput{Email: "nino@example.com", Password: "wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, &tt.input); !apperror.IsKind(err, apperror.KindUnauthorized) {
				t.Errorf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	manager := utils.NewJWTManager("test-secret", time.Hour)
	svc := NewAuthService(memory.NewCashierRepository(), manager)
	ctx := context.Background()

	cashier, err := svc.Register(ctx, &RegisterInput{Name: "Nino", Email: "nino@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	out, err := svc.Login(ctx, &LoginInput{Email: "nino@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	claims, err := manager.ValidateToken(out.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.CashierID != cashier.ID {
		t.Errorf("claims cashier = %s, want %s", claims.CashierID, cashier.ID)
	}
	if claims.Email != "nino@example.com" {
		t.Errorf("claims email = %s", claims.Email)
	}
}
