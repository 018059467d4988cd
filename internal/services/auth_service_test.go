package services

import (
	"errors"
	"testing"

	"github.com/Xusanbek0039/lms-platform/internal/models"
)

func newAuthService(env *testEnv) AuthService {
	return NewAuthService(env.userRepo, env.coinRepo, "test-secret")
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	user, err := svc.Register(RegisterInput{
		Username:  "anna",
		Password:  "secret123",
		FirstName: "Анна",
		LastName:  "Иванова",
		Phone:     "+79001234567",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Role != models.RoleStudent {
		t.Errorf("default role = %s, want student", user.Role)
	}
	if user.PasswordHash == "secret123" {
		t.Error("password must not be stored in plain text")
	}

	result, err := svc.Login("anna", "secret123", "127.0.0.1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token == "" {
		t.Error("login should return a token")
	}

	validated, err := svc.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if validated.ID != user.ID {
		t.Errorf("validated user = %s, want %s", validated.ID, user.ID)
	}
	if validated.LastActivity == nil {
		t.Error("login should record last activity")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	if _, err := svc.Register(RegisterInput{Username: "boris", Password: "secret123"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.Login("boris", "wrong-password", ""); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("wrong password error = %v, want ErrAccessDenied", err)
	}
	if _, err := svc.Login("nobody", "secret123", ""); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("unknown user error = %v, want ErrAccessDenied", err)
	}
}

func TestLoginBlockedUser(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	user, err := svc.Register(RegisterInput{Username: "vera", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := env.userRepo.SetBlocked(user.ID, true); err != nil {
		t.Fatalf("SetBlocked() error = %v", err)
	}

	if _, err := svc.Login("vera", "secret123", ""); !errors.Is(err, ErrUserBlocked) {
		t.Errorf("blocked login error = %v, want ErrUserBlocked", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	if _, err := svc.Register(RegisterInput{Username: "dima", Password: "secret123"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{name: "empty username", input: RegisterInput{Password: "secret123"}},
		{name: "empty password", input: RegisterInput{Username: "egor"}},
		{name: "short password", input: RegisterInput{Username: "egor", Password: "123"}},
		{name: "duplicate username", input: RegisterInput{Username: "dima", Password: "secret123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(tt.input); !errors.Is(err, ErrValidation) {
				t.Errorf("Register() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	user, err := svc.Register(RegisterInput{Username: "galya", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrong", "newsecret1"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("wrong old password error = %v, want ErrAccessDenied", err)
	}
	if err := svc.ChangePassword(user.ID, "secret123", "newsecret1"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if _, err := svc.Login("galya", "newsecret1", ""); err != nil {
		t.Errorf("login with new password error = %v", err)
	}
}
