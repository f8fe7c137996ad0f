package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/academic-records-service/internal/events"
	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/security"
	"github.com/SAP-F-2025/academic-records-service/internal/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAccountService(t *testing.T) (AccountService, *fakeRepository, *events.MockEventPublisher) {
	t.Helper()

	logger := testLogger()
	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(logger)
	tokens := security.NewTokenManager("test-secret", "academic-records-service", 15*time.Minute, 24*time.Hour)

	svc := NewAccountService(repo, nil, logger, validator.NewBusinessValidator(), tokens, publisher)
	return svc, repo, publisher
}

func teacherRegisterRequest(username string) *RegisterRequest {
	email := username + "@example.com"
	return &RegisterRequest{
		UserCreateRequest: validator.UserCreateRequest{
			Username:        username,
			Email:           &email,
			FirstName:       "Alice",
			LastName:        "Nguyen",
			Password:        "Sup3rSecret",
			PasswordConfirm: "Sup3rSecret",
		},
		Role: "teacher",
	}
}

func studentRegisterRequest(username, studentID string) *RegisterRequest {
	email := username + "@example.com"
	return &RegisterRequest{
		UserCreateRequest: validator.UserCreateRequest{
			Username:        username,
			Email:           &email,
			FirstName:       "Bob",
			LastName:        "Tran",
			Password:        "Sup3rSecret",
			PasswordConfirm: "Sup3rSecret",
		},
		Role:    "student",
		Student: &validator.StudentProfileRequest{StudentID: studentID},
	}
}

func TestAccountService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher registration creates user and profile", func(t *testing.T) {
		svc, repo, _ := newTestAccountService(t)

		resp, err := svc.Register(ctx, teacherRegisterRequest("alice"))
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if resp.Token.AccessToken == "" || resp.Token.RefreshToken == "" {
			t.Error("Register() returned empty token pair")
		}
		if !resp.User.IsTeacher || !resp.User.IsActive {
			t.Errorf("Register() user flags = teacher:%v active:%v, want both true", resp.User.IsTeacher, resp.User.IsActive)
		}

		if _, err := repo.Teacher().GetByUserID(ctx, resp.User.ID); err != nil {
			t.Errorf("teacher profile not created: %v", err)
		}
	})

	t.Run("student registration requires student block", func(t *testing.T) {
		svc, _, _ := newTestAccountService(t)

		req := studentRegisterRequest("bob", "S-100")
		req.Student = nil

		_, err := svc.Register(ctx, req)
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("Register() error = %v, want validation errors", err)
		}
	})

	t.Run("password mismatch creates nothing", func(t *testing.T) {
		svc, repo, _ := newTestAccountService(t)

		req := teacherRegisterRequest("alice")
		req.PasswordConfirm = "different123"

		if _, err := svc.Register(ctx, req); !errors.Is(err, ErrPasswordMismatch) {
			t.Fatalf("Register() error = %v, want ErrPasswordMismatch", err)
		}

		if exists, _ := repo.User().ExistsByUsername(ctx, "alice"); exists {
			t.Error("user was created despite password mismatch")
		}
	})

	t.Run("duplicate username rejected, first account intact", func(t *testing.T) {
		svc, repo, _ := newTestAccountService(t)

		if _, err := svc.Register(ctx, teacherRegisterRequest("alice")); err != nil {
			t.Fatalf("first Register() error = %v", err)
		}

		second := studentRegisterRequest("alice", "S-200")
		email := "alice2@example.com"
		second.Email = &email

		if _, err := svc.Register(ctx, second); !errors.Is(err, ErrDuplicateUsername) {
			t.Fatalf("second Register() error = %v, want ErrDuplicateUsername", err)
		}

		user, err := repo.User().GetByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("first account lost: %v", err)
		}
		if !user.IsTeacher {
			t.Error("first account role changed by rejected registration")
		}
	})

	t.Run("duplicate student id rolls the whole registration back", func(t *testing.T) {
		svc, repo, _ := newTestAccountService(t)

		if _, err := svc.Register(ctx, studentRegisterRequest("bob", "S-100")); err != nil {
			t.Fatalf("first Register() error = %v", err)
		}

		_, err := svc.Register(ctx, studentRegisterRequest("carol", "S-100"))
		if !errors.Is(err, ErrDuplicateStudentID) {
			t.Fatalf("Register() error = %v, want ErrDuplicateStudentID", err)
		}

		if exists, _ := repo.User().ExistsByUsername(ctx, "carol"); exists {
			t.Error("user row survived a failed profile write")
		}
	})
}

func TestAccountService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials return token pair", func(t *testing.T) {
		svc, _, _ := newTestAccountService(t)
		if _, err := svc.Register(ctx, teacherRegisterRequest("alice")); err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		resp, err := svc.Authenticate(ctx, &LoginRequest{Username: "alice", Password: "Sup3rSecret"})
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if resp.Token.AccessToken == "" {
			t.Error("Authenticate() returned empty access token")
		}
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		svc, _, _ := newTestAccountService(t)
		if _, err := svc.Register(ctx, teacherRegisterRequest("alice")); err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		_, unknownErr := svc.Authenticate(ctx, &LoginRequest{Username: "nobody", Password: "Sup3rSecret"})
		_, wrongErr := svc.Authenticate(ctx, &LoginRequest{Username: "alice", Password: "WrongPass1"})

		if !errors.Is(unknownErr, ErrInvalidCredentials) {
			t.Errorf("unknown user error = %v, want ErrInvalidCredentials", unknownErr)
		}
		if !errors.Is(wrongErr, ErrInvalidCredentials) {
			t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongErr)
		}
		if unknownErr.Error() != wrongErr.Error() {
			t.Error("unknown-user and wrong-password errors differ")
		}
	})

	t.Run("inactive account cannot log in", func(t *testing.T) {
		svc, repo, _ := newTestAccountService(t)
		if _, err := svc.Register(ctx, teacherRegisterRequest("alice")); err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		user, _ := repo.User().GetByUsername(ctx, "alice")
		user.IsActive = false
		if err := repo.User().Update(ctx, user); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		if _, err := svc.Authenticate(ctx, &LoginRequest{Username: "alice", Password: "Sup3rSecret"}); !errors.Is(err, ErrAccountInactive) {
			t.Fatalf("Authenticate() error = %v, want ErrAccountInactive", err)
		}
	})
}

func TestAccountService_TokenFlow(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAccountService(t)

	resp, err := svc.Register(ctx, teacherRegisterRequest("alice"))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("refresh token mints a new access token", func(t *testing.T) {
		access, err := svc.RefreshToken(ctx, resp.Token.RefreshToken)
		if err != nil {
			t.Fatalf("RefreshToken() error = %v", err)
		}

		claims, err := svc.VerifyToken(ctx, access)
		if err != nil {
			t.Fatalf("VerifyToken() error = %v", err)
		}
		if claims.Username != "alice" {
			t.Errorf("claims.Username = %q, want alice", claims.Username)
		}
	})

	t.Run("access token cannot be used as a refresh token", func(t *testing.T) {
		if _, err := svc.RefreshToken(ctx, resp.Token.AccessToken); !errors.Is(err, security.ErrTokenInvalid) {
			t.Fatalf("RefreshToken() error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("garbage token fails verification", func(t *testing.T) {
		if _, err := svc.VerifyToken(ctx, "not-a-token"); !errors.Is(err, security.ErrTokenInvalid) {
			t.Fatalf("VerifyToken() error = %v, want ErrTokenInvalid", err)
		}
	})
}

// provisionInactiveUser seeds the repo with an inactive account carrying the
// default password, mimicking an admin-provisioned student.
func provisionInactiveUser(t *testing.T, repo *fakeRepository, email, password string) *models.User {
	t.Helper()

	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	user := &models.User{
		Username:     "bob",
		Email:        &email,
		PasswordHash: hash,
		IsActive:     false,
		IsStudent:    true,
	}
	if err := repo.User().Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return user
}

func TestAccountService_ActivateAccount(t *testing.T) {
	ctx := context.Background()
	const defaultPassword = "DefaultPass123!"

	validRequest := func() *ActivateAccountRequest {
		return &ActivateAccountRequest{
			Email:              "bob@example.com",
			CurrentPassword:    defaultPassword,
			NewPassword:        "MyOwnPass99",
			NewPasswordConfirm: "MyOwnPass99",
		}
	}

	t.Run("successful activation enables login with the new password", func(t *testing.T) {
		svc, repo, publisher := newTestAccountService(t)
		provisionInactiveUser(t, repo, "bob@example.com", defaultPassword)

		resp, err := svc.ActivateAccount(ctx, validRequest())
		if err != nil {
			t.Fatalf("ActivateAccount() error = %v", err)
		}
		if resp.Token.AccessToken == "" {
			t.Error("ActivateAccount() returned empty access token")
		}

		if _, err := svc.Authenticate(ctx, &LoginRequest{Username: "bob", Password: "MyOwnPass99"}); err != nil {
			t.Errorf("login after activation failed: %v", err)
		}
		if _, err := svc.Authenticate(ctx, &LoginRequest{Username: "bob", Password: defaultPassword}); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("default password still accepted after activation: %v", err)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventAccountActivated {
			t.Errorf("published events = %v, want one %s", published, events.EventAccountActivated)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _, _ := newTestAccountService(t)

		req := validRequest()
		req.Email = "ghost@example.com"
		if _, err := svc.ActivateAccount(ctx, req); !errors.Is(err, ErrAccountNotFound) {
			t.Fatalf("ActivateAccount() error = %v, want ErrAccountNotFound", err)
		}
	})

	t.Run("already active account", func(t *testing.T) {
		svc, repo, _ := newTestAccountService(t)
		user := provisionInactiveUser(t, repo, "bob@example.com", defaultPassword)
		user.IsActive = true
		if err := repo.User().Update(ctx, user); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		if _, err := svc.ActivateAccount(ctx, validRequest()); !errors.Is(err, ErrAlreadyActive) {
			t.Fatalf("ActivateAccount() error = %v, want ErrAlreadyActive", err)
		}
	})

	t.Run("wrong temporary password", func(t *testing.T) {
		svc, repo, _ := newTestAccountService(t)
		provisionInactiveUser(t, repo, "bob@example.com", defaultPassword)

		req := validRequest()
		req.CurrentPassword = "NotTheTemp1"
		if _, err := svc.ActivateAccount(ctx, req); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("ActivateAccount() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("wrong temporary password wins over a confirmation mismatch", func(t *testing.T) {
		svc, repo, _ := newTestAccountService(t)
		provisionInactiveUser(t, repo, "bob@example.com", defaultPassword)

		req := validRequest()
		req.CurrentPassword = "NotTheTemp1"
		req.NewPasswordConfirm = "SomethingElse1"
		if _, err := svc.ActivateAccount(ctx, req); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("ActivateAccount() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("confirmation mismatch leaves the account inactive", func(t *testing.T) {
		svc, repo, _ := newTestAccountService(t)
		provisionInactiveUser(t, repo, "bob@example.com", defaultPassword)

		req := validRequest()
		req.NewPasswordConfirm = "SomethingElse1"
		if _, err := svc.ActivateAccount(ctx, req); !errors.Is(err, ErrPasswordMismatch) {
			t.Fatalf("ActivateAccount() error = %v, want ErrPasswordMismatch", err)
		}

		user, _ := repo.User().GetByEmail(ctx, "bob@example.com")
		if user.IsActive {
			t.Error("account became active despite confirmation mismatch")
		}
	})

	t.Run("reusing the temporary password is rejected", func(t *testing.T) {
		svc, repo, _ := newTestAccountService(t)
		provisionInactiveUser(t, repo, "bob@example.com", defaultPassword)

		req := validRequest()
		req.NewPassword = defaultPassword
		req.NewPasswordConfirm = defaultPassword
		if _, err := svc.ActivateAccount(ctx, req); !errors.Is(err, ErrSamePassword) {
			t.Fatalf("ActivateAccount() error = %v, want ErrSamePassword", err)
		}
	})
}

func TestAccountService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (AccountService, *events.MockEventPublisher, uint) {
		svc, _, publisher := newTestAccountService(t)
		resp, err := svc.Register(ctx, teacherRegisterRequest("alice"))
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		return svc, publisher, resp.User.ID
	}

	t.Run("success rotates the credential", func(t *testing.T) {
		svc, publisher, userID := setup(t)

		err := svc.ChangePassword(ctx, userID, &ChangePasswordRequest{
			OldPassword:        "Sup3rSecret",
			NewPassword:        "An0therPass",
			NewPasswordConfirm: "An0therPass",
		})
		if err != nil {
			t.Fatalf("ChangePassword() error = %v", err)
		}

		if _, err := svc.Authenticate(ctx, &LoginRequest{Username: "alice", Password: "An0therPass"}); err != nil {
			t.Errorf("login with new password failed: %v", err)
		}
		if _, err := svc.Authenticate(ctx, &LoginRequest{Username: "alice", Password: "Sup3rSecret"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("old password still accepted: %v", err)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventPasswordChanged {
			t.Errorf("published events = %v, want one %s", published, events.EventPasswordChanged)
		}
	})

	t.Run("wrong old password", func(t *testing.T) {
		svc, _, userID := setup(t)

		err := svc.ChangePassword(ctx, userID, &ChangePasswordRequest{
			OldPassword:        "WrongOld12",
			NewPassword:        "An0therPass",
			NewPasswordConfirm: "An0therPass",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("ChangePassword() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("wrong old password wins over a confirmation mismatch", func(t *testing.T) {
		svc, _, userID := setup(t)

		err := svc.ChangePassword(ctx, userID, &ChangePasswordRequest{
			OldPassword:        "WrongOld12",
			NewPassword:        "An0therPass",
			NewPasswordConfirm: "SomethingElse1",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("ChangePassword() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("same password rejected", func(t *testing.T) {
		svc, _, userID := setup(t)

		err := svc.ChangePassword(ctx, userID, &ChangePasswordRequest{
			OldPassword:        "Sup3rSecret",
			NewPassword:        "Sup3rSecret",
			NewPasswordConfirm: "Sup3rSecret",
		})
		if !errors.Is(err, ErrSamePassword) {
			t.Fatalf("ChangePassword() error = %v, want ErrSamePassword", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _ := newTestAccountService(t)

		err := svc.ChangePassword(ctx, 999, &ChangePasswordRequest{
			OldPassword:        "Sup3rSecret",
			NewPassword:        "An0therPass",
			NewPasswordConfirm: "An0therPass",
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("ChangePassword() error = %v, want ErrNotFound", err)
		}
	})
}
