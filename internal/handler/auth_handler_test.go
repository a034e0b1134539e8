package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/udmdigital/lead-crm-api/internal/auth"
	"github.com/udmdigital/lead-crm-api/internal/entity"
	"github.com/udmdigital/lead-crm-api/internal/middleware"
	"github.com/udmdigital/lead-crm-api/internal/repository"
	"github.com/udmdigital/lead-crm-api/internal/service"
)

type stubUsersRepo struct {
	user *entity.User
}

func (r *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *stubUsersRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *stubUsersRepo) Create(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
	if r.user != nil && r.user.Email == email {
		return nil, repository.ErrEmailDuplicate
	}
	return &entity.User{ID: uuid.New(), Email: email, PasswordHash: passwordHash, Role: role}, nil
}

func (r *stubUsersRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return nil
}

func newAuthHandler(t *testing.T) (*AuthHandler, *entity.User) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &entity.User{ID: uuid.New(), Email: "ravi@udm.in", PasswordHash: string(hashed), Role: "sales"}
	manager := auth.NewJWTManager("secret", 0)
	svc := service.NewAuthService(&stubUsersRepo{user: user}, manager, nil, nil)
	return NewAuthHandler(svc), user
}

func TestAuthHandler_Login(t *testing.T) {
	handler, _ := newAuthHandler(t)
	e := echo.New()

	tests := map[string]struct {
		body       string
		expectCode int
	}{
		"success": {
			body:       `{"email":"ravi@udm.in","password":"s3cret"}`,
			expectCode: http.StatusOK,
		},
		"wrong password": {
			body:       `{"email":"ravi@udm.in","password":"nope"}`,
			expectCode: http.StatusUnauthorized,
		},
		"unknown account": {
			body:       `{"email":"ghost@udm.in","password":"s3cret"}`,
			expectCode: http.StatusUnauthorized,
		},
		"missing fields": {
			body:       `{"email":"ravi@udm.in"}`,
			expectCode: http.StatusBadRequest,
		},
		"malformed payload": {
			body:       `{nope`,
			expectCode: http.StatusBadRequest,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler.Login(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, rec.Code)
			}
		})
	}
}

func TestAuthHandler_Register(t *testing.T) {
	handler, _ := newAuthHandler(t)
	e := echo.New()

	t.Run("created", func(t *testing.T) {
		body := `{"email":"new@udm.in","password":"pass123"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler.Register(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}

		var payload struct {
			Data struct {
				AccessToken string `json:"access_token"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if payload.Data.AccessToken == "" {
			t.Fatalf("expected access token in response")
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		body := `{"email":"ravi@udm.in","password":"pass123"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.Register(c)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		body := `{"email":"not-an-email","password":"pass123"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.Register(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_ResetPassword_AlwaysAcks(t *testing.T) {
	handler, _ := newAuthHandler(t)
	e := echo.New()

	for name, body := range map[string]string{
		"known account":   `{"email":"ravi@udm.in"}`,
		"unknown account": `{"email":"ghost@udm.in"}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/reset-password", strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler.ResetPassword(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected uniform 200, got %d", rec.Code)
			}
		})
	}
}

func TestAuthHandler_CompleteReset(t *testing.T) {
	handler, user := newAuthHandler(t)
	e := echo.New()

	manager := auth.NewJWTManager("secret", 0)
	resetToken, err := manager.GenerateResetToken(user.ID.String(), user.Email)
	if err != nil {
		t.Fatalf("generate reset token: %v", err)
	}
	accessToken, err := manager.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	tests := map[string]struct {
		body       string
		expectCode int
	}{
		"valid reset token": {
			body:       `{"token":"` + resetToken + `","new_password":"fresh-pass"}`,
			expectCode: http.StatusOK,
		},
		"access token refused": {
			body:       `{"token":"` + accessToken + `","new_password":"fresh-pass"}`,
			expectCode: http.StatusUnauthorized,
		},
		"garbage token": {
			body:       `{"token":"not.a.jwt","new_password":"fresh-pass"}`,
			expectCode: http.StatusUnauthorized,
		},
		"missing password": {
			body:       `{"token":"` + resetToken + `"}`,
			expectCode: http.StatusBadRequest,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/reset-password/complete", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler.CompleteReset(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, rec.Code)
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	handler, user := newAuthHandler(t)
	e := echo.New()

	t.Run("active session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(middleware.ContextKeyUserID, user.ID.String())
		c.Set(middleware.ContextKeyUserEmail, user.Email)
		c.Set(middleware.ContextKeyUserRole, user.Role)

		if err := handler.Me(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var payload struct {
			Data struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if payload.Data.Email != user.Email || payload.Data.Role != user.Role {
			t.Fatalf("unexpected session payload: %+v", payload.Data)
		}
	})

	t.Run("no session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.Me(c)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
