package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/quickcourt/quickcourt-api/internal/config"
	"github.com/quickcourt/quickcourt-api/internal/models"
)

func TestAccountBlocked(t *testing.T) {
	tests := []struct {
		name     string
		user     models.User
		wantCode string
	}{
		{
			name: "verified account passes",
			user: models.User{Verified: true},
		},
		{
			name:     "banned account is blocked",
			user:     models.User{Verified: true, Banned: true},
			wantCode: "banned",
		},
		{
			name:     "unverified account is blocked",
			user:     models.User{Verified: false},
			wantCode: "account_not_verified",
		},
		{
			name:     "ban outranks missing verification",
			user:     models.User{Verified: false, Banned: true},
			wantCode: "banned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, blocked := accountBlocked(&tt.user)
			if tt.wantCode == "" {
				if blocked {
					t.Errorf("accountBlocked() = (%q, true), want unblocked", code)
				}
				return
			}
			if !blocked || code != tt.wantCode {
				t.Errorf("accountBlocked() = (%q, %v), want (%q, true)", code, blocked, tt.wantCode)
			}
		})
	}
}

func postJSON(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestRefreshRejectsBadTokens(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:        "access-secret",
		JWTRefreshSecret: "refresh-secret",
	}
	h := NewAuthHandler(nil, cfg, nil, nil)

	t.Run("garbage token", func(t *testing.T) {
		c, w := postJSON(t, `{"refresh_token":"not-a-token"}`)
		h.Refresh(c)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("token signed with the access secret", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": float64(1),
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}

		c, w := postJSON(t, `{"refresh_token":"`+signed+`"}`)
		h.Refresh(c)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("expired refresh token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": float64(1),
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(cfg.JWTRefreshSecret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}

		c, w := postJSON(t, `{"refresh_token":"`+signed+`"}`)
		h.Refresh(c)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})
}
