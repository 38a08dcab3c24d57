package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dom "Tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

func newProtectedRouter(tokens *Tokens) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(tokens), func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claims missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	return r
}

func get(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	r := newProtectedRouter(tokens)

	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: got %d want 401", w.Code)
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	r := newProtectedRouter(tokens)

	for _, header := range []string{"Token abc", "Bearer", "Bearer ", "bogus"} {
		if w := get(r, header); w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: got %d want 401", header, w.Code)
		}
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	r := newProtectedRouter(tokens)

	if w := get(r, "Bearer not.a.jwt"); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: got %d want 401", w.Code)
	}

	expired, err := NewTokens("secret", -time.Second).IssueSession(dom.User{ID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("IssueSession error: %v", err)
	}
	if w := get(r, "Bearer "+expired); w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token: got %d want 401", w.Code)
	}
}

func TestRequireAuth_RejectsResetToken(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	r := newProtectedRouter(tokens)

	reset, _, err := tokens.IssueReset(1)
	if err != nil {
		t.Fatalf("IssueReset error: %v", err)
	}
	if w := get(r, "Bearer "+reset); w.Code != http.StatusUnauthorized {
		t.Fatalf("reset token on protected route: got %d want 401", w.Code)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	r := newProtectedRouter(tokens)

	tok, err := tokens.IssueSession(dom.User{ID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("IssueSession error: %v", err)
	}
	w := get(r, "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: got %d want 200, body %s", w.Code, w.Body.String())
	}
}
