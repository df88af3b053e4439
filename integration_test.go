package backend_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"todo-list/backend/internal/config"
	"todo-list/backend/internal/models"
	"todo-list/backend/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const integrationSecret = "integration-test-secret"

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Todo{}, &models.User{}, &models.BlacklistedToken{}); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  integrationSecret,
			TokenTTL:   time.Hour,
			BCryptCost: bcrypt.MinCost,
		},
	}

	return router.New(db, cfg, zap.NewNop()), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, username, email, password string) *httptest.ResponseRecorder {
	return doJSON(t, r, "POST", "/api/user/Register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

func login(t *testing.T, r *gin.Engine, email, password string) (string, *httptest.ResponseRecorder) {
	w := doJSON(t, r, "POST", "/api/user/Login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		return "", w
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal login response: %v", err)
	}
	return resp["token"], w
}

func TestRegisterLoginFlow(t *testing.T) {
	r, _ := setupServer(t)

	if w := register(t, r, "a", "a@x.com", "p1"); w.Code != http.StatusCreated {
		t.Fatalf("Register: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	// Same email, different username: conflict.
	if w := register(t, r, "b", "a@x.com", "p2"); w.Code != http.StatusConflict {
		t.Errorf("Duplicate email: expected 409, got %d", w.Code)
	}

	token, w := login(t, r, "a@x.com", "p1")
	if w.Code != http.StatusOK {
		t.Fatalf("Login: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if token == "" {
		t.Fatal("Login: expected a token")
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(integrationSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("Login token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["username"] != "a" {
		t.Errorf("Expected username claim 'a', got %v", claims["username"])
	}
	if _, ok := claims["user_id"].(float64); !ok {
		t.Errorf("Expected numeric user_id claim, got %v", claims["user_id"])
	}

	if _, w := login(t, r, "a@x.com", "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("Wrong password: expected 401, got %d", w.Code)
	}
}

func TestTodoOwnershipFlow(t *testing.T) {
	r, _ := setupServer(t)

	// No identity: creation rejected before reaching the handler.
	if w := doJSON(t, r, "POST", "/api/todoes", "", map[string]string{"title": "x"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("Unauthenticated create: expected 401, got %d", w.Code)
	}

	register(t, r, "a", "a@x.com", "p1")
	register(t, r, "b", "b@x.com", "p2")
	tokenA, _ := login(t, r, "a@x.com", "p1")
	tokenB, _ := login(t, r, "b@x.com", "p2")

	w := doJSON(t, r, "POST", "/api/todoes", tokenA, map[string]string{
		"title":       "Write integration tests",
		"description": "end to end",
		"status":      "pending",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Create: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var created models.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal created todo: %v", err)
	}
	if created.UserID == nil {
		t.Fatal("Created todo must carry its owner id")
	}

	// Round trip: stored record matches the input.
	w = doJSON(t, r, "GET", fmt.Sprintf("/api/todoes/%d", created.ID), tokenA, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Get: expected 200, got %d", w.Code)
	}
	var fetched models.Todo
	json.Unmarshal(w.Body.Bytes(), &fetched)
	if fetched.ID != created.ID || fetched.Title != "Write integration tests" {
		t.Errorf("Fetched todo does not match created one: %+v", fetched)
	}

	update := map[string]string{"title": "Updated", "description": "d", "status": "completed"}

	// Another user's replace is forbidden.
	if w := doJSON(t, r, "PUT", fmt.Sprintf("/api/todoes/%d", created.ID), tokenB, update); w.Code != http.StatusForbidden {
		t.Errorf("Non-owner PUT: expected 403, got %d", w.Code)
	}

	// The owner's replace succeeds.
	if w := doJSON(t, r, "PUT", fmt.Sprintf("/api/todoes/%d", created.ID), tokenA, update); w.Code != http.StatusNoContent {
		t.Errorf("Owner PUT: expected 204, got %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/todoes/%d", created.ID), tokenA, nil)
	json.Unmarshal(w.Body.Bytes(), &fetched)
	if fetched.Title != "Updated" || fetched.Status != "completed" {
		t.Errorf("Expected replaced fields after PUT, got %+v", fetched)
	}

	// Delete follows the same ownership rule.
	if w := doJSON(t, r, "DELETE", fmt.Sprintf("/api/todoes/%d", created.ID), tokenB, nil); w.Code != http.StatusForbidden {
		t.Errorf("Non-owner DELETE: expected 403, got %d", w.Code)
	}
	if w := doJSON(t, r, "DELETE", fmt.Sprintf("/api/todoes/%d", created.ID), tokenA, nil); w.Code != http.StatusNoContent {
		t.Errorf("Owner DELETE: expected 204, got %d", w.Code)
	}
	if w := doJSON(t, r, "GET", fmt.Sprintf("/api/todoes/%d", created.ID), tokenA, nil); w.Code != http.StatusNotFound {
		t.Errorf("Get after delete: expected 404, got %d", w.Code)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	r, db := setupServer(t)

	register(t, r, "a", "a@x.com", "p1")
	token, _ := login(t, r, "a@x.com", "p1")

	if w := doJSON(t, r, "GET", "/api/todoes", token, nil); w.Code != http.StatusOK {
		t.Fatalf("List before logout: expected 200, got %d", w.Code)
	}

	// Logout twice: idempotent, single blacklist row.
	for i := 0; i < 2; i++ {
		if w := doJSON(t, r, "POST", "/api/user/Logout", token, nil); w.Code != http.StatusOK {
			t.Fatalf("Logout %d: expected 200, got %d", i+1, w.Code)
		}
	}

	var count int64
	db.Model(&models.BlacklistedToken{}).Where("token = ?", token).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly one blacklist entry, got %d", count)
	}

	// The revoked token no longer resolves an identity.
	if w := doJSON(t, r, "GET", "/api/todoes", token, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("List after logout: expected 401, got %d", w.Code)
	}

	if w := doJSON(t, r, "POST", "/api/user/Logout", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("Logout without token: expected 400, got %d", w.Code)
	}
}

func TestUserEndpointsPublicButRedacted(t *testing.T) {
	r, _ := setupServer(t)

	register(t, r, "a", "a@x.com", "p1")

	w := doJSON(t, r, "GET", "/api/user", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("List users: expected 200, got %d", w.Code)
	}

	var users []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("Failed to unmarshal users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("Expected 1 user, got %d", len(users))
	}
	for _, key := range []string{"password", "password_hash", "password_salt", "PasswordHash"} {
		if _, present := users[0][key]; present {
			t.Errorf("Credential field %q leaked into public listing", key)
		}
	}

	if w := doJSON(t, r, "GET", "/api/user/999", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("Get unknown user: expected 404, got %d", w.Code)
	}
}
