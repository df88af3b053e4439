package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTodoOwnedBy(t *testing.T) {
	owner := 7
	todo := Todo{ID: 1, Title: "Test", UserID: &owner}

	if !todo.OwnedBy(7) {
		t.Error("Expected todo to be owned by user 7")
	}

	if todo.OwnedBy(8) {
		t.Error("Expected todo not to be owned by user 8")
	}
}

func TestTodoOwnedBy_NoOwner(t *testing.T) {
	todo := Todo{ID: 1, Title: "Orphan"}

	if todo.OwnedBy(7) {
		t.Error("Todo without an owner must not match any user id")
	}
}

func TestUserJSON_RedactsCredentials(t *testing.T) {
	user := User{
		ID:           1,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$secret",
		PasswordSalt: []byte("salt"),
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("Failed to marshal user: %v", err)
	}

	body := string(data)
	if strings.Contains(body, "secret") {
		t.Errorf("Password hash leaked into JSON: %s", body)
	}
	if strings.Contains(body, "salt") || strings.Contains(body, "password") {
		t.Errorf("Credential fields leaked into JSON: %s", body)
	}
	if !strings.Contains(body, "alice@example.com") {
		t.Errorf("Expected email in JSON, got %s", body)
	}
}

func TestTodoJSON_Fields(t *testing.T) {
	owner := 3
	todo := Todo{
		ID:          5,
		Title:       "Write report",
		Description: "Quarterly numbers",
		Status:      "pending",
		Created:     time.Now(),
		UserID:      &owner,
	}

	data, err := json.Marshal(todo)
	if err != nil {
		t.Fatalf("Failed to marshal todo: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal todo: %v", err)
	}

	if decoded["user_id"].(float64) != 3 {
		t.Errorf("Expected user_id 3, got %v", decoded["user_id"])
	}
	if decoded["title"] != "Write report" {
		t.Errorf("Expected title to survive round trip, got %v", decoded["title"])
	}
}
