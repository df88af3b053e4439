package services_test

import (
	"testing"

	"todo-list/backend/internal/models"
	"todo-list/backend/internal/services"
)

func TestBlacklistToken_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewBlacklistService()

	token := "header.payload.signature"

	if err := svc.BlacklistToken(db, token); err != nil {
		t.Fatalf("First blacklist insert failed: %v", err)
	}

	if err := svc.BlacklistToken(db, token); err != nil {
		t.Fatalf("Second blacklist insert failed: %v", err)
	}

	var count int64
	db.Model(&models.BlacklistedToken{}).Where("token = ?", token).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly one blacklist entry, got %d", count)
	}
}

func TestIsBlacklisted(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewBlacklistService()

	blacklisted, err := svc.IsBlacklisted(db, "unknown-token")
	if err != nil {
		t.Fatalf("IsBlacklisted failed: %v", err)
	}
	if blacklisted {
		t.Error("Unknown token must not be blacklisted")
	}

	if err := svc.BlacklistToken(db, "revoked-token"); err != nil {
		t.Fatalf("Failed to blacklist token: %v", err)
	}

	blacklisted, err = svc.IsBlacklisted(db, "revoked-token")
	if err != nil {
		t.Fatalf("IsBlacklisted failed: %v", err)
	}
	if !blacklisted {
		t.Error("Revoked token must be reported as blacklisted")
	}
}
