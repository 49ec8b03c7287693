package session

import (
	"testing"
	"time"
)

func TestMintAndParseAccessToken(t *testing.T) {
	token, err := MintAccessToken("secret", 42, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	userID, err := ParseAccessToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 {
		t.Fatalf("userID = %d, want 42", userID)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := MintAccessToken("secret", 42, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken("other-secret", token); err != ErrInvalidToken {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := MintAccessToken("secret", 42, -time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken("secret", token); err != ErrInvalidToken {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := ParseAccessToken("secret", "not-a-jwt"); err != ErrInvalidToken {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}
