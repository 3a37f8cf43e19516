package token

import (
	"errors"
	"testing"
	"time"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

func TestPasswordRoundTrip(t *testing.T) {
	s := New("secret", time.Hour)
	hash, err := s.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash equals plain text")
	}
	if !s.VerifyPassword("hunter22", hash) {
		t.Fatal("correct password rejected")
	}
	if s.VerifyPassword("hunter23", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := New("secret", time.Hour)
	tok, err := s.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	sub, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "alice" {
		t.Fatalf("got subject %q", sub)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := New("secret-a", time.Hour).Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := New("secret-b", time.Hour).Verify(tok); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	s := &Service{secret: []byte("secret"), ttl: -time.Minute}
	tok, err := s.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := s.Verify(tok); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	s := New("secret", time.Hour)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := s.Verify(tok); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("token %q: expected ErrUnauthorized, got %v", tok, err)
		}
	}
}
