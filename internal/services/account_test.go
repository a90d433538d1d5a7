package services

import (
	"strings"
	"testing"
)

func TestAccountService_JWTRoundTrip(t *testing.T) {
	svc := NewAccountService(nil, "test-secret")

	token, err := svc.GenerateJWT("acct-1")
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	accountID, err := svc.ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT returned error: %v", err)
	}
	if accountID != "acct-1" {
		t.Fatalf("expected acct-1, got %q", accountID)
	}
}

func TestAccountService_ValidateJWTWrongSecret(t *testing.T) {
	issuer := NewAccountService(nil, "secret-a")
	verifier := NewAccountService(nil, "secret-b")

	token, err := issuer.GenerateJWT("acct-1")
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	if _, err := verifier.ValidateJWT(token); err == nil {
		t.Fatal("token signed with a different secret must not validate")
	}
}

func TestAccountService_ValidateJWTGarbage(t *testing.T) {
	svc := NewAccountService(nil, "test-secret")

	if _, err := svc.ValidateJWT("not.a.token"); err == nil {
		t.Fatal("garbage token must not validate")
	}
}

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := generateCode()
		if len(code) != codeLength {
			t.Fatalf("expected %d-character code, got %q", codeLength, code)
		}
		for _, ch := range code {
			if !strings.ContainsRune(codeChars, ch) {
				t.Fatalf("code %q contains invalid character %q", code, ch)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("codes should vary across generations")
	}
}
