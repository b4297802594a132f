package jwt

import (
	"testing"
	"time"
)

func TestSignAndVerify(t *testing.T) {
	token := New(AlgHS256, Claims{
		Subject:        "61b1e1b9a0c1d2e3f4a5b6c7",
		TokenType:      TokenTypeAccess,
		ExpirationTime: time.Now().Add(time.Hour).Unix(),
	})

	signed, err := token.Sign("secret")
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	decoded, err := Verify(signed, TokenTypeAccess, "secret", AlgHS256)
	if err != nil {
		t.Fatalf("verification failed: %v", err)
	}

	if decoded.Payload.Subject != "61b1e1b9a0c1d2e3f4a5b6c7" {
		t.Errorf("subject = %q", decoded.Payload.Subject)
	}
}

func TestVerifyRejects(t *testing.T) {
	token := New(AlgHS256, Claims{
		Subject:        "user",
		TokenType:      TokenTypeAccess,
		ExpirationTime: time.Now().Add(time.Hour).Unix(),
	})

	signed, err := token.Sign("secret")
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := Verify(signed, TokenTypeAccess, "other-secret", AlgHS256); err == nil {
		t.Error("token verified with the wrong secret")
	}

	if _, err := Verify(signed, TokenTypeRefresh, "secret", AlgHS256); err == nil {
		t.Error("access token verified as refresh token")
	}

	if _, err := Verify("not.a.token", TokenTypeAccess, "secret", AlgHS256); err == nil {
		t.Error("malformed token verified")
	}

	if _, err := Verify("", TokenTypeAccess, "secret", AlgHS256); err == nil {
		t.Error("empty token verified")
	}

	expired := New(AlgHS256, Claims{
		Subject:        "user",
		TokenType:      TokenTypeAccess,
		ExpirationTime: time.Now().Add(-time.Hour).Unix(),
	})

	signedExpired, err := expired.Sign("secret")
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := Verify(signedExpired, TokenTypeAccess, "secret", AlgHS256); err == nil {
		t.Error("expired token verified")
	}
}
