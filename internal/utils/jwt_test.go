package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42, 24)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token string")
	}

	uid, err := ParseAccessToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if uid != 42 {
		t.Errorf("subject: got %d, want 42", uid)
	}
}

func TestAccessTokenExpirySetFromTTL(t *testing.T) {
	before := time.Now().UTC()
	tok, err := NewAccessToken(testSecret, 1, 24)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	want := before.Add(24 * time.Hour)
	if tok.Exp.Before(want.Add(-time.Minute)) || tok.Exp.After(want.Add(time.Minute)) {
		t.Errorf("expiry %v not ~24h after issue time %v", tok.Exp, before)
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 7, 24)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := ParseAccessToken("a-different-secret", tok.Token); err == nil {
		t.Error("token verified under the wrong secret")
	}
}

func TestParseAccessTokenMalformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := ParseAccessToken(testSecret, raw); err == nil {
			t.Errorf("malformed token %q verified", raw)
		}
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	// TTL in the past produces an exp claim before now.
	tok, err := NewAccessToken(testSecret, 7, -1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := ParseAccessToken(testSecret, tok.Token); err == nil {
		t.Error("expired token verified")
	}
}

func TestParseAccessTokenMissingSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAccessToken(testSecret, signed); err == nil {
		t.Error("token without sub claim verified")
	}
}

func TestParseAccessTokenRejectsNonHMAC(t *testing.T) {
	// alg=none style tokens must never pass.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": 7,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAccessToken(testSecret, unsigned); err == nil {
		t.Error("unsigned token verified")
	}
}
