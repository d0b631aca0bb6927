// Package tokentest mints signed tokens for tests. Tokens are produced with
// golang-jwt so that test fixtures do not share code with the verifier.
package tokentest

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	Issuer   = "api.example"
	Audience = "web.example"
)

// Key is a 32-byte HS256 key shared by tests.
var Key = []byte("test-signing-key-0123456789abcdef")

// Now is the fixed instant tests evaluate lifetimes against.
var Now = time.Unix(1_700_000_000, 0)

// Clock returns Now, for use with validator.WithClock.
func Clock() time.Time { return Now }

// Claims returns a claim set that passes validation at Now.
func Claims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss": Issuer,
		"aud": Audience,
		"sub": "user-42",
		"iat": Now.Unix(),
		"exp": Now.Add(time.Hour).Unix(),
	}
}

// Sign signs claims with HS256 and key.
func Sign(t testing.TB, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	return SignWith(t, jwt.SigningMethodHS256, key, claims)
}

// SignWith signs claims with method and key.
func SignWith(t testing.TB, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("could not sign token: %v", err)
	}
	return token
}

// Valid returns a token built from Claims and signed with Key.
func Valid(t testing.TB) string {
	t.Helper()
	return Sign(t, Key, Claims())
}

// Unsigned returns a token with alg "none" and an empty signature.
func Unsigned(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	return SignWith(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, claims)
}

// FlipSignatureBit flips bit of the decoded signature and returns the
// re-encoded token.
func FlipSignatureBit(t testing.TB, token string, bit int) string {
	t.Helper()
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("not a compact token: %q", token)
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		t.Fatalf("could not decode signature: %v", err)
	}
	sig[bit/8] ^= 1 << (bit % 8)
	parts[2] = base64.RawURLEncoding.EncodeToString(sig)
	return strings.Join(parts, ".")
}
