package grpc

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/grpc/metadata"

	"github.com/resume-platform/jwtauth/core"
)

// DefaultCookieName is the cookie looked up in "cookie" metadata, which is
// where grpc-gateway and grpc-web proxies forward browser cookies.
const DefaultCookieName = "AuthToken"

// TokenLocator finds the candidate token in incoming gRPC metadata.
type TokenLocator func(ctx context.Context) core.TokenSource

// MetadataTokenLocator takes the token from the "authorization" metadata key.
// It supports the "Bearer <token>" format (standard for gRPC).
//
// gRPC normalizes incoming metadata keys to lowercase, so this locator only
// checks the lowercase "authorization" key. Missing, repeated or non-bearer
// values are reported as core.Absent.
func MetadataTokenLocator(ctx context.Context) core.TokenSource {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return core.Absent
	}

	authHeaders := md.Get("authorization")
	if len(authHeaders) != 1 {
		return core.Absent
	}

	parts := strings.Fields(authHeaders[0])
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return core.Absent
	}

	return core.FromHeader(parts[1])
}

// CookieTokenLocator builds a TokenLocator that reads cookieName from the
// "cookie" metadata entries. Parsing matches net/http: malformed cookies are
// skipped, the rest of the line is still read.
func CookieTokenLocator(cookieName string) TokenLocator {
	return func(ctx context.Context) core.TokenSource {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return core.Absent
		}

		lines := md.Get("cookie")
		if len(lines) == 0 {
			return core.Absent
		}
		r := &http.Request{Header: http.Header{"Cookie": lines}}
		cookie, err := r.Cookie(cookieName)
		if err != nil {
			return core.Absent
		}
		return core.FromCookie(cookie.Value)
	}
}

// MetadataOrCookie prefers the authorization metadata and falls back to the
// named cookie.
func MetadataOrCookie(cookieName string) TokenLocator {
	cookie := CookieTokenLocator(cookieName)
	return func(ctx context.Context) core.TokenSource {
		if src := MetadataTokenLocator(ctx); src.Present() {
			return src
		}
		return cookie(ctx)
	}
}
