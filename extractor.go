package jwtauth

import (
	"net/http"
	"strings"

	"github.com/resume-platform/jwtauth/core"
)

// DefaultCookieName is the cookie checked when no bearer header is present.
const DefaultCookieName = "AuthToken"

// TokenLocator inspects a request and returns the candidate token it carries.
// Locators never fail: a value that cannot be a token is reported as
// core.Absent, and validating it is left to the validator.
type TokenLocator func(r *http.Request) core.TokenSource

// AuthHeaderLocator is a TokenLocator that takes a request and extracts the
// token from an "Authorization: Bearer <token>" header. The scheme keyword is
// case-insensitive. A header with another scheme or without a token is treated
// as if it were absent.
func AuthHeaderLocator(r *http.Request) core.TokenSource {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return core.Absent
	}

	authHeaderParts := strings.Fields(authHeader)
	if len(authHeaderParts) != 2 || !strings.EqualFold(authHeaderParts[0], "bearer") {
		return core.Absent
	}

	return core.FromHeader(authHeaderParts[1])
}

// CookieLocator builds a TokenLocator that takes a request and extracts the
// token from the cookie using the passed in cookieName. A missing or empty
// cookie is reported as core.Absent.
func CookieLocator(cookieName string) TokenLocator {
	return func(r *http.Request) core.TokenSource {
		cookie, err := r.Cookie(cookieName)
		if err != nil {
			return core.Absent
		}

		return core.FromCookie(cookie.Value)
	}
}

// FirstOf returns a TokenLocator that runs multiple TokenLocators in order
// and returns the first source that carries a token.
func FirstOf(locators ...TokenLocator) TokenLocator {
	return func(r *http.Request) core.TokenSource {
		for _, locate := range locators {
			if src := locate(r); src.Present() {
				return src
			}
		}
		return core.Absent
	}
}

// HeaderOrCookie prefers the Authorization header and falls back to the
// named cookie. At most one of them is ever returned.
func HeaderOrCookie(cookieName string) TokenLocator {
	return FirstOf(AuthHeaderLocator, CookieLocator(cookieName))
}

// Locate is the default TokenLocator: the bearer header, then the
// DefaultCookieName cookie.
func Locate(r *http.Request) core.TokenSource {
	return HeaderOrCookie(DefaultCookieName)(r)
}
