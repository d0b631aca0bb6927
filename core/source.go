package core

// SourceKind identifies where a candidate token was found.
type SourceKind int

const (
	// SourceAbsent means no candidate token was found.
	SourceAbsent SourceKind = iota
	// SourceHeader means the token came from an "Authorization: Bearer" header.
	SourceHeader
	// SourceCookie means the token came from the authentication cookie.
	SourceCookie
)

// String returns the label used in logs and metrics.
func (k SourceKind) String() string {
	switch k {
	case SourceHeader:
		return "header"
	case SourceCookie:
		return "cookie"
	default:
		return "absent"
	}
}

// TokenSource is the result of locating a token on a request. The Token
// field is only meaningful when Kind is SourceHeader or SourceCookie.
type TokenSource struct {
	Kind  SourceKind
	Token string
}

// Absent is the TokenSource for requests that carry no candidate token.
var Absent = TokenSource{Kind: SourceAbsent}

// FromHeader returns a TokenSource for a token taken from the Authorization header.
func FromHeader(token string) TokenSource {
	if token == "" {
		return Absent
	}
	return TokenSource{Kind: SourceHeader, Token: token}
}

// FromCookie returns a TokenSource for a token taken from a cookie.
func FromCookie(token string) TokenSource {
	if token == "" {
		return Absent
	}
	return TokenSource{Kind: SourceCookie, Token: token}
}

// Present reports whether the source carries a candidate token.
func (s TokenSource) Present() bool {
	return s.Kind != SourceAbsent && s.Token != ""
}
