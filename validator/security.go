package validator

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	// ErrNotCompactJWS is returned when a token is not of the form
	// header.payload.signature.
	ErrNotCompactJWS = errors.New("token is not a compact JWS (expected 3 dot-separated segments)")
)

// maxTokenSize is the largest token accepted before parsing, in bytes.
const maxTokenSize = 250 * 1024

// validateTokenFormat rejects inputs that cannot be a compact JWS before
// they reach the parser. It bounds the size and the number of segments, so
// oversized or dot-stuffed inputs are refused cheaply.
func validateTokenFormat(token []byte) error {
	if len(token) == 0 {
		return errors.New("token is empty")
	}

	if len(token) > maxTokenSize {
		return fmt.Errorf("token exceeds maximum size (%d bytes)", maxTokenSize)
	}

	if bytes.Count(token, []byte{'.'}) != 2 {
		return ErrNotCompactJWS
	}

	return nil
}
