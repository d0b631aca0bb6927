package grpc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/resume-platform/jwtauth/core"
)

func TestDefaultErrorHandler(t *testing.T) {
	testCases := []struct {
		name        string
		err         error
		wantCode    codes.Code
		wantMessage string
	}{
		{name: "nil", err: nil, wantCode: codes.OK},
		{name: "missing", err: core.Rejected(core.NoCredential, nil).Err(), wantCode: codes.Unauthenticated, wantMessage: "missing credentials"},
		{name: "bare missing sentinel", err: core.ErrJWTMissing, wantCode: codes.Unauthenticated, wantMessage: "missing credentials"},
		{name: "malformed", err: core.Rejected(core.Malformed, errors.New("bad")).Err(), wantCode: codes.Unauthenticated, wantMessage: "token is malformed"},
		{name: "signature", err: core.Rejected(core.BadSignature, nil).Err(), wantCode: codes.Unauthenticated, wantMessage: "token signature is invalid"},
		{name: "issuer", err: core.Rejected(core.IssuerMismatch, nil).Err(), wantCode: codes.PermissionDenied, wantMessage: "token issuer is not accepted"},
		{name: "audience", err: core.Rejected(core.AudienceMismatch, nil).Err(), wantCode: codes.PermissionDenied, wantMessage: "token audience is not accepted"},
		{name: "expired", err: core.Rejected(core.Expired, nil).Err(), wantCode: codes.Unauthenticated, wantMessage: "token has expired"},
		{name: "not yet valid", err: core.Rejected(core.NotYetValid, nil).Err(), wantCode: codes.Unauthenticated, wantMessage: "token is not valid yet"},
		{name: "unknown", err: errors.New("boom"), wantCode: codes.Unauthenticated, wantMessage: "invalid or malformed token"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := DefaultErrorHandler(testCase.err)
			if testCase.wantCode == codes.OK {
				assert.NoError(t, err)
				return
			}
			st, ok := status.FromError(err)
			assert.True(t, ok)
			assert.Equal(t, testCase.wantCode, st.Code())
			assert.Equal(t, testCase.wantMessage, st.Message())
		})
	}
}
