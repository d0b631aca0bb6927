package grpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/resume-platform/jwtauth/internal/tokentest"
	"github.com/resume-platform/jwtauth/validator"
)

func createTestValidator(t *testing.T) *validator.Validator {
	t.Helper()
	v, err := validator.New(
		validator.WithIssuer(tokentest.Issuer),
		validator.WithAudience(tokentest.Audience),
		validator.WithSigningKey(tokentest.Key),
		validator.WithClock(tokentest.Clock),
	)
	require.NoError(t, err)
	return v
}

// subjectHandler replies with the principal subject, or "anonymous".
func subjectHandler(ctx context.Context, _ any) (any, error) {
	p, err := PrincipalFrom(ctx)
	if err != nil {
		return "anonymous", nil
	}
	return p.Subject(), nil
}

func TestUnaryServerInterceptor(t *testing.T) {
	valid := tokentest.Valid(t)
	otherAudience := tokentest.Claims()
	otherAudience["aud"] = "mobile.example"

	testCases := []struct {
		name     string
		options  []Option
		method   string
		md       metadata.MD
		wantCode codes.Code
		wantResp any
	}{
		{
			name:     "valid bearer metadata",
			md:       metadata.Pairs("authorization", "Bearer "+valid),
			wantResp: "user-42",
		},
		{
			name:     "valid cookie metadata",
			md:       metadata.Pairs("cookie", "AuthToken="+valid),
			wantResp: "user-42",
		},
		{
			name:     "missing token",
			md:       metadata.MD{},
			wantCode: codes.Unauthenticated,
		},
		{
			name:     "missing token with optional credentials",
			options:  []Option{WithCredentialsOptional(true)},
			md:       metadata.MD{},
			wantResp: "anonymous",
		},
		{
			name:     "invalid token with optional credentials",
			options:  []Option{WithCredentialsOptional(true)},
			md:       metadata.Pairs("authorization", "Bearer nope"),
			wantCode: codes.Unauthenticated,
		},
		{
			name:     "wrong audience",
			md:       metadata.Pairs("authorization", "Bearer "+tokentest.Sign(t, tokentest.Key, otherAudience)),
			wantCode: codes.PermissionDenied,
		},
		{
			name:     "excluded method",
			options:  []Option{WithExcludedMethods("/test.Service/Public")},
			method:   "/test.Service/Public",
			md:       metadata.MD{},
			wantResp: "anonymous",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			opts := append([]Option{WithValidator(createTestValidator(t))}, testCase.options...)
			interceptor, err := New(opts...)
			require.NoError(t, err)

			method := testCase.method
			if method == "" {
				method = "/test.Service/Method"
			}
			ctx := metadata.NewIncomingContext(context.Background(), testCase.md)

			resp, err := interceptor.UnaryServerInterceptor()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: method}, subjectHandler)

			if testCase.wantCode != codes.OK {
				assert.Nil(t, resp)
				assert.Equal(t, testCase.wantCode, status.Code(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantResp, resp)
		})
	}
}

type mockServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (m *mockServerStream) Context() context.Context { return m.ctx }

func TestStreamServerInterceptor(t *testing.T) {
	interceptor, err := New(WithValidator(createTestValidator(t)))
	require.NoError(t, err)
	streamInterceptor := interceptor.StreamServerInterceptor()
	info := &grpc.StreamServerInfo{FullMethod: "/test.Service/Stream"}

	t.Run("valid token", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+tokentest.Valid(t)))

		var subject string
		err := streamInterceptor(nil, &mockServerStream{ctx: ctx}, info, func(_ any, ss grpc.ServerStream) error {
			p, err := PrincipalFrom(ss.Context())
			if err != nil {
				return err
			}
			subject = p.Subject()
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, "user-42", subject)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := tokentest.Claims()
		claims["exp"] = tokentest.Now.Unix()
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+tokentest.Sign(t, tokentest.Key, claims)))

		called := false
		err := streamInterceptor(nil, &mockServerStream{ctx: ctx}, info, func(any, grpc.ServerStream) error {
			called = true
			return nil
		})

		assert.False(t, called)
		st, _ := status.FromError(err)
		assert.Equal(t, codes.Unauthenticated, st.Code())
		assert.Equal(t, "token has expired", st.Message())
	})
}
