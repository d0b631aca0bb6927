package grpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"

	"github.com/resume-platform/jwtauth/core"
)

func incoming(kv ...string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(kv...))
}

func TestMetadataTokenLocator(t *testing.T) {
	testCases := []struct {
		name string
		ctx  context.Context
		want core.TokenSource
	}{
		{name: "no metadata", ctx: context.Background(), want: core.Absent},
		{name: "no authorization", ctx: incoming("other-header", "value"), want: core.Absent},
		{name: "bearer token", ctx: incoming("authorization", "Bearer tok"), want: core.FromHeader("tok")},
		{name: "lowercase scheme", ctx: incoming("authorization", "bearer tok"), want: core.FromHeader("tok")},
		{name: "no scheme", ctx: incoming("authorization", "tok"), want: core.Absent},
		{name: "basic scheme", ctx: incoming("authorization", "Basic dXNlcg=="), want: core.Absent},
		{
			name: "multiple authorization entries",
			ctx:  incoming("authorization", "Bearer one", "authorization", "Bearer two"),
			want: core.Absent,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, MetadataTokenLocator(testCase.ctx))
		})
	}
}

func TestCookieTokenLocator(t *testing.T) {
	locate := CookieTokenLocator(DefaultCookieName)

	assert.Equal(t, core.Absent, locate(context.Background()))
	assert.Equal(t, core.Absent, locate(incoming("cookie", "theme=dark")))
	assert.Equal(t, core.FromCookie("tok"), locate(incoming("cookie", "theme=dark; AuthToken=tok")))
	assert.Equal(t, core.FromCookie("tok"), locate(incoming("cookie", "theme=dark", "cookie", "AuthToken=tok")))
	assert.Equal(t, core.Absent, locate(incoming("cookie", "AuthToken=")))
	assert.Equal(t, core.FromCookie("tok"), locate(incoming("cookie", `bad"name=x; AuthToken=tok`)))
}

func TestMetadataOrCookie(t *testing.T) {
	locate := MetadataOrCookie(DefaultCookieName)

	assert.Equal(t, core.FromHeader("h"), locate(incoming("authorization", "Bearer h", "cookie", "AuthToken=c")))
	assert.Equal(t, core.FromCookie("c"), locate(incoming("cookie", "AuthToken=c")))
	assert.Equal(t, core.FromCookie("c"), locate(incoming("authorization", "Token h", "cookie", "AuthToken=c")))
	assert.Equal(t, core.Absent, locate(incoming()))
}
