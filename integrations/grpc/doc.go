// Package grpc provides gRPC server interceptors for JWT authentication.
//
// This package offers both unary and streaming interceptors that validate
// JWTs from gRPC metadata and make the outcome available in the request
// context, using the same core and validator as the HTTP middleware.
//
// # Locating tokens
//
// The default locator reads "authorization: Bearer <token>" metadata and
// falls back to the AuthToken cookie in "cookie" metadata, which is what
// grpc-gateway forwards for browser clients.
//
// # Basic Usage
//
//	import (
//	    jwtgrpc "github.com/resume-platform/jwtauth/integrations/grpc"
//	    "github.com/resume-platform/jwtauth/validator"
//	    "google.golang.org/grpc"
//	)
//
//	func main() {
//	    v, err := validator.New(
//	        validator.WithIssuer("api.example"),
//	        validator.WithAudience("web.example"),
//	        validator.WithSigningKey(key),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    interceptor, err := jwtgrpc.New(
//	        jwtgrpc.WithValidator(v),
//	        jwtgrpc.WithExcludedMethods("/grpc.health.v1.Health/Check"),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    server := grpc.NewServer(
//	        grpc.UnaryInterceptor(interceptor.UnaryServerInterceptor()),
//	        grpc.StreamInterceptor(interceptor.StreamServerInterceptor()),
//	    )
//	}
//
// Handlers read the principal with PrincipalFrom:
//
//	func (s *server) GetProfile(ctx context.Context, req *pb.Request) (*pb.Profile, error) {
//	    p, err := jwtgrpc.PrincipalFrom(ctx)
//	    if err != nil {
//	        return nil, status.Error(codes.Unauthenticated, "unauthenticated")
//	    }
//	    return &pb.Profile{Id: p.Subject()}, nil
//	}
//
// # Error Handling
//
// DefaultErrorHandler maps rejections to status codes:
//
//   - missing, malformed, badly signed, expired or not yet valid tokens:
//     codes.Unauthenticated
//   - wrong issuer or audience: codes.PermissionDenied
package grpc
