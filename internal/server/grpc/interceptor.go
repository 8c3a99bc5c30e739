package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/adminvote/internal/common"
	"github.com/dmitrijs2005/adminvote/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	log := s.logger.With("request_id", uuid.NewString(), "method", info.FullMethod)
	start := time.Now()

	resp, err := handler(ctx, req)

	if err != nil {
		log.Warn(ctx, "request failed", "code", status.Code(err).String(), "duration", time.Since(start))
	} else {
		log.Info(ctx, "request served", "duration", time.Since(start))
	}
	return resp, err
}

// identityInterceptor attaches the caller's user to ctx. Requests without a
// token stay anonymous; a token that cannot be resolved is rejected. Failures
// of the user store are reported as Unavailable so they are not mistaken for
// bad credentials.
func (s *GRPCServer) identityInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return handler(ctx, req)
	}

	user, err := s.identities.Resolve(ctx, accessToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrTokenExpired):
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorNotFound):
			return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
		}
		s.logger.Error(ctx, "identity lookup failed", "method", info.FullMethod, "error", err)
		return nil, status.Error(codes.Unavailable, "identity lookup failed")
	}

	return handler(auth.WithIdentity(ctx, user), req)
}

func (s *GRPCServer) guardInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	attribute, ok := s.guarded[info.FullMethod]
	if !ok {
		return handler(ctx, req)
	}

	if !s.checker.IsGranted(ctx, attribute, auth.IdentityFromContext(ctx)) {
		return nil, status.Error(codes.PermissionDenied, "access denied")
	}

	return handler(ctx, req)
}
