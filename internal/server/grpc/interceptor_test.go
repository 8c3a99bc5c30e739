package grpc

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/adminvote/internal/common"
	pb "github.com/dmitrijs2005/adminvote/internal/proto"
	"github.com/dmitrijs2005/adminvote/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func incoming(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestIdentityInterceptor_NoTokenIsAnonymous(t *testing.T) {
	s := newTestServer("production", &fakeUsers{})
	info := &grpc.UnaryServerInfo{FullMethod: pb.AdminService_IsGranted_FullMethodName}

	var identity any = "unset"
	_, err := s.identityInterceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		identity = auth.IdentityFromContext(ctx)
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestIdentityInterceptor_ValidTokenSetsUser(t *testing.T) {
	s := newTestServer("production", &fakeUsers{})
	info := &grpc.UnaryServerInfo{FullMethod: pb.AdminService_IsGranted_FullMethodName}

	var identity any
	resp, err := s.identityInterceptor(incoming("admin"), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		identity = auth.IdentityFromContext(ctx)
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Same(t, adminUser, identity)
}

func TestIdentityInterceptor_InvalidToken(t *testing.T) {
	s := newTestServer("production", &fakeUsers{})
	info := &grpc.UnaryServerInfo{FullMethod: pb.AdminService_IsGranted_FullMethodName}

	_, err := s.identityInterceptor(incoming("not-a-valid-jwt"), nil, info, func(context.Context, interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for invalid token")
		return nil, nil
	})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, common.ErrInvalidToken.Error(), status.Convert(err).Message())
}

func TestIdentityInterceptor_ResolveFailures(t *testing.T) {
	s := newTestServer("production", &fakeUsers{})
	info := &grpc.UnaryServerInfo{FullMethod: pb.AdminService_IsGranted_FullMethodName}
	handler := func(context.Context, interface{}) (interface{}, error) {
		t.Fatal("handler should not be called when the identity cannot be resolved")
		return nil, nil
	}

	tests := []struct {
		token string
		code  codes.Code
		msg   string
	}{
		{token: "expired", code: codes.Unauthenticated, msg: common.ErrTokenExpired.Error()},
		{token: "deleted", code: codes.Unauthenticated, msg: common.ErrInvalidToken.Error()},
		{token: "store-down", code: codes.Unavailable, msg: "identity lookup failed"},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			_, err := s.identityInterceptor(incoming(tt.token), nil, info, handler)
			assert.Equal(t, tt.code, status.Code(err))
			assert.Equal(t, tt.msg, status.Convert(err).Message())
		})
	}
}

func TestGuardInterceptor(t *testing.T) {
	s := newTestServer("production", &fakeUsers{})
	guarded := &grpc.UnaryServerInfo{FullMethod: pb.AdminService_ListUsers_FullMethodName}
	open := &grpc.UnaryServerInfo{FullMethod: pb.AdminService_Ping_FullMethodName}
	ok := func(context.Context, interface{}) (interface{}, error) { return "ok", nil }

	_, err := s.guardInterceptor(context.Background(), nil, open, ok)
	assert.NoError(t, err)

	_, err = s.guardInterceptor(context.Background(), nil, guarded, ok)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = s.guardInterceptor(auth.WithIdentity(context.Background(), plainUser), nil, guarded, ok)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	resp, err := s.guardInterceptor(auth.WithIdentity(context.Background(), adminUser), nil, guarded, ok)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}
