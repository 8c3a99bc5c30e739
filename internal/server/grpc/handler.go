package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/adminvote/internal/common"
	"github.com/dmitrijs2005/adminvote/internal/server/auth"
	"github.com/dmitrijs2005/adminvote/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String("OK"), nil
}

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userName, password := credentials(req)

	user, err := s.users.Register(ctx, userName, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, services.ErrUserExists):
			return nil, status.Error(codes.AlreadyExists, err.Error())
		}
		s.logger.Error(ctx, "registration failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "Registered", "username", user.UserName, "id", user.ID)

	return structpb.NewStruct(map[string]any{
		"id":       user.ID,
		"username": user.UserName,
	})
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	userName, password := credentials(req)

	token, err := s.users.Login(ctx, userName, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, "unauthorized")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	return wrapperspb.String(token), nil
}

func (s *GRPCServer) IsGranted(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	attribute := req.GetValue()
	if attribute == "" {
		return nil, status.Error(codes.InvalidArgument, "attribute is required")
	}

	return wrapperspb.Bool(s.checker.IsGranted(ctx, attribute, auth.IdentityFromContext(ctx))), nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "list users failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	list := make([]any, 0, len(users))
	for _, u := range users {
		list = append(list, map[string]any{"id": u.ID, "username": u.UserName})
	}

	return structpb.NewStruct(map[string]any{"users": list})
}

func credentials(req *structpb.Struct) (userName, password string) {
	fields := req.GetFields()
	return fields["username"].GetStringValue(), fields["password"].GetStringValue()
}
