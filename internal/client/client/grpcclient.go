// Package client talks to the adminvote gRPC service and keeps the access
// token obtained at login.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/adminvote/internal/common"
	pb "github.com/dmitrijs2005/adminvote/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var (
	ErrAccessDenied = errors.New("access denied")
	ErrUserExists   = errors.New("user already exists")
)

// User is a row of the user listing.
type User struct {
	ID       int64
	UserName string
}

type GRPCClient struct {
	conn   *grpc.ClientConn
	client pb.AdminServiceClient

	mu          sync.RWMutex
	accessToken string
}

// NewGRPCClient connects to endpointURL. Extra dial options are appended
// after the defaults (insecure transport, token interceptor).
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewAdminServiceClient(conn)
	return c, nil
}

func (c *GRPCClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *GRPCClient) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := c.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// LoggedIn reports whether an access token is held.
func (c *GRPCClient) LoggedIn() bool {
	return c.token() != ""
}

// Logout forgets the access token.
func (c *GRPCClient) Logout() {
	c.setToken("")
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	_, err := c.client.Ping(ctx, &emptypb.Empty{})
	return c.mapError(err)
}

func (c *GRPCClient) Register(ctx context.Context, userName, password string) (*User, error) {
	req, err := credentials(userName, password)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Register(ctx, req)
	if err != nil {
		return nil, c.mapError(err)
	}

	fields := resp.GetFields()
	return &User{
		ID:       int64(fields["id"].GetNumberValue()),
		UserName: fields["username"].GetStringValue(),
	}, nil
}

// Login authenticates and keeps the returned access token for later calls.
func (c *GRPCClient) Login(ctx context.Context, userName, password string) error {
	req, err := credentials(userName, password)
	if err != nil {
		return err
	}

	resp, err := c.client.Login(ctx, req)
	if err != nil {
		return c.mapError(err)
	}

	c.setToken(resp.GetValue())
	return nil
}

func (c *GRPCClient) IsGranted(ctx context.Context, attribute string) (bool, error) {
	resp, err := c.client.IsGranted(ctx, wrapperspb.String(attribute))
	if err != nil {
		return false, c.mapError(err)
	}
	return resp.GetValue(), nil
}

func (c *GRPCClient) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := c.client.ListUsers(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, c.mapError(err)
	}

	values := resp.GetFields()["users"].GetListValue().GetValues()
	users := make([]User, 0, len(values))
	for _, v := range values {
		f := v.GetStructValue().GetFields()
		users = append(users, User{
			ID:       int64(f["id"].GetNumberValue()),
			UserName: f["username"].GetStringValue(),
		})
	}
	return users, nil
}

func credentials(userName, password string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"username": userName, "password": password})
}

func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unauthenticated:
		if st.Message() == common.ErrTokenExpired.Error() {
			c.Logout()
			return common.ErrTokenExpired
		}
		return common.ErrorUnauthorized
	case codes.PermissionDenied:
		return ErrAccessDenied
	case codes.AlreadyExists:
		return ErrUserExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	default:
		return fmt.Errorf("%w: %s", common.ErrorInternal, st.Message())
	}
}
