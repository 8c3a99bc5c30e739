package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/adminvote/internal/logging"
	pb "github.com/dmitrijs2005/adminvote/internal/proto"
	"github.com/dmitrijs2005/adminvote/internal/server/authorization"
	"github.com/dmitrijs2005/adminvote/internal/server/models"
	"google.golang.org/grpc"
)

// UserService is the account logic the handlers call into.
type UserService interface {
	Register(ctx context.Context, userName, password string) (*models.User, error)
	Login(ctx context.Context, userName, password string) (string, error)
	List(ctx context.Context) ([]*models.User, error)
}

// IdentityResolver turns an access token into the user it was issued to.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// AdminAttribute guards administrative methods.
const AdminAttribute = "ROLE_ADMIN"

type GRPCServer struct {
	pb.UnimplementedAdminServiceServer
	address    string
	users      UserService
	identities IdentityResolver
	checker    authorization.AuthorizationChecker
	logger     logging.Logger
	// guarded maps full method names to the attribute the caller must be granted.
	guarded map[string]string
}

func NewGRPCServer(a string, l logging.Logger, us UserService, ir IdentityResolver, ac authorization.AuthorizationChecker) *GRPCServer {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		users:      us,
		identities: ir,
		checker:    ac,
		guarded: map[string]string{
			pb.AdminService_ListUsers_FullMethodName: AdminAttribute,
		},
	}
}

// newServer builds the grpc.Server with the interceptor chain and the service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.identityInterceptor,
		s.guardInterceptor,
	))
	pb.RegisterAdminServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	return srv.Serve(listen)
}
