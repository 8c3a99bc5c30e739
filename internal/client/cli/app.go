// Package cli implements the interactive adminvote client.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/adminvote/internal/client/client"
	"github.com/dmitrijs2005/adminvote/internal/client/config"
)

// Service is the remote API used by the commands.
type Service interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, userName, password string) (*client.User, error)
	Login(ctx context.Context, userName, password string) error
	IsGranted(ctx context.Context, attribute string) (bool, error)
	ListUsers(ctx context.Context) ([]client.User, error)
	LoggedIn() bool
	Logout()
}

type App struct {
	service  Service
	timeout  time.Duration
	reader   *bufio.Reader
	out      io.Writer
	userName string

	// readPassword reads a secret without echo.
	readPassword func() ([]byte, error)
}

func NewApp(c *config.Config) (*App, io.Closer, error) {
	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, nil, err
	}

	return newApp(apiClient, c.RequestTimeout, os.Stdin, os.Stdout, terminalPassword), apiClient, nil
}

func newApp(s Service, timeout time.Duration, in io.Reader, out io.Writer, readPassword func() ([]byte, error)) *App {
	return &App{
		service:      s,
		timeout:      timeout,
		reader:       bufio.NewReader(in),
		out:          out,
		readPassword: readPassword,
	}
}

func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}
