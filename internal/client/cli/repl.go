package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

func (a *App) prompt() string {
	if a.service.LoggedIn() && a.userName != "" {
		return fmt.Sprintf("adminvote (%s)> ", a.userName)
	}
	return "adminvote> "
}

// Run reads commands until "exit" or end of input.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to adminvote CLI (type 'help' for commands)")

	for {
		fmt.Fprint(a.out, a.prompt())

		line, err := a.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		if parts[0] == "exit" || parts[0] == "quit" {
			return
		}

		if err := a.dispatch(ctx, parts[0], parts[1:]); err != nil {
			fmt.Fprintln(a.out, "error:", err)
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, "Available commands: ping, register, login, logout, check <attribute>, users, exit")
		return nil
	case "ping":
		return a.Ping(ctx)
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "check":
		return a.Check(ctx, strings.Join(args, " "))
	case "users":
		return a.Users(ctx)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
