package cli

import (
	"context"
	"fmt"
)

func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.service.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "server is up")
	return nil
}

func (a *App) askCredentials() (string, string, error) {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return "", "", err
	}
	password, err := GetPassword(a.out, a.readPassword)
	if err != nil {
		return "", "", err
	}
	return userName, password, nil
}

func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.askCredentials()
	if err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	u, err := a.service.Register(ctx, userName, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "registered %s (id %d)\n", u.UserName, u.ID)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.askCredentials()
	if err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.service.Login(ctx, userName, password); err != nil {
		return err
	}
	a.userName = userName
	fmt.Fprintln(a.out, "logged in as", userName)
	return nil
}

func (a *App) Logout(context.Context) error {
	a.service.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) Check(ctx context.Context, attribute string) error {
	if attribute == "" {
		return fmt.Errorf("usage: check <attribute>")
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	granted, err := a.service.IsGranted(ctx, attribute)
	if err != nil {
		return err
	}
	if granted {
		fmt.Fprintf(a.out, "%s: granted\n", attribute)
	} else {
		fmt.Fprintf(a.out, "%s: denied\n", attribute)
	}
	return nil
}

func (a *App) Users(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	users, err := a.service.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%6d  %s\n", u.ID, u.UserName)
	}
	return nil
}
