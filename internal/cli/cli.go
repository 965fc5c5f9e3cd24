// Package cli is the command-line front end: register, login, profile and
// logout against the session backend.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"secureid/internal/domain/models"
	"secureid/internal/lib/password"
	"secureid/internal/services/auth"
	"secureid/internal/services/session"
)

var ErrWeakPassword = errors.New("please fulfill all password requirements")

type Registrar interface {
	Register(ctx context.Context, name, email, pass, governmentID string) error
}

type Sessions interface {
	Login(ctx context.Context, email, pass string) error
	Profile(ctx context.Context) (models.Profile, error)
	Logout(ctx context.Context) error
}

type App struct {
	registrar Registrar
	sessions  Sessions
	in        *bufio.Reader
	fd        int
	out       io.Writer
}

// New builds the CLI. fd is the descriptor in reads from; it decides whether
// passwords are read without echo.
func New(registrar Registrar, sessions Sessions, in io.Reader, fd int, out io.Writer) *App {
	return &App{
		registrar: registrar,
		sessions:  sessions,
		in:        bufio.NewReader(in),
		fd:        fd,
		out:       out,
	}
}

const usage = `usage: secureid [-config path] <command> [flags]

commands:
  register  create an account
  login     log in and remember the session
  profile   show the logged-in profile
  logout    forget the session`

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return errors.New("no command given")
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "register":
		return a.Register(ctx, rest)
	case "login":
		return a.Login(ctx, rest)
	case "profile":
		return a.Profile(ctx, rest)
	case "logout":
		return a.Logout(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) Register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.out)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	pass := fs.String("password", "", "password")
	govID := fs.String("government-id", "", "government id number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.prompt(name, "Enter full name"); err != nil {
		return err
	}
	if err := a.prompt(email, "Enter email"); err != nil {
		return err
	}
	if err := a.promptPassword(pass); err != nil {
		return err
	}

	if unmet := password.Unmet(*pass); len(unmet) > 0 {
		renderUnmet(a.out, unmet)
		return ErrWeakPassword
	}

	if err := a.prompt(govID, "Enter government ID"); err != nil {
		return err
	}

	if err := a.registrar.Register(ctx, *name, *email, *pass, *govID); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registration successful. You can now log in.")
	return nil
}

func (a *App) Login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.out)
	email := fs.String("email", "", "email address")
	pass := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.prompt(email, "Enter email"); err != nil {
		return err
	}
	if err := a.promptPassword(pass); err != nil {
		return err
	}

	if err := a.sessions.Login(ctx, *email, *pass); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func (a *App) Profile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	fs.SetOutput(a.out)
	show := fs.Bool("show-sensitive", false, "print the government id in clear")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := a.sessions.Profile(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			fmt.Fprintln(a.out, "Session expired, you have been logged out.")
		}
		return err
	}

	renderProfile(a.out, p, *show)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) prompt(dst *string, label string) error {
	if *dst != "" {
		return nil
	}
	v, err := GetSimpleText(a.in, label, a.out)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (a *App) promptPassword(dst *string) error {
	if *dst != "" {
		return nil
	}
	v, err := GetPassword(a.in, a.fd, a.out)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// Message turns err into the one line shown to the user.
func Message(err error) string {
	for _, known := range []error{
		auth.ErrDuplicateAccount,
		auth.ErrInvalidCredentials,
		auth.ErrInvalidToken,
		session.ErrNotLoggedIn,
		ErrWeakPassword,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	if errors.Is(err, context.Canceled) {
		return "cancelled"
	}

	return err.Error()
}
