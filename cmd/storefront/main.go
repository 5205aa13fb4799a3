// Command storefront is a terminal client for the storefront: browse and
// order as a buyer, and manage products and orders as an admin.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MikeMC777/storefront/internal/api"
	"github.com/MikeMC777/storefront/internal/config"
	"github.com/MikeMC777/storefront/internal/session"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by every subcommand, built before any of them run.
type app struct {
	cfg    config.Config
	log    *slog.Logger
	client *api.Client
	creds  *session.Context
	gate   *session.Gate
	asJSON bool
	stdin  io.Reader
	in     *bufio.Reader
	out    io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var apiURL string

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the storefront catalog and manage it as an admin",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, apiURL)
		},
	}
	cmd.PersistentFlags().StringVar(&apiURL, "api", "", "backend API base URL (default $STOREFRONT_API_URL)")
	cmd.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print results as JSON")

	cmd.AddCommand(
		homeCmd(a),
		browseCmd(a),
		productCmd(a),
		orderCmd(a),
		adminCmd(a),
		versionCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, apiURL string) error {
	a.cfg = config.Load()
	if apiURL != "" {
		a.cfg.APIURL = strings.TrimRight(apiURL, "/")
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: a.cfg.LogLevel}))
	a.stdin = cmd.InOrStdin()
	a.in = bufio.NewReader(a.stdin)
	a.out = cmd.OutOrStdout()

	store, err := session.NewFileStore(a.cfg.CredentialsFile)
	if err != nil {
		return err
	}
	// credentials are scoped by the API they were issued for
	a.creds = session.NewContext(store, a.cfg.APIURL)
	base := api.New(a.cfg.APIURL, a.cfg.HTTPTimeout).WithLogger(a.log)
	a.client = base.WithCredentials(a.creds)
	a.gate = session.NewGate(base, a.log)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "storefront %s\n", version)
		},
	}
}

// prompt reads one trimmed line after printing label.
func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.TrimSpace(label), ":"), err)
	}
	return strings.TrimSpace(line), nil
}

// secret reads a line without echo when stdin is a terminal, and falls
// back to prompt for piped input.
func (a *app) secret(label string) (string, error) {
	f, ok := a.stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return a.prompt(label)
	}
	fmt.Fprint(a.out, label)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.TrimSpace(label), ":"), err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (a *app) confirm(question string) (bool, error) {
	ans, err := a.prompt(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	ans = strings.ToLower(ans)
	return ans == "y" || ans == "yes", nil
}
