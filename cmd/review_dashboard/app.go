package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-review-dashboard/internal/api"
	"github.com/jonathan/resume-review-dashboard/internal/config"
	"github.com/jonathan/resume-review-dashboard/internal/dashboard"
	"github.com/jonathan/resume-review-dashboard/internal/observability"
)

var errNotSignedIn = errors.New("not signed in; run `review_dashboard login` first")

var (
	configPath   string
	backendURL   string
	sessionToken string
	tokenFile    string
	verbose      bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to JSON config file")
	pf.StringVar(&backendURL, "backend-url", "", "Backend origin (overrides BACKEND_URL)")
	pf.StringVar(&sessionToken, "session-token", "", "Session cookie value (overrides SESSION_TOKEN)")
	pf.StringVar(&tokenFile, "token-file", "", "File where login stores the session token (default: user config dir)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log every backend request and show full lists")
}

// app bundles what a command needs.
type app struct {
	cfg       config.Config
	client    *api.Client
	shell     *dashboard.Shell
	printer   *observability.Printer
	logger    *log.Logger
	tokenPath string
	out       io.Writer
}

// loadApp resolves configuration (file, then flags, then environment, then
// defaults) and builds the client stack.
func loadApp(cmd *cobra.Command) (*app, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	if sessionToken != "" {
		cfg.SessionToken = sessionToken
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	path, err := resolveTokenPath()
	if err != nil {
		return nil, err
	}
	if cfg.SessionToken == "" {
		if tok, err := readToken(path); err == nil {
			cfg.SessionToken = tok
		}
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)

	opts := api.DefaultOptions()
	opts.Timeout = merged.RequestTimeout.Duration
	opts.Logger = logger
	opts.Verbose = merged.Verbose
	opts.CookieName = merged.SessionCookie
	client, err := api.New(merged.BaseURL(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	client.SetSessionToken(merged.SessionToken)

	nav := dashboard.NavigatorFunc(func(route string) {
		if merged.Verbose {
			logger.Printf("[dashboard] navigate to %s", route)
		}
	})

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.SetVerbose(merged.Verbose)

	return &app{
		cfg:       merged,
		client:    client,
		shell:     dashboard.NewShell(client, nav, logger),
		printer:   printer,
		logger:    logger,
		tokenPath: path,
		out:       cmd.OutOrStdout(),
	}, nil
}

func resolveTokenPath() (string, error) {
	if tokenFile != "" {
		return tokenFile, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory (use --token-file): %w", err)
	}
	return filepath.Join(dir, "review_dashboard", "session_token"), nil
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func writeToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func removeToken(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// prompter reads answers from the command's input.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
}

// ask prints label and returns the trimmed answer. EOF with no input
// yields io.EOF.
func (p *prompter) ask(label string) (string, error) {
	_, _ = fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question; anything but y/yes is no.
func (p *prompter) confirm(label string) bool {
	answer, err := p.ask(label + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
