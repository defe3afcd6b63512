package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/central"
)

// verbosity is the logr verbosity of the CLI logger. --verbose raises it to 1.
var verbosity int

// SetVerbose enables debug logging for subsequent handler calls.
func SetVerbose(v bool) {
	verbosity = 0
	if v {
		verbosity = 1
	}
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadSettings reads the console API settings.
	loadSettings = config.LoadSettings

	// newResourceClient creates the console API client.
	newResourceClient = func(s *config.Settings, logger logr.Logger) (central.ResourceClient, error) {
		c, err := central.NewFromSettings(s, central.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	// stdinIsTerminal reports whether the user can be prompted.
	stdinIsTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd()))
	}

	// stdoutIsTerminal reports whether interactive output can be shown.
	stdoutIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// readPassword reads a line from the terminal without echo.
	readPassword = func() ([]byte, error) {
		return term.ReadPassword(int(os.Stdin.Fd()))
	}
)

// newLogger creates the console logger. Log lines go to stderr so they
// never mix with command output.
func newLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: verbosity})
}

// connect creates a console API client, prompting for the token when it is
// not set in the environment.
func connect(ctx context.Context) (central.ResourceClient, error) {
	logger := logr.FromContextOrDiscard(ctx)

	settings := loadSettings()
	if err := promptToken(settings); err != nil {
		return nil, err
	}

	client, err := newResourceClient(settings, logger.WithName("central"))
	if err != nil {
		return nil, fmt.Errorf("failed to set up console API client: %w", err)
	}
	logger.V(1).Info("Using console API", "url", settings.BaseURL)
	return client, nil
}

// promptToken fills in a missing token from the terminal. It does not ask
// when no base URL is set.
func promptToken(s *config.Settings) error {
	if s.Token != "" || s.BaseURL == "" || !stdinIsTerminal() {
		return nil
	}

	fmt.Fprint(os.Stderr, "Console API token: ")
	token, err := readPassword()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	s.Token = strings.TrimSpace(string(token))
	if s.Token == "" {
		return config.ErrTokenMissing
	}
	return nil
}

// errNoTerminal is returned when a command needs to prompt but cannot.
var errNoTerminal = errors.New("no request file given and stdin is not a terminal; use --file")
