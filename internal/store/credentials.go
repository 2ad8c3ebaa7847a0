package store

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const commandTimeout = 30 * time.Second

// TokenSource resolves the bearer credential handed to coordinator calls.
// Resolution order: configured literal, environment variable, external
// command (for setups that keep the token in a secret manager). Command
// output is cached for the configured lifetime.
//
// A missing credential is not an error here: Token returns an empty
// string and the caller decides how to fail.
type TokenSource struct {
	mu        sync.Mutex
	literal   string
	envVar    string
	command   string
	lifetime  time.Duration
	cached    string
	fetchedAt time.Time
	logger    *zap.Logger
}

// NewTokenSource creates a token source. Any of literal, envVar and
// command may be empty.
func NewTokenSource(literal, envVar, command string, lifetime time.Duration, logger *zap.Logger) *TokenSource {
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	return &TokenSource{
		literal:  literal,
		envVar:   envVar,
		command:  command,
		lifetime: lifetime,
		logger:   logger,
	}
}

// Token resolves the current credential. An empty result means no
// credential is configured or the configured sources are empty.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	if ts.literal != "" {
		return ts.literal, nil
	}

	if ts.envVar != "" {
		if v := strings.TrimSpace(os.Getenv(ts.envVar)); v != "" {
			return v, nil
		}
	}

	if ts.command == "" {
		return "", nil
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.cached != "" && time.Since(ts.fetchedAt) < ts.lifetime {
		return ts.cached, nil
	}

	token, err := ts.runCommand(ctx)
	if err != nil {
		// A stale token beats no token; the server will reject it
		// if it has actually expired.
		if ts.cached != "" {
			ts.logger.Warn("Token command failed, reusing cached token",
				zap.Error(err))
			return ts.cached, nil
		}
		return "", err
	}

	ts.cached = token
	ts.fetchedAt = time.Now()
	ts.logger.Info("Token refreshed from command",
		zap.Time("fetched_at", ts.fetchedAt),
		zap.Duration("lifetime", ts.lifetime))

	return token, nil
}

// runCommand executes the configured token command and returns the first
// line of its output.
func (ts *TokenSource) runCommand(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	parts := strings.Fields(ts.command)
	if len(parts) == 0 {
		return "", fmt.Errorf("token command is empty")
	}

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("token command failed: %w", err)
	}

	token := strings.TrimSpace(string(output))
	if idx := strings.IndexByte(token, '\n'); idx >= 0 {
		token = strings.TrimSpace(token[:idx])
	}
	if token == "" {
		return "", fmt.Errorf("token command produced no output")
	}

	return token, nil
}
