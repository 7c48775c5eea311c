package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/fx"

	"github.com/polkiloo/checkin/internal/config"
	"github.com/polkiloo/checkin/internal/pkg/auth"
)

// exitInterrupted is returned when a signal stops the process.
const exitInterrupted = 130

type application interface {
	Err() error
	Start(ctx context.Context) error
	Wait() <-chan fx.ShutdownSignal
	Stop(ctx context.Context) error
}

func run(ctx context.Context, app application, stderr io.Writer) int {
	if err := app.Err(); err != nil {
		reportStartError(stderr, err)
		return 1
	}
	if err := app.Start(ctx); err != nil {
		reportStartError(stderr, err)
		return 1
	}

	code := 0
	select {
	case <-ctx.Done():
		code = exitInterrupted
	case sig := <-app.Wait():
		code = sig.ExitCode
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(stderr, "failed to stop application: %v\n", err)
		if code == 0 {
			code = 1
		}
	}
	return code
}

func reportStartError(w io.Writer, err error) {
	if errors.Is(err, config.ErrUsage) {
		fmt.Fprintln(w, config.Usage)
		return
	}
	fmt.Fprintf(w, "failed to start application: %v\n", err)
}

// hashToken reads a status API token from r and prints its bcrypt hash,
// suitable for STATUS_TOKEN_HASH.
func hashToken(r io.Reader, stdout, stderr io.Writer) int {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintf(stderr, "read token: %v\n", err)
		return 1
	}
	token := strings.TrimSpace(line)
	if token == "" {
		fmt.Fprintln(stderr, "usage: echo TOKEN | checkin hash-token")
		return 1
	}
	hash, err := auth.NewBcryptHasher(0).Hash(token)
	if err != nil {
		fmt.Fprintf(stderr, "hash token: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, hash)
	return 0
}
