package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"faceauth/config"
	"faceauth/internal/client/form"

	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewClient()
	if err != nil {
		slog.Error("Failed to load client config", slog.Any("error", err))
		os.Exit(1)
	}

	var readPassword form.PasswordReader
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		readPassword = func() ([]byte, error) {
			return term.ReadPassword(fd)
		}
	}

	registerForm, err := form.New(cfg, os.Stdin, os.Stdout, readPassword)
	if err != nil {
		slog.Error("Failed to create registration form", slog.Any("error", err))
		os.Exit(1)
	}

	if err := registerForm.Run(ctx); err != nil {
		slog.Error("Registration did not complete", slog.Any("error", err))
		os.Exit(1)
	}
}
