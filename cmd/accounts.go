package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
)

// AccountsStatus checks the connection state of every platform.
func (r *Runner) AccountsStatus(ctx context.Context, cmd *cli.Command) error {
	statuses, err := r.accounts.Status(ctx)
	if err != nil {
		return fmt.Errorf("status request failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(statuses, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Connected Accounts")
	for _, p := range models.AllPlatforms() {
		badge := "✗ disconnected"
		if st, ok := statuses[p]; ok && st.Connected {
			badge = "✓ connected"
		}
		r.writePlain("%-10s %s\n", p.Display(), badge)
	}

	return nil
}

// AccountsConnect links a platform account using credential key=value pairs.
func (r *Runner) AccountsConnect(ctx context.Context, cmd *cli.Command) error {
	platform, err := models.ParsePlatform(cmd.String("platform"))
	if err != nil {
		return err
	}

	credentials, err := parseKeyValues(cmd.StringSlice("cred"))
	if err != nil {
		return err
	}

	for _, field := range platform.CredentialFields() {
		if credentials[field.Key] == "" {
			return fmt.Errorf("%w: missing credential %q (--cred %s=...)", shared.ErrInvalidInput, field.Label, field.Key)
		}
	}

	r.logger.Info("connecting account", "platform", platform)

	result, err := r.accounts.Connect(ctx, platform, credentials)
	if err != nil {
		return fmt.Errorf("connect request failed: %w", err)
	}
	if !result.Success {
		if result.Message != "" {
			return fmt.Errorf("%w: %s", shared.ErrServerRejected, result.Message)
		}
		return fmt.Errorf("%w: connection rejected", shared.ErrServerRejected)
	}

	r.writePlain("✓ %s connected\n", platform.Display())
	return nil
}

// AccountsOAuth runs the browser authorization flow for YouTube and waits
// until the server reports the account as connected.
func (r *Runner) AccountsOAuth(ctx context.Context, cmd *cli.Command) error {
	platform, err := models.ParsePlatform(cmd.String("platform"))
	if err != nil {
		return err
	}

	authURL, err := r.accounts.StartOAuth(ctx, platform)
	if err != nil {
		return err
	}

	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warn("could not open browser", "error", err)
		r.writePlain("Open this URL to authorize:\n%s\n\n", authURL)
	} else {
		r.writePlain("Browser opened, complete the authorization...\n\n")
	}

	pollsPerSecond := 1.0
	if r.config.OAuth.PollSeconds > 0 {
		pollsPerSecond = 1 / r.config.OAuth.PollSeconds
	}
	timeout := 2 * time.Minute
	if r.config.OAuth.TimeoutSeconds > 0 {
		timeout = time.Duration(r.config.OAuth.TimeoutSeconds) * time.Second
	}

	r.writePlain("Waiting for authorization (up to %s)...\n", timeout)
	if err := r.accounts.AwaitConnection(ctx, platform, pollsPerSecond, timeout); err != nil {
		return err
	}

	r.writePlain("✓ %s connected\n", platform.Display())
	return nil
}

// accountsCommand handles platform account operations.
func accountsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "accounts",
		Aliases: []string{"acct"},
		Usage:   "Manage platform account connections",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show the connection state of every platform",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.AccountsStatus,
			},
			{
				Name:  "connect",
				Usage: "Connect a platform with API credentials",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "platform",
						Aliases:  []string{"p"},
						Usage:    "Platform to connect (youtube, instagram, tiktok, kawai)",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "cred",
						Usage: "Credential as key=value (repeatable)",
					},
				},
				Action: r.AccountsConnect,
			},
			{
				Name:  "oauth",
				Usage: "Authorize a platform in the browser (YouTube only)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "platform",
						Aliases: []string{"p"},
						Usage:   "Platform to authorize",
						Value:   "youtube",
					},
				},
				Action: r.AccountsOAuth,
			},
		},
	}
}
