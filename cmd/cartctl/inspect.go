package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dwikikusuma/storefront/internal/bootstrap"
	"github.com/dwikikusuma/storefront/internal/handoff"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
)

var errClientRequired = errors.New("--client is required")

// report is what a client's durable storage holds.
type report struct {
	Client    string         `json:"client"`
	Checkout  []handoff.Item `json:"checkout"`
	Ambient   []handoff.Item `json:"ambient"`
	LegacyKey string         `json:"legacy_key,omitempty"`
	Legacy    []handoff.Item `json:"legacy,omitempty"`
}

// withStores opens the configured stores and hands fn the channels of one
// client. Tab-scoped data lives in the servers' memory and is never visible
// here.
func withStores(cmd *cobra.Command, client string, fn func(handoff.Channels) error) error {
	if client == "" {
		return errClientRequired
	}
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "cartctl", Env: cfg.AppEnv, Level: cfg.LogLevel, Writer: cmd.ErrOrStderr()})

	stores, err := bootstrap.OpenStores(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Warn("close stores failed", slog.Any("err", err))
		}
	}()

	return fn(handoff.Bind(stores.Tab, stores.Durable, handoff.Identity{ClientID: client}))
}

func newInspectCmd() *cobra.Command {
	var client string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the hand-off and persisted cart stored for a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStores(cmd, client, func(ch handoff.Channels) error {
				ctx := cmd.Context()
				r := report{Client: client}
				r.Checkout, _ = ch.ReadCheckoutDurable(ctx)
				r.Ambient, _ = ch.ReadAmbient(ctx)
				r.Legacy, r.LegacyKey, _ = ch.ReadLegacy(ctx)
				return writeJSON(cmd.OutOrStdout(), r)
			})
		},
	}
	cmd.Flags().StringVar(&client, "client", "", "client cookie value")
	return cmd
}

func newClearCmd() *cobra.Command {
	var client string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the hand-off and persisted cart stored for a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStores(cmd, client, func(ch handoff.Channels) error {
				return ch.ClearAll(cmd.Context())
			})
		},
	}
	cmd.Flags().StringVar(&client, "client", "", "client cookie value")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
