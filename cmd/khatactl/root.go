package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"khata/internal/app"
	"khata/internal/config"
	"khata/internal/domain"
	"khata/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "khatactl",
	Short: "Operator CLI for the khata ledger",
	Long: `khatactl runs ledger reports and exports directly against the database,
inspects invoice sequence counters and issues bearer tokens for testing.

Configuration is read from KHATA_* environment variables and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := logger.Setup(cfg.Log, os.Stderr); err != nil {
			return fmt.Errorf("setting up logger: %w", err)
		}
		cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
		return nil
	},
}

type configKey struct{}

func init() {
	rootCmd.PersistentFlags().String("tenant", "", "Tenant ID (UUID)")
}

func configFrom(cmd *cobra.Command) *config.Config {
	cfg, _ := cmd.Context().Value(configKey{}).(*config.Config)
	return cfg
}

// withApp wires the ledger services for the duration of fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	a, err := app.New(cmd.Context(), configFrom(cmd))
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(cmd.Context(), a)
}

// operator is the acting identity of a CLI call for the --tenant flag.
func operator(cmd *cobra.Command) (domain.Actor, error) {
	raw, _ := cmd.Flags().GetString("tenant")
	if raw == "" {
		return domain.Actor{}, fmt.Errorf("--tenant is required")
	}
	tenantID, err := uuid.Parse(raw)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("invalid --tenant: %w", err)
	}
	return domain.Actor{TenantID: tenantID, Role: domain.RoleAdmin}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
