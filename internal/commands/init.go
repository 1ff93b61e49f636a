package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spendsense-dev/spendsense/internal/config"
	"github.com/spendsense-dev/spendsense/internal/model"
	"github.com/spendsense-dev/spendsense/internal/storage/sqlite"
)

func newInitCommand() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new spendsense project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), absDir, user)
		},
	}

	cmd.Flags().StringVar(&user, "user", "local", "user id that owns the imported data")

	return cmd
}

func runInit(ctx context.Context, dir, user string) error {
	cfg := config.Default(user)

	// Create directory structure.
	dirs := []string{
		cfg.Import.Directory,
		filepath.Join(cfg.Import.Directory, "processed"),
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write spendsense.yaml.
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create and seed the database.
	store, err := sqlite.Open(filepath.Join(dir, cfg.Database.Path))
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer store.Close()

	if err := store.SeedDefaults(ctx, user); err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}

	account := model.Account{
		ID:       uuid.NewString(),
		UserID:   user,
		Name:     cfg.Defaults.Account,
		Type:     model.AccountChecking,
		Balance:  decimal.Zero,
		Currency: cfg.Defaults.Currency,
		IsActive: true,
	}
	if err := store.InsertAccount(ctx, &account); err != nil {
		return fmt.Errorf("creating default account: %w", err)
	}

	fmt.Printf("Initialized spendsense project at %s for user %s\n", dir, user)
	return nil
}
