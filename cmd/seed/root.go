package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"faq-chatbot-be/internal/config"
	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/model"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/repository/unitofwork"
	"faq-chatbot-be/internal/service"
	"faq-chatbot-be/pkg/database"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

const defaultSeedFile = "cmd/seed/faq.yaml"

type seedFile struct {
	Faqs []dto.FaqRequest `yaml:"faqs"`
}

func newRootCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert FAQ entries from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := database.NewQuietGormDB(cfg.Database.Driver, cfg.Database.Connection)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			if cfg.Database.Driver == database.DriverSQLite {
				if err := db.AutoMigrate(model.All()...); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			return runSeed(cmd.Context(), db, path, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", defaultSeedFile, "YAML file with a top-level faqs list.")
	return cmd
}

func loadSeed(path string) ([]dto.FaqRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(file.Faqs) == 0 {
		return nil, fmt.Errorf("%s has no faqs", path)
	}
	return file.Faqs, nil
}

func runSeed(ctx context.Context, db *gorm.DB, path string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	items, err := loadSeed(path)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Seeding %d FAQ entries from %s...\n", len(items), path)

	// No publisher: running instances pick the change up when their cache expires.
	faqs := service.NewFaqService(unitofwork.NewRepositoryFactory(db), time.Minute, nil, "seed", logger.NewNopLogger())
	result, err := faqs.Import(ctx, items)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✅ FAQ seeding completed: %d created, %d updated\n", result.Created, result.Updated)
	return nil
}
