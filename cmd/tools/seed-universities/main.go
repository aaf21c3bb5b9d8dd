// cmd/tools/seed-universities/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"study-abroad-workers/internal/common/config"
	"study-abroad-workers/internal/common/database"
	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/repository"
)

var (
	catalogPath string
	pushIndex   bool
	dryRun      bool
	configPath  string

	rootCmd = &cobra.Command{
		Use:   "seed-universities",
		Short: "Load the university catalog into PostgreSQL and, optionally, Elasticsearch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.Flags().StringVar(&catalogPath, "file", "configs/universities.yaml", "catalog file to load")
	rootCmd.Flags().BoolVar(&pushIndex, "index", false, "also bulk-index the catalog into Elasticsearch")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file and print what would be written")
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default: configs/config.yaml lookup)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log := logger.New("info", "console")
	defer log.Sync()

	universities, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	log.Info("catalog loaded", zap.String("file", catalogPath), zap.Int("universities", len(universities)))

	if dryRun {
		for _, u := range universities {
			fmt.Printf("%-50s %-20s ranking=%s\n", u.Name, u.Country, rankingText(u.Ranking))
		}
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return err
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err := repository.EnsureSchema(ctx, pg.DB); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	store := repository.NewUniversityStore(pg.DB)
	for i := range universities {
		if err := store.Upsert(ctx, &universities[i]); err != nil {
			return fmt.Errorf("upsert %s: %w", universities[i].Name, err)
		}
	}
	log.Info("catalog written to postgres", zap.Int("universities", len(universities)))

	if !pushIndex {
		return nil
	}

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		return err
	}
	index := repository.NewCatalogIndex(es.Client, cfg.Database.Elasticsearch.CatalogIndex)
	if err := index.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}
	indexed, err := index.Index(ctx, universities)
	if err != nil {
		return fmt.Errorf("index catalog: %w", err)
	}
	log.Info("catalog indexed", zap.String("index", index.Name()), zap.Int("documents", indexed))
	if indexed != len(universities) {
		return fmt.Errorf("indexed %d of %d universities", indexed, len(universities))
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func rankingText(r *int) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprint(*r)
}
