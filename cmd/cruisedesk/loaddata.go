package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/components"
	"github.com/voyagekit/cruisedesk/internal/config"
	"github.com/voyagekit/cruisedesk/tools/semantic"
)

func newLoadDataCmd() *cobra.Command {
	var (
		validateOnly bool
		injectVector bool
		batchSize    int
	)
	cmd := &cobra.Command{
		Use:   "load-data",
		Short: "Validate the datasets and build the catalog database and vector index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runLoadData(cmd.Context(), cfg, validateOnly, injectVector, batchSize)
		},
	}
	cmd.Flags().BoolVar(&validateOnly, "validate-only", false, "validate datasets without writing anything")
	cmd.Flags().BoolVar(&injectVector, "inject-vector-store", false, "embed cruises and build the vector index")
	cmd.Flags().IntVar(&batchSize, "batch-size", 32, "embedding batch size")
	return cmd
}

func runLoadData(ctx context.Context, cfg *config.Config, validateOnly, injectVector bool, batchSize int) error {
	logger, err := buildLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cruises, err := catalog.LoadJSONL(cfg.Data.CruisesPath)
	if err != nil {
		return fmt.Errorf("load cruises: %w", err)
	}
	if len(cruises) == 0 {
		logger.Warn("cruises dataset missing or empty", zap.String("path", cfg.Data.CruisesPath))
	}
	report := catalog.Validate(cruises)
	for _, warning := range report.Warnings {
		logger.Warn("dataset warning", zap.String("detail", warning))
	}
	for _, issue := range report.Errors {
		logger.Error("dataset error", zap.String("detail", issue))
	}
	if !report.OK() {
		return fmt.Errorf("dataset has %d errors", len(report.Errors))
	}
	logger.Info("dataset valid", zap.Int("records", report.Records))
	if validateOnly {
		return nil
	}

	store, err := catalog.Open(cfg.Data.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.LoadCruises(ctx, cruises); err != nil {
		return err
	}
	if cfg.Data.PricingPath != "" {
		pricing, err := catalog.LoadPricingCSV(cfg.Data.PricingPath)
		if err != nil {
			logger.Warn("pricing dataset unavailable", zap.String("path", cfg.Data.PricingPath), zap.Error(err))
		} else if err := store.LoadPricing(ctx, pricing); err != nil {
			return err
		}
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	logger.Info("catalog written",
		zap.String("path", cfg.Data.DatabasePath),
		zap.Int64("cruises", stats.Cruises),
		zap.Int64("pricing_rows", stats.PricingRows),
		zap.Int64("destinations", stats.Destinations),
	)

	if !injectVector {
		return nil
	}
	emb, err := buildEmbedder(cfg.Embedder)
	if err != nil {
		return err
	}
	engine, closeEngine, err := buildEngine(ctx, cfg.VectorDB)
	if err != nil {
		return err
	}
	defer closeEngine()
	indexer := semantic.NewIndexer(engine, emb,
		semantic.IndexerWithCollection(cfg.VectorDB.Collection),
		semantic.IndexerWithBatchSize(batchSize),
	)
	usage := new(components.LLMUsage)
	indexed, err := indexer.Index(ctx, cruises, usage)
	if err != nil {
		return fmt.Errorf("build vector index: %w", err)
	}
	logger.Info("vector index built",
		zap.Int("records", indexed),
		zap.Int("embedding_tokens", usage.InputTokens),
	)
	return nil
}
