package main

import (
	"context"
	"fmt"

	"github.com/bububa/instructor-go/pkg/instructor"
	cohereClient "github.com/cohere-ai/cohere-go/v2/client"
	cohereOption "github.com/cohere-ai/cohere-go/v2/option"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	milvusClient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/philippgille/chromem-go"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/components/embedder"
	cohereEmbedder "github.com/voyagekit/cruisedesk/components/embedder/providers/cohere"
	"github.com/voyagekit/cruisedesk/components/embedder/providers/huggingface"
	openaiEmbedder "github.com/voyagekit/cruisedesk/components/embedder/providers/openai"
	"github.com/voyagekit/cruisedesk/components/vectordb"
	chromemEngine "github.com/voyagekit/cruisedesk/components/vectordb/engines/chromem"
	memoryEngine "github.com/voyagekit/cruisedesk/components/vectordb/engines/memory"
	milvusEngine "github.com/voyagekit/cruisedesk/components/vectordb/engines/milvus"
	"github.com/voyagekit/cruisedesk/internal/config"
	"github.com/voyagekit/cruisedesk/internal/logging"
)

func buildLogger(cfg config.Log) (*zap.Logger, error) {
	return logging.New(cfg.Level, cfg.Development)
}

func buildClient(cfg config.LLM) (instructor.Instructor, error) {
	opts := []instructor.Options{
		instructor.WithMode(instructor.ModeJSON),
		instructor.WithMaxRetries(cfg.MaxRetries),
		instructor.WithValidation(),
	}
	switch cfg.Provider {
	case "openai":
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		return instructor.FromOpenAI(openai.NewClientWithConfig(clientCfg), opts...), nil
	case "anthropic":
		var clientOpts []anthropic.ClientOption
		if cfg.BaseURL != "" {
			clientOpts = append(clientOpts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		return instructor.FromAnthropic(anthropic.NewClient(cfg.APIKey, clientOpts...), opts...), nil
	case "cohere":
		clientOpts := []cohereOption.RequestOption{cohereOption.WithToken(cfg.APIKey)}
		return instructor.FromCohere(cohereClient.NewClient(clientOpts...), opts...), nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}

func buildEmbedder(cfg config.Embedder) (embedder.Embedder, error) {
	var opts []embedder.Option
	if cfg.Model != "" {
		opts = append(opts, embedder.WithModel(cfg.Model))
	}
	switch cfg.Provider {
	case "openai":
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		return openaiEmbedder.New(openai.NewClientWithConfig(clientCfg), opts...), nil
	case "cohere":
		return cohereEmbedder.New(cohereClient.NewClient(cohereOption.WithToken(cfg.APIKey)), opts...), nil
	case "huggingface":
		var clientOpts []huggingface.Option
		if cfg.APIKey != "" {
			clientOpts = append(clientOpts, huggingface.WithAPIKey(cfg.APIKey))
		}
		if cfg.BaseURL != "" {
			clientOpts = append(clientOpts, huggingface.WithBaseURL(cfg.BaseURL))
		}
		return huggingface.New(huggingface.NewClient(clientOpts...), opts...), nil
	}
	return nil, fmt.Errorf("unknown embedder provider %q", cfg.Provider)
}

// buildEngine returns the vector engine plus a close function for engines
// holding external connections.
func buildEngine(ctx context.Context, cfg config.VectorDB) (vectordb.Engine, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Engine {
	case "memory":
		return memoryEngine.New(vectordb.WithTopK(cfg.TopK)), noop, nil
	case "chromem":
		var (
			db  *chromem.DB
			err error
		)
		if cfg.Path != "" {
			db, err = chromem.NewPersistentDB(cfg.Path, false)
			if err != nil {
				return nil, nil, fmt.Errorf("open chromem db at %s: %w", cfg.Path, err)
			}
		} else {
			db = chromem.NewDB()
		}
		return chromemEngine.New(db, vectordb.WithTopK(cfg.TopK)), noop, nil
	case "milvus":
		clt, err := milvusClient.NewClient(ctx, milvusClient.Config{Address: cfg.Address})
		if err != nil {
			return nil, nil, fmt.Errorf("connect milvus at %s: %w", cfg.Address, err)
		}
		return milvusEngine.New(clt, vectordb.WithTopK(cfg.TopK)), clt.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown vector engine %q", cfg.Engine)
}

// openCatalog opens the store and loads the configured datasets. Missing
// dataset files are tolerated with a warning, the catalog starts empty.
func openCatalog(ctx context.Context, cfg config.Data, logger *zap.Logger) (*catalog.Store, []catalog.Cruise, error) {
	store, err := catalog.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	cruises, err := catalog.LoadJSONL(cfg.CruisesPath)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("load cruises: %w", err)
	}
	if err := store.LoadCruises(ctx, cruises); err != nil {
		store.Close()
		return nil, nil, err
	}
	if len(cruises) == 0 {
		logger.Warn("cruises dataset missing or empty, starting with an empty catalog", zap.String("path", cfg.CruisesPath))
	} else {
		logger.Info("catalog loaded", zap.Int("cruises", len(cruises)), zap.String("path", cfg.CruisesPath))
	}

	if cfg.PricingPath != "" {
		pricing, err := catalog.LoadPricingCSV(cfg.PricingPath)
		if err != nil {
			logger.Warn("pricing dataset unavailable", zap.String("path", cfg.PricingPath), zap.Error(err))
		} else if err := store.LoadPricing(ctx, pricing); err != nil {
			store.Close()
			return nil, nil, err
		} else {
			logger.Info("pricing loaded", zap.Int("rows", len(pricing)))
		}
	}
	return store, cruises, nil
}
