package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/voyagekit/cruisedesk/booking"
	"github.com/voyagekit/cruisedesk/internal/config"
	"github.com/voyagekit/cruisedesk/internal/tracing"
	"github.com/voyagekit/cruisedesk/prompts"
	"github.com/voyagekit/cruisedesk/tools"
	"github.com/voyagekit/cruisedesk/tools/semantic"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the cruise booking assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runChat(cmd.Context(), cfg)
		},
	}
}

func runChat(ctx context.Context, cfg *config.Config) error {
	logger, err := buildLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	shutdown, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer shutdown(context.Background())

	store, cruises, err := openCatalog(ctx, cfg.Data, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	emb, err := buildEmbedder(cfg.Embedder)
	if err != nil {
		return err
	}
	engine, closeEngine, err := buildEngine(ctx, cfg.VectorDB)
	if err != nil {
		return err
	}
	defer closeEngine()

	// ephemeral engines start empty, build the index from the catalog
	if n, err := engine.Count(ctx, cfg.VectorDB.Collection); err != nil {
		return err
	} else if n == 0 {
		indexer := semantic.NewIndexer(engine, emb, semantic.IndexerWithCollection(cfg.VectorDB.Collection))
		indexed, err := indexer.Index(ctx, cruises, nil)
		if err != nil {
			return fmt.Errorf("build vector index: %w", err)
		}
		logger.Info("vector index built", zap.Int("records", indexed))
	}

	client, err := buildClient(cfg.LLM)
	if err != nil {
		return err
	}
	var promptOpts []prompts.LoaderOption
	if cfg.Prompts.Dir != "" {
		promptOpts = append(promptOpts, prompts.WithDir(cfg.Prompts.Dir))
	}
	assistant, err := booking.NewAssistant(client, store, engine, emb,
		booking.WithModel(cfg.LLM.Model),
		booking.WithTemperature(cfg.LLM.Temperature),
		booking.WithMaxTokens(cfg.LLM.MaxTokens),
		booking.WithCollection(cfg.VectorDB.Collection),
		booking.WithPromptLoader(prompts.NewLoader(promptOpts...)),
		booking.WithLogger(logger),
		booking.WithToolOptions(
			tools.WithStartHook(func(_ context.Context, t tools.AnonymousTool, _ any) {
				logger.Debug("tool call", zap.String("tool", t.Title()))
			}),
			tools.WithErrorHook(func(_ context.Context, t tools.AnonymousTool, _ any, err error) {
				logger.Warn("tool failed", zap.String("tool", t.Title()), zap.Error(err))
			}),
		),
	)
	if err != nil {
		return err
	}

	fmt.Println("cruisedesk ready. Type your question, /reset to start over, /exit to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return scanner.Err()
		case "/reset":
			assistant.Reset()
			fmt.Println("conversation cleared")
			continue
		}
		answer, usage, err := assistant.Ask(ctx, booking.NewQuery(line))
		if err != nil {
			logger.Error("turn failed", zap.Error(err))
			fmt.Println("something went wrong, please try again")
			continue
		}
		printAnswer(answer)
		if usage.Usage != nil {
			logger.Debug("turn usage",
				zap.Int("input_tokens", usage.Usage.InputTokens),
				zap.Int("output_tokens", usage.Usage.OutputTokens),
			)
		}
	}
	return scanner.Err()
}

func printAnswer(answer *booking.RootResponse) {
	fmt.Println(answer.Message)
	for _, opt := range answer.CruiseOptions {
		fmt.Printf("  - %s %s", opt.CruiseID, opt.ShipName)
		if opt.Destination != "" {
			fmt.Printf(", %s", opt.Destination)
		}
		if opt.Duration > 0 {
			fmt.Printf(", %d days", opt.Duration)
		}
		if opt.PricePerPerson > 0 {
			fmt.Printf(", $%.0f pp", opt.PricePerPerson)
		}
		if opt.Reason != "" {
			fmt.Printf(" (%s)", opt.Reason)
		}
		fmt.Println()
	}
	if answer.NeedFollowUpInfo {
		for _, q := range answer.FollowUpQuestions {
			fmt.Printf("  ? %s\n", q)
		}
	}
}
