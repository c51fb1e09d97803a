// Copyright 2025 Praxis Works
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/praxisworks/recall"
	"github.com/praxisworks/recall/ai"
	"github.com/praxisworks/recall/core"
	"github.com/praxisworks/recall/search"
)

func main() {
	app := &cli.App{
		Name:  "recall",
		Usage: "Hybrid knowledge retrieval over a document corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search the corpus with a free-text query",
				Action:    searchCommand,
				ArgsUsage: "<query>",
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: search.DefaultLimit,
					},
					&cli.Float64Flag{
						Name:  "mass-selection",
						Usage: "Percentage of stored chunks the semantic scan may examine (0 = all)",
					},
					&cli.BoolFlag{
						Name:  "no-preprocess",
						Usage: "Skip query classification and search with the raw query",
					},
				),
			},
			{
				Name:   "vectorize",
				Usage:  "Chunk and embed every document in the corpus",
				Action: vectorizeCommand,
				Flags: append(commonFlags(),
					&cli.BoolFlag{
						Name:  "preserve",
						Usage: "Keep prior embeddings alongside the new ones for later revert",
					},
				),
			},
			{
				Name:   "revert",
				Usage:  "Discard embeddings staged by a preserve-mode vectorize run",
				Action: revertCommand,
				Flags:  commonFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to the chunk store directory",
		},
		&cli.StringFlag{
			Name:  "corpus",
			Usage: "Path to the document corpus directory",
		},
		&cli.StringFlag{
			Name:  "user",
			Usage: "User ID the operation runs as",
			Value: "local",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
		&cli.StringFlag{
			Name:  "classifier-host",
			Usage: "Classifier service host URL",
		},
		&cli.StringFlag{
			Name:  "classifier-model",
			Usage: "Classifier model name",
		},
	}
}

// buildEngine resolves configuration (flags > config file > env) and
// opens the engine.
func buildEngine(c *cli.Context) (*recall.Engine, *fileConfig, error) {
	cfg, err := loadFileConfig(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	loadEnv(cfg)

	dbPath := firstNonEmpty(c.String("db"), cfg.DB)
	if dbPath == "" {
		return nil, nil, fmt.Errorf("database path is required (--db or config)")
	}
	corpusPath := firstNonEmpty(c.String("corpus"), cfg.Corpus)
	if corpusPath == "" {
		return nil, nil, fmt.Errorf("corpus directory is required (--corpus or config)")
	}

	documents, err := newDirectorySource(corpusPath)
	if err != nil {
		return nil, nil, err
	}

	aiOpts := []ai.ConfigOption{}
	if host := firstNonEmpty(c.String("embedding-host"), cfg.AI.EmbeddingHost); host != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingHost(host))
	}
	if host := firstNonEmpty(c.String("classifier-host"), cfg.AI.ClassifierHost); host != "" {
		aiOpts = append(aiOpts, ai.WithClassifierHost(host))
	}
	if model := firstNonEmpty(c.String("embedding-model"), cfg.AI.EmbeddingModel); model != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingModel(model))
	}
	if model := firstNonEmpty(c.String("classifier-model"), cfg.AI.ClassifierModel); model != "" {
		aiOpts = append(aiOpts, ai.WithClassifierModel(model))
	}
	if cfg.AI.EmbeddingProvider != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingProvider(cfg.AI.EmbeddingProvider))
	}
	if cfg.AI.ClassifierTimeout > 0 {
		aiOpts = append(aiOpts, ai.WithClassifierTimeout(cfg.AI.ClassifierTimeout))
	}

	engine, err := recall.NewEngine(dbPath, documents, recall.WithAIConfig(ai.NewConfig(aiOpts...)))
	if err != nil {
		return nil, nil, fmt.Errorf("open engine: %w", err)
	}
	return engine, cfg, nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	engine, cfg, err := buildEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	opts := search.DefaultOptions()
	if c.Int("limit") > 0 {
		opts.Limit = c.Int("limit")
	} else if cfg.Search.Limit > 0 {
		opts.Limit = cfg.Search.Limit
	}
	opts.MassSelectionPercentage = c.Float64("mass-selection")
	if opts.MassSelectionPercentage == 0 {
		opts.MassSelectionPercentage = cfg.Search.MassSelectionPercentage
	}

	ctx := context.Background()
	userId := c.String("user")

	if c.Bool("no-preprocess") {
		results, err := engine.Search(ctx, query, userId, opts)
		if err != nil {
			return err
		}
		printResults(results)
		return nil
	}

	plan, results, err := engine.Retrieve(ctx, query, userId, "", opts)
	if err != nil {
		return err
	}
	fmt.Printf("Enhanced query: %s\n", plan.EnhancedQuery)
	fmt.Printf("Weights: keyword=%.2f vector=%.2f\n", plan.KeywordWeight, plan.VectorWeight)
	if plan.Reasoning != "" {
		fmt.Printf("Reasoning: %s\n", plan.Reasoning)
	}
	if !plan.NeedsSearch {
		fmt.Println("No knowledge-base lookup warranted.")
		return nil
	}
	printResults(results)
	return nil
}

func printResults(results []core.SearchResult) {
	if len(results) == 0 {
		fmt.Println("No results.")
		return
	}
	for i, r := range results {
		fmt.Printf("%2d. doc=%d score=%.1f source=%s similarity=%.3f\n",
			i+1, r.DocumentId, r.SearchScore, r.SourceType, r.Similarity)
		if r.Snippet != "" {
			fmt.Printf("    %s\n", r.Snippet)
		}
	}
}

func vectorizeCommand(c *cli.Context) error {
	engine, _, err := buildEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	userId := c.String("user")

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("vectorizing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)
	result, err := engine.VectorizeAll(ctx, userId, c.Bool("preserve"), func() {
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("Vectorized %d documents (%d failed)\n", result.Processed, result.Failed)
	return nil
}

func revertCommand(c *cli.Context) error {
	engine, _, err := buildEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("reverting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)
	result, err := engine.RevertVectorization(ctx, c.String("user"), func() {
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("Reverted %d chunks (%d had nothing to discard, %d documents failed)\n",
		result.Reverted, result.Skipped, result.Failed)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
