// Copyright 2025 Soutien Labs
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
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	soutien "github.com/soutienhq/soutien"
	"github.com/soutienhq/soutien/ai"
	"github.com/soutienhq/soutien/mail"
)

func main() {
	app := &cli.App{
		Name:  "soutien",
		Usage: "Assistant local de support par e-mail",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Data directory (kb/, index/, tickets/)",
				Value:   "data",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
				Value: "embeddinggemma",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "(Re)build the knowledge-base vector index",
				Action: indexCommand,
			},
			{
				Name:      "search",
				Usage:     "Query the knowledge base",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "k",
						Usage: "Number of snippets to return",
						Value: 3,
					},
				},
			},
			{
				Name:      "ingest",
				Usage:     "Parse, classify and store every email in a directory",
				ArgsUsage: "<mail-dir>",
				Action:    ingestCommand,
			},
			{
				Name:   "classify",
				Usage:  "Classify one email (type + urgency)",
				Action: classifyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a .eml or .txt email",
						Required: true,
					},
				},
			},
			{
				Name:   "suggest-reply",
				Usage:  "Draft a reply for one email, citing knowledge-base sources",
				Action: suggestReplyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a .eml or .txt email",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "k",
						Usage: "Number of snippets to cite",
						Value: 3,
					},
				},
			},
			{
				Name:   "chat",
				Usage:  "Interactive session (/load <file>, /clear, /exit)",
				Action: chatCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openAssistant(c *cli.Context, extra ...soutien.AssistantOption) (*soutien.Assistant, error) {
	cfg := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := append([]soutien.AssistantOption{soutien.WithAIConfig(cfg)}, extra...)
	return soutien.NewAssistant(c.String("data-dir"), opts...)
}

func indexCommand(c *cli.Context) error {
	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	chunks, err := assistant.RebuildIndex(context.Background())
	if err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}
	fmt.Printf("Index reconstruit : %d extraits indexés.\n", chunks)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}

	assistant, err := openAssistant(c, soutien.WithTopK(c.Int("k")))
	if err != nil {
		return err
	}
	defer assistant.Close()

	results, err := assistant.Search(context.Background(), query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("Aucun extrait trouvé.")
		return nil
	}

	for i, snippet := range results {
		fmt.Printf("--- %d. %s (score %s)\n%s\n\n", i+1, snippet.Source, snippet.ScoreLabel(), snippet.Content)
	}
	return nil
}

func ingestCommand(c *cli.Context) error {
	mailDir := c.Args().First()
	if mailDir == "" {
		return fmt.Errorf("a mail directory is required")
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	tickets, err := assistant.Ingest(context.Background(), mailDir)
	if err != nil {
		return err
	}

	for _, ticket := range tickets {
		fmt.Printf("%-10s %-8s %s\n", ticket.Type, ticket.Urgency, ticket.SourcePath)
	}
	fmt.Printf("Total : %d ticket(s) enregistré(s).\n", len(tickets))
	return nil
}

func classifyCommand(c *cli.Context) error {
	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	email, decision, err := assistant.ClassifyFile(c.String("file"))
	if err != nil {
		return err
	}

	fmt.Printf("Fichier : %s\n", email.Path)
	fmt.Printf("Type    : %s\n", decision.Type)
	fmt.Printf("Urgence : %s\n", decision.Urgency)
	if len(decision.MatchedFeatures) > 0 {
		fmt.Printf("Règles  : %s\n", strings.Join(decision.MatchedFeatures, ", "))
	}
	for _, reason := range decision.Reasons {
		fmt.Printf("  - %s\n", reason)
	}
	return nil
}

func suggestReplyCommand(c *cli.Context) error {
	assistant, err := openAssistant(c, soutien.WithTopK(c.Int("k")))
	if err != nil {
		return err
	}
	defer assistant.Close()

	text, err := assistant.SuggestReply(context.Background(), c.String("file"))
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func chatCommand(c *cli.Context) error {
	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	ctx := context.Background()
	var loaded *mail.Email

	fmt.Println("=== Chat Support (local) ===")
	fmt.Println("Commandes : /load <fichier>, /clear, /exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println("\nAu revoir.")
			return scanner.Err()
		}
		msg := strings.TrimSpace(scanner.Text())
		if msg == "" {
			continue
		}

		switch {
		case msg == "/exit" || msg == "exit" || msg == "quit":
			fmt.Println("Au revoir.")
			return nil
		case msg == "/clear":
			loaded = nil
			fmt.Println("Contexte e-mail effacé.")
			continue
		case strings.HasPrefix(msg, "/load "):
			path := strings.TrimSpace(strings.TrimPrefix(msg, "/load "))
			email, parseErr := mail.ParseFile(path)
			if parseErr != nil {
				fmt.Printf("Erreur parsing : %v\n", parseErr)
				continue
			}
			loaded = email
			fmt.Printf("E-mail chargé : %s\n", path)
			continue
		}

		out, err := assistant.Chat(ctx, msg, loaded)
		if err != nil {
			fmt.Printf("Erreur agent : %v\n", err)
			continue
		}
		fmt.Println(out)
	}
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
