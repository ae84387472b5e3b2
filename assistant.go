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


// Package soutien assembles the support-mail assistant: knowledge-base
// indexing, hybrid retrieval, email triage, reply drafting and ticket
// persistence behind one facade.
package soutien

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/soutienhq/soutien/agent"
	"github.com/soutienhq/soutien/ai"
	"github.com/soutienhq/soutien/ai/openai"
	"github.com/soutienhq/soutien/core"
	"github.com/soutienhq/soutien/index"
	"github.com/soutienhq/soutien/mail"
	"github.com/soutienhq/soutien/reply"
	"github.com/soutienhq/soutien/route"
	"github.com/soutienhq/soutien/search"
	"github.com/soutienhq/soutien/storage"
	"github.com/soutienhq/soutien/storage/badger"
)

// Assistant owns every collaborator of the support assistant. The data
// directory is laid out as:
//
//	<dataDir>/kb       knowledge-base .md files
//	<dataDir>/index    persistent vector index
//	<dataDir>/tickets  BadgerDB ticket store
type Assistant struct {
	kbDir      string
	persistDir string

	backend   *badger.Backend
	tickets   storage.TicketRepository
	provider  ai.Provider
	builder   *index.Builder
	retriever *search.Retriever
	graph     *agent.Graph
	logger    *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig *ai.Config
	topK     int
	provider ai.Provider
	logger   *slog.Logger
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(cfg *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithTopK sets how many snippets searches and drafted replies cite.
func WithTopK(k int) AssistantOption {
	return func(o *assistantOptions) {
		if k > 0 {
			o.topK = k
		}
	}
}

// WithProvider injects an AI provider, bypassing the OpenAI-compatible
// default. Used by tests to run without an embedding service.
func WithProvider(p ai.Provider) AssistantOption {
	return func(o *assistantOptions) {
		o.provider = p
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) AssistantOption {
	return func(o *assistantOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewAssistant opens an assistant over the given data directory.
func NewAssistant(dataDir string, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
		topK:     search.DefaultTopK,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	backend, err := badger.OpenBackend(filepath.Join(dataDir, "tickets"), false)
	if err != nil {
		provider.Close()
		return nil, err
	}
	tickets, err := badger.NewTicketRepository(backend)
	if err != nil {
		backend.Close()
		provider.Close()
		return nil, err
	}

	kbDir := filepath.Join(dataDir, "kb")
	persistDir := filepath.Join(dataDir, "index")

	builder, err := index.NewBuilder(provider.Embedder(), index.WithBuilderLogger(options.logger))
	if err != nil {
		tickets.Close()
		backend.Close()
		provider.Close()
		return nil, err
	}
	store, err := index.NewChromemStore(persistDir, provider.Embedder())
	if err != nil {
		tickets.Close()
		backend.Close()
		provider.Close()
		return nil, err
	}
	retriever, err := search.NewRetriever(store, kbDir, search.WithTopK(options.topK), search.WithLogger(options.logger))
	if err != nil {
		tickets.Close()
		backend.Close()
		provider.Close()
		return nil, err
	}
	graph, err := agent.New(retriever, agent.WithLogger(options.logger))
	if err != nil {
		tickets.Close()
		backend.Close()
		provider.Close()
		return nil, err
	}

	return &Assistant{
		kbDir:      kbDir,
		persistDir: persistDir,
		backend:    backend,
		tickets:    tickets,
		provider:   provider,
		builder:    builder,
		retriever:  retriever,
		graph:      graph,
		logger:     options.logger,
	}, nil
}

// Close releases every resource the assistant holds.
func (a *Assistant) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}
	if err := a.tickets.Close(); err != nil {
		a.logger.Error("error closing ticket repository", "err", err)
		return err
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// RebuildIndex re-embeds the knowledge base into a fresh vector index
// and atomically swaps it in. Returns the number of indexed chunks.
func (a *Assistant) RebuildIndex(ctx context.Context) (int, error) {
	return a.builder.Rebuild(ctx, a.kbDir, a.persistDir)
}

// Search runs one hybrid retrieval query.
func (a *Assistant) Search(ctx context.Context, query string) ([]core.Snippet, error) {
	return a.retriever.Retrieve(ctx, query)
}

// Ingest parses every email under mailDir, classifies each one, and
// stores the resulting tickets. Returns the stored tickets.
func (a *Assistant) Ingest(ctx context.Context, mailDir string) ([]*core.Ticket, error) {
	emails, err := mail.LoadDir(mailDir)
	if err != nil {
		return nil, err
	}

	tickets := make([]*core.Ticket, 0, len(emails))
	for _, email := range emails {
		decision := route.Classify(email)
		tickets = append(tickets, ticketFromEmail(email, decision))
	}
	return a.tickets.AddTickets(ctx, tickets...)
}

// ClassifyFile parses one email file and routes it.
func (a *Assistant) ClassifyFile(path string) (*mail.Email, route.Decision, error) {
	email, err := mail.ParseFile(path)
	if err != nil {
		return nil, route.Decision{}, err
	}
	return email, route.Classify(email), nil
}

// SuggestReply drafts a reply for one email file, citing snippets
// retrieved for its subject (or the start of its body when the subject
// is empty).
func (a *Assistant) SuggestReply(ctx context.Context, path string) (string, error) {
	email, decision, err := a.ClassifyFile(path)
	if err != nil {
		return "", err
	}

	snippets, err := a.Search(ctx, replyQuery(email))
	if err != nil {
		return "", err
	}

	replyCtx := reply.BuildContext(email, decision, snippets)
	return reply.Suggest(email, replyCtx), nil
}

// Chat runs one conversation turn against the knowledge base, with an
// optional loaded email for context.
func (a *Assistant) Chat(ctx context.Context, query string, email *mail.Email) (string, error) {
	return a.graph.RunTurn(ctx, query, email)
}

// TicketRepository exposes the underlying ticket store.
func (a *Assistant) TicketRepository() storage.TicketRepository {
	return a.tickets
}

// replyQuery picks the retrieval query for a reply draft: the subject,
// or the first 200 runes of the body.
func replyQuery(email *mail.Email) string {
	if email.Subject != "" {
		return email.Subject
	}
	body := []rune(email.Body)
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}

func ticketFromEmail(email *mail.Email, decision route.Decision) *core.Ticket {
	return &core.Ticket{
		SourcePath: email.Path,
		From:       email.From,
		Recipients: email.To,
		Subject:    email.Subject,
		Body:       email.Body,
		Type:       decision.Type,
		Urgency:    decision.Urgency,
		ReceivedAt: email.Date,
	}
}
