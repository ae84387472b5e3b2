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


package agent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/soutienhq/soutien/core"
	"github.com/soutienhq/soutien/mail"
	"github.com/soutienhq/soutien/reply"
	"github.com/soutienhq/soutien/route"
)

const (
	nodeRetrieve  = "retrieve"
	nodeReply     = "reply"
	nodeSummarize = "summarize"
	nodeEnd       = "end"

	noResultText = "Je n'ai trouvé aucune information pertinente dans la base."
)

// Retriever is the snippet source a conversation turn runs against.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]core.Snippet, error)
}

// State is the data threaded through one turn of the graph.
type State struct {
	Query    string
	Email    *mail.Email
	Snippets []core.Snippet

	// ReplyText is set by the reply node, FinalText by the summarize
	// node. Exactly one is filled on a completed turn.
	ReplyText string
	FinalText string
}

// node advances the state and names the next node to run.
type node func(ctx context.Context, s *State) (string, error)

// Graph wires the turn pipeline. The topology is fixed:
//
//	retrieve -> reply     -> end   (an email is loaded)
//	retrieve -> summarize -> end   (query only)
type Graph struct {
	retriever Retriever
	logger    *slog.Logger
	nodes     map[string]node
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithLogger sets the logger used to trace node transitions.
func WithLogger(logger *slog.Logger) GraphOption {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New builds the conversation graph over the given retriever.
func New(retriever Retriever, opts ...GraphOption) (*Graph, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	g := &Graph{
		retriever: retriever,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.nodes = map[string]node{
		nodeRetrieve:  g.retrieve,
		nodeReply:     g.reply,
		nodeSummarize: g.summarize,
	}
	return g, nil
}

// RunTurn executes one turn: query plus an optional loaded email. It
// returns the drafted reply when an email is present, and a compact
// documentation summary otherwise.
func (g *Graph) RunTurn(ctx context.Context, query string, email *mail.Email) (string, error) {
	state := &State{Query: query, Email: email}

	current := nodeRetrieve
	for current != nodeEnd {
		fn, ok := g.nodes[current]
		if !ok {
			return "", ErrUnknownNode
		}
		g.logger.Debug("running node", "node", current)
		next, err := fn(ctx, state)
		if err != nil {
			return "", err
		}
		current = next
	}

	if state.ReplyText != "" {
		return state.ReplyText, nil
	}
	if state.FinalText != "" {
		return state.FinalText, nil
	}
	return "Je n'ai pas pu générer de réponse.", nil
}

func (g *Graph) retrieve(ctx context.Context, s *State) (string, error) {
	snippets, err := g.retriever.Retrieve(ctx, s.Query)
	if err != nil {
		return "", err
	}
	s.Snippets = snippets

	if s.Email != nil {
		return nodeReply, nil
	}
	return nodeSummarize, nil
}

func (g *Graph) reply(_ context.Context, s *State) (string, error) {
	decision := route.Classify(s.Email)
	replyCtx := reply.BuildContext(s.Email, decision, s.Snippets)
	s.ReplyText = reply.Suggest(s.Email, replyCtx)
	return nodeEnd, nil
}

// summarize renders a short answer from the snippets alone, for turns
// without a loaded email.
func (g *Graph) summarize(_ context.Context, s *State) (string, error) {
	if len(s.Snippets) == 0 {
		s.FinalText = noResultText
		return nodeEnd, nil
	}

	lines := []string{"Voici des éléments de réponse basés sur la documentation :", ""}

	var steps []string
	for _, sn := range s.Snippets {
		for _, line := range strings.Split(sn.Content, "\n") {
			trimmed := strings.TrimSpace(line)
			if startsNumbered(trimmed) {
				steps = append(steps, trimmed)
			}
			if len(steps) >= 4 {
				break
			}
		}
		if len(steps) >= 4 {
			break
		}
	}
	if len(steps) > 0 {
		lines = append(lines, steps...)
		lines = append(lines, "")
	}

	lines = append(lines, reply.SourcesBlock(s.Snippets))
	lines = append(lines, "\nCordialement,\nL'équipe Support")
	s.FinalText = strings.Join(lines, "\n")
	return nodeEnd, nil
}

func startsNumbered(line string) bool {
	for _, prefix := range []string{"1.", "2.", "3.", "4."} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
