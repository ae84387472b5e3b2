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


package soutien

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soutienhq/soutien/ai/mock"
	"github.com/soutienhq/soutien/core"
)

func setupAssistant(t *testing.T) (*Assistant, string) {
	t.Helper()
	dataDir := t.TempDir()

	kbDir := filepath.Join(dataDir, "kb")
	require.NoError(t, os.MkdirAll(kbDir, 0o755))
	kbDocs := map[string]string{
		"incident_502.md": "En cas d'erreur 502 :\n1. Vérifier l'état du service.\n2. Vider le cache du navigateur.",
		"mots_de_passe.md": "Pour réinitialiser un mot de passe oublié :\n1. Ouvrir la page de connexion.\n" +
			"2. Suivre le lien de réinitialisation reçu par e-mail.",
	}
	for name, content := range kbDocs {
		require.NoError(t, os.WriteFile(filepath.Join(kbDir, name), []byte(content), 0o644))
	}

	assistant, err := NewAssistant(dataDir, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })
	return assistant, dataDir
}

func TestAssistantIndexAndSearch(t *testing.T) {
	assistant, _ := setupAssistant(t)
	ctx := context.Background()

	chunks, err := assistant.RebuildIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, chunks)

	results, err := assistant.Search(ctx, "erreur 502")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Contains(t, results[0].Content, "502")
}

func TestAssistantSearchWithoutIndex(t *testing.T) {
	assistant, _ := setupAssistant(t)

	// No index built yet: retrieval degrades to the lexical scan.
	results, err := assistant.Search(context.Background(), "réinitialiser un mot de passe oublié")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Contains(t, results[0].Content, "lien de réinitialisation")
}

func TestAssistantIngest(t *testing.T) {
	assistant, _ := setupAssistant(t)
	ctx := context.Background()

	mailDir := t.TempDir()
	incident := "From: alice@example.com\nSubject: [INCIDENT] Erreur 502\n\nLe site est en panne, erreur 502, c'est urgent.\n"
	question := "Subject: Export CSV\n\nBonjour, comment exporter mes données ?\n"
	require.NoError(t, os.WriteFile(filepath.Join(mailDir, "a.txt"), []byte(incident), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(mailDir, "b.txt"), []byte(question), 0o644))

	tickets, err := assistant.Ingest(ctx, mailDir)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, core.TicketIncident, tickets[0].Type)
	assert.Equal(t, core.TicketQuestion, tickets[1].Type)

	incidents, err := assistant.TicketRepository().ListTicketsByType(ctx, core.TicketIncident)
	require.NoError(t, err)
	assert.Len(t, incidents, 1)

	// Ingest is idempotent per file.
	_, err = assistant.Ingest(ctx, mailDir)
	require.NoError(t, err)
	count, err := assistant.TicketRepository().CountTickets(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAssistantSuggestReply(t *testing.T) {
	assistant, _ := setupAssistant(t)

	mailDir := t.TempDir()
	path := filepath.Join(mailDir, "incident.txt")
	content := "From: Alice Martin <alice@example.com>\nSubject: Erreur 502 au paiement\n\nNous voyons une erreur 502.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	text, err := assistant.SuggestReply(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, text, "Objet: RE: Erreur 502 au paiement")
	assert.Contains(t, text, "Bonjour Alice,")
	assert.Contains(t, text, "incident_502.md")
}

func TestAssistantChat(t *testing.T) {
	assistant, _ := setupAssistant(t)

	out, err := assistant.Chat(context.Background(), "erreur 502", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Vérifier l'état du service.")
	assert.Contains(t, out, "incident_502.md")
}
