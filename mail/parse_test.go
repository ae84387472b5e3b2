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


package mail

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleEML = "From: Alice Martin <alice@example.com>\r\n" +
	"To: support@soutien.fr, ops@soutien.fr\r\n" +
	"Cc: chef@example.com\r\n" +
	"Subject: [INCIDENT] Erreur 502 en production\r\n" +
	"Date: Mon, 01 Sep 2025 09:30:00 +0200\r\n" +
	"\r\n" +
	"Bonjour,\r\n" +
	"\r\n" +
	"Nous voyons une erreur 502 depuis ce matin.\r\n"

func TestParseFileEML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "incident.eml", sampleEML)

	email, err := ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, email.Path)
	assert.Equal(t, "Alice Martin <alice@example.com>", email.From)
	assert.Equal(t, []string{"support@soutien.fr", "ops@soutien.fr"}, email.To)
	assert.Equal(t, []string{"chef@example.com"}, email.CC)
	assert.Equal(t, "[INCIDENT] Erreur 502 en production", email.Subject)
	assert.Equal(t, 2025, email.Date.Year())
	assert.Contains(t, email.Body, "erreur 502")
	assert.Len(t, email.ID, 12)
}

func TestParseFileEMLMultipart(t *testing.T) {
	eml := "From: bob@example.com\r\n" +
		"Subject: Rapport\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: multipart/mixed; boundary=\"sep\"\r\n" +
		"\r\n" +
		"--sep\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
		"\r\n" +
		"Voici le rapport en pièce jointe.\r\n" +
		"--sep\r\n" +
		"Content-Type: application/pdf\r\n" +
		"Content-Disposition: attachment; filename=\"rapport.pdf\"\r\n" +
		"\r\n" +
		"%PDF-1.4\r\n" +
		"--sep--\r\n"

	path := writeFile(t, t.TempDir(), "rapport.eml", eml)
	email, err := ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Voici le rapport en pièce jointe.", email.Body)
	assert.Equal(t, []string{"rapport.pdf"}, email.Attachments)
}

func TestParseFileTxt(t *testing.T) {
	t.Run("with headers", func(t *testing.T) {
		content := "From: carole@example.com\n" +
			"To: support@soutien.fr\n" +
			"Subject: Demande d'accès\n" +
			"Date: Tue, 02 Sep 2025 10:00:00 +0200\n" +
			"\n" +
			"Bonjour, merci de créer un accès pour le nouveau collaborateur.\n"

		path := writeFile(t, t.TempDir(), "demande.txt", content)
		email, err := ParseFile(path)
		require.NoError(t, err)

		assert.Equal(t, "carole@example.com", email.From)
		assert.Equal(t, []string{"support@soutien.fr"}, email.To)
		assert.Equal(t, "Demande d'accès", email.Subject)
		assert.False(t, email.Date.IsZero())
		assert.Equal(t, "Bonjour, merci de créer un accès pour le nouveau collaborateur.", email.Body)
	})

	t.Run("without blank line everything is body", func(t *testing.T) {
		content := "Bonjour, comment exporter mes données ?"
		path := writeFile(t, t.TempDir(), "question.txt", content)

		email, err := ParseFile(path)
		require.NoError(t, err)
		assert.Empty(t, email.From)
		assert.Empty(t, email.Subject)
		assert.Equal(t, content, email.Body)
	})
}

func TestParseFileUnsupported(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.md", "pas un e-mail")
	_, err := ParseFile(path)
	assert.ErrorIs(t, err, ErrUnsupportedExtension)
}

func TestStableID(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "même contenu")
	b := writeFile(t, dir, "b.txt", "même contenu")
	c := writeFile(t, dir, "c.txt", "autre contenu")

	emailA, err := ParseFile(a)
	require.NoError(t, err)
	emailB, err := ParseFile(b)
	require.NoError(t, err)
	emailC, err := ParseFile(c)
	require.NoError(t, err)

	assert.Equal(t, emailA.ID, emailB.ID, "identical contents share an ID")
	assert.NotEqual(t, emailA.ID, emailC.ID)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "02-demande.txt", "Subject: Accès\n\nCorps.")
	writeFile(t, dir, "01-incident.eml", sampleEML)
	writeFile(t, dir, "readme.md", "ignoré")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archives"), 0o755))

	emails, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Contains(t, emails[0].Path, "01-incident.eml")
	assert.Contains(t, emails[1].Path, "02-demande.txt")
}
