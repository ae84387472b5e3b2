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


package route

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soutienhq/soutien/core"
	"github.com/soutienhq/soutien/mail"
)

func email(subject, body string) *mail.Email {
	return &mail.Email{Subject: subject, Body: body}
}

func TestClassifyIncidentCritique(t *testing.T) {
	d := Classify(email(
		"[INCIDENT] Erreur 502 en production",
		"Le service est en panne depuis ce matin, c'est urgent. Erreur 502 sur toutes les pages.",
	))

	assert.Equal(t, core.TicketIncident, d.Type)
	assert.Equal(t, core.UrgencyCritique, d.Urgency)
	assert.Contains(t, d.MatchedFeatures, "tag:[INCIDENT]")
	assert.Contains(t, d.MatchedFeatures, "tag:[incident]")
	assert.Contains(t, d.MatchedFeatures, "http_error")
	assert.Contains(t, d.Reasons, "Sujet contient [INCIDENT].")
}

func TestClassifyAccentedEchec(t *testing.T) {
	d := Classify(email(
		"Échec de connexion au portail",
		"Nouvel échec de connexion ce matin sur le portail client.",
	))

	assert.Equal(t, core.TicketIncident, d.Type)
	matched := strings.Join(d.MatchedFeatures, " ")
	assert.Contains(t, matched, "hint_incident")
}

func TestClassifyDemandeNormale(t *testing.T) {
	d := Classify(email(
		"Nouveau collaborateur",
		"Merci de créer un accès pour le nouveau collaborateur. Cette demande n'est pas pressée.",
	))

	assert.Equal(t, core.TicketDemande, d.Type)
	assert.Equal(t, core.UrgencyNormale, d.Urgency)

	matched := strings.Join(d.MatchedFeatures, " ")
	assert.Contains(t, matched, "hint_demande")
}

func TestClassifyQuestionBasse(t *testing.T) {
	d := Classify(email(
		"Export de données",
		"Bonjour, comment puis-je exporter mes données au format CSV ?",
	))

	assert.Equal(t, core.TicketQuestion, d.Type)
	assert.Equal(t, core.UrgencyBasse, d.Urgency)
}

func TestClassifyFallbackQuestionBasse(t *testing.T) {
	d := Classify(email("", "Bonjour"))
	assert.Equal(t, core.TicketQuestion, d.Type)
	assert.Equal(t, core.UrgencyBasse, d.Urgency)
	assert.Empty(t, d.MatchedFeatures)
}

func TestClassifySubjectTagWinsOverHints(t *testing.T) {
	d := Classify(email("[DEMANDE] Petite question ?", "Pouvez-vous m'aider ?"))
	assert.Equal(t, core.TicketDemande, d.Type)
	assert.Contains(t, d.MatchedFeatures, "tag:[demande]")
}

func TestClassifyUrgencyLevels(t *testing.T) {
	t.Run("strong urgency words raise a demande to haute", func(t *testing.T) {
		d := Classify(email("[DEMANDE] Création de compte", "C'est urgent, merci de faire au plus vite."))
		assert.Equal(t, core.TicketDemande, d.Type)
		assert.Equal(t, core.UrgencyHaute, d.Urgency)
		assert.Contains(t, d.Reasons, "Termes d'urgence forts détectés.")
	})

	t.Run("a calm incident stays normale", func(t *testing.T) {
		d := Classify(email("Connexion VPN", "Impossible de se connecter au VPN depuis hier."))
		assert.Equal(t, core.TicketIncident, d.Type)
		assert.Equal(t, core.UrgencyNormale, d.Urgency)
	})

	t.Run("erreur keyword plus incident bonus reaches haute", func(t *testing.T) {
		d := Classify(email("Erreur à la connexion", "Une erreur s'affiche quand je valide le formulaire."))
		assert.Equal(t, core.TicketIncident, d.Type)
		assert.Equal(t, core.UrgencyHaute, d.Urgency)
		assert.Contains(t, d.Reasons, "Mot-clé 'erreur' détecté.")
	})
}

func TestClassifyDeterminism(t *testing.T) {
	e := email("[INCIDENT] Panne", "Le site est bloqué, erreur 503 en production.")
	first := Classify(e)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Classify(e))
	}
}
