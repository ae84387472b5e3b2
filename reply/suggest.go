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


package reply

import (
	"fmt"
	netmail "net/mail"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/soutienhq/soutien/core"
	"github.com/soutienhq/soutien/mail"
)

const (
	maxSteps = 4
	maxRefs  = 5

	securityNote = "Sécurité : Ne partagez jamais de mot de passe en clair. " +
		"Ne communiquez pas d'informations sensibles (clés, tokens) par e-mail."

	signature = "\nCordialement,\nL'équipe Support"
)

var stepLineRe = regexp.MustCompile(`^\s*(\d+)\.\s+(.*)$`)

// Suggest drafts a complete reply for the email: salutation, an opening
// matched to the routing decision, numbered steps lifted from the
// snippets (or a generic plan), detected references, the security note
// and a deduplicated sources block.
func Suggest(email *mail.Email, ctx Context) string {
	subject := email.Subject
	if subject == "" {
		subject = "(sans objet)"
	}

	opening := salutation(email.From) + "\n" + openingLine(ctx)

	steps := stepsFromSnippets(ctx.Snippets, ctx.Decision.Type)
	numbered := make([]string, 0, len(steps))
	for i, s := range steps {
		numbered = append(numbered, fmt.Sprintf("%d. %s", i+1, s))
	}

	var refs []string
	if len(ctx.IDs) > 0 {
		refs = append(refs, "Références détectées : "+strings.Join(capped(ctx.IDs, maxRefs), ", "))
	}
	if len(ctx.URLs) > 0 {
		refs = append(refs, "Liens mentionnés : "+strings.Join(capped(ctx.URLs, maxRefs), ", "))
	}

	sections := []string{
		opening,
		strings.Join(numbered, "\n"),
		strings.Join(refs, "\n"),
		securityNote,
		sourcesBlock(ctx.Snippets),
		signature,
	}

	var body []string
	for _, s := range sections {
		if s != "" {
			body = append(body, s)
		}
	}
	return fmt.Sprintf("Objet: RE: %s\n\n%s\n", subject, strings.Join(body, "\n"))
}

// salutation greets by the display name when the From header carries
// one, and falls back to a bare "Bonjour,".
func salutation(from string) string {
	if from == "" {
		return "Bonjour,"
	}
	addr, err := netmail.ParseAddress(from)
	if err != nil || addr.Name == "" {
		return "Bonjour,"
	}
	first := strings.Fields(addr.Name)[0]
	return "Bonjour " + first + ","
}

func openingLine(ctx Context) string {
	switch ctx.Decision.Type {
	case core.TicketIncident:
		if ctx.Decision.Urgency == core.UrgencyCritique || ctx.Decision.Urgency == core.UrgencyHaute {
			return "Nous avons bien pris en compte votre incident et le traitons en priorité."
		}
		return "Nous avons bien pris en compte votre incident. Voici notre plan d'action."
	case core.TicketDemande:
		return "Merci pour votre demande. Voici la procédure envisagée :"
	default:
		return "Merci pour votre message. Voici des éléments de réponse :"
	}
}

// stepsFromSnippets lifts numbered lines out of the snippets, in snippet
// order, capped at maxSteps. Without any, a generic plan for the ticket
// type fills in.
func stepsFromSnippets(snippets []core.Snippet, fallback core.TicketType) []string {
	var steps []string
	for _, sn := range snippets {
		for _, line := range strings.Split(sn.Content, "\n") {
			if m := stepLineRe.FindStringSubmatch(line); m != nil {
				steps = append(steps, strings.TrimSpace(m[2]))
			}
		}
		if len(steps) >= maxSteps {
			break
		}
	}
	if len(steps) > 0 {
		return capped(steps, maxSteps)
	}
	return fallbackSteps(fallback)
}

func fallbackSteps(t core.TicketType) []string {
	switch t {
	case core.TicketIncident:
		return []string{
			"Identifier le périmètre de l'incident (utilisateur impacté, URL, horodatage).",
			"Reproduire l'erreur et collecter les logs pertinents.",
			"Appliquer la procédure de remédiation documentée si disponible.",
			"Escalader au niveau approprié si le blocage persiste.",
		}
	case core.TicketDemande:
		return []string{
			"Vérifier la complétude de la demande et son éligibilité.",
			"Appliquer la procédure décrite dans la base de connaissances.",
			"Informer le demandeur des délais et validations nécessaires.",
			"Confirmer la bonne exécution et clore la demande.",
		}
	default:
		return []string{
			"Qualifier la question et vérifier la documentation existante.",
			"Fournir l'explication ou le lien vers la procédure adaptée.",
			"Proposer, si nécessaire, un rendez-vous court pour clarifier.",
		}
	}
}

// SourcesBlock renders the deduplicated snippet source files as a French
// citation list. It is shared with the no-email conversation path.
func SourcesBlock(snippets []core.Snippet) string {
	return sourcesBlock(snippets)
}

func sourcesBlock(snippets []core.Snippet) string {
	if len(snippets) == 0 {
		return "Sources: (aucune référence trouvée)"
	}
	seen := make(map[string]struct{})
	var lines []string
	for _, sn := range snippets {
		name := filepath.Base(sn.Source)
		if name == "." || name == "" {
			name = "(inconnu)"
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		lines = append(lines, "- "+name)
	}
	return "Sources:\n" + strings.Join(lines, "\n")
}

func capped(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
