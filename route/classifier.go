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
	"regexp"
	"strings"

	"github.com/soutienhq/soutien/core"
	"github.com/soutienhq/soutien/mail"
)

// Decision is the outcome of classifying one email.
type Decision struct {
	Type    core.TicketType
	Urgency core.Urgency

	// MatchedFeatures lists every rule that fired, as "family:pattern".
	MatchedFeatures []string

	// Reasons are short French sentences explaining the decision.
	Reasons []string
}

// hint pairs a compiled rule with the label recorded in MatchedFeatures.
type hint struct {
	re    *regexp.Regexp
	label string
}

func mustHints(patterns ...string) []hint {
	hints := make([]hint, 0, len(patterns))
	for _, p := range patterns {
		hints = append(hints, hint{re: regexp.MustCompile(p), label: p})
	}
	return hints
}

// The rule tables run against the lower-cased subject+body. French
// accented letters sit outside \w for the regexp engine, so \b never
// holds next to an accent: accented suffixes stay inside explicit
// groups, and an accented leading letter gets its own alternative
// without the leading \b.
var (
	incidentHints = mustHints(
		`\bincident\b`, `\bpanne\b`, `\bbug\b`, `\berreur\b`,
		`\bimpossible\b`, `ne\s+(?:marche|fonctionne)\s+pas`,
		`\bbloqu(?:e|é|ée|ant|ante)?\b`, `\bechec\b|échec\b`,
	)
	demandeHints = mustHints(
		`\bcr[ée]er?\b`, `\bcr[ée]ation\b`, `\bajout(?:er)?\b`,
		`\bacc[eè]s\b`, `\bdemande\b`, `\bactiver?\b`, `\bsuppression\b`,
	)
	questionHints = mustHints(
		`\?`, `\bpouvez[- ]?vous\b`, `\bcomment\b`, `\bpourquoi\b`, `\bquelle?s?\b`,
	)

	urgencyStrong = mustHints(
		`\burgent(?:e|es)?\b`, `\burgence\b`, `\basap\b`, `\bimm[ée]diat(?:e|ement)?\b`,
	)
	urgencyBlocking = mustHints(
		`\bcritique\b`, `\bbloqu(?:e|é|ée|ant|ante)?\b`, `\bproduction\b`,
		`\b(?:en )?panne\b`, `\bdown\b`,
	)

	httpErrorRe = regexp.MustCompile(`\b[45]\d\d\b`)
	erreurRe    = regexp.MustCompile(`\berreur\b`)
)

// Classify derives a ticket type and urgency for an email. The rules are
// pure string matching over the subject and body, so the same email
// always routes the same way.
func Classify(email *mail.Email) Decision {
	text := strings.ToLower(strings.TrimSpace(email.Subject + " " + email.Body))
	subject := strings.ToLower(email.Subject)

	var features, reasons []string

	var ticketType core.TicketType
	switch {
	case strings.Contains(subject, "[incident]"):
		ticketType = core.TicketIncident
		features = append(features, tagFeatures(email.Subject, "[incident]")...)
		reasons = append(reasons, "Sujet contient [INCIDENT].")
	case strings.Contains(subject, "[demande]"):
		ticketType = core.TicketDemande
		features = append(features, tagFeatures(email.Subject, "[demande]")...)
		reasons = append(reasons, "Sujet contient [DEMANDE].")
	default:
		inc := matchAny(incidentHints, text, "hint_incident", &features)
		dem := matchAny(demandeHints, text, "hint_demande", &features)
		que := matchAny(questionHints, text, "hint_question", &features)
		switch {
		case inc > dem && inc >= que:
			ticketType = core.TicketIncident
		case dem > inc && dem >= que:
			ticketType = core.TicketDemande
		default:
			ticketType = core.TicketQuestion
		}
	}

	score := scoreUrgency(text, &features, &reasons)
	if ticketType == core.TicketIncident {
		score++
	}

	var urgency core.Urgency
	switch {
	case score >= 4:
		urgency = core.UrgencyCritique
	case score >= 2:
		urgency = core.UrgencyHaute
	case ticketType == core.TicketQuestion && score == 0:
		urgency = core.UrgencyBasse
	default:
		urgency = core.UrgencyNormale
	}

	return Decision{
		Type:            ticketType,
		Urgency:         urgency,
		MatchedFeatures: features,
		Reasons:         reasons,
	}
}

// tagFeatures records a subject tag both as written and in its
// normalized lower-case form, so the audit trail keeps the original
// casing.
func tagFeatures(subject, tag string) []string {
	idx := strings.Index(strings.ToLower(subject), tag)
	raw := subject[idx : idx+len(tag)]
	if raw == tag {
		return []string{"tag:" + tag}
	}
	return []string{"tag:" + raw, "tag:" + tag}
}

func matchAny(hints []hint, text, family string, features *[]string) int {
	count := 0
	for _, h := range hints {
		if h.re.MatchString(text) {
			*features = append(*features, family+":"+h.label)
			count++
		}
	}
	return count
}

func scoreUrgency(text string, features, reasons *[]string) int {
	score := 0
	if n := matchAny(urgencyStrong, text, "urg_strong", features); n > 0 {
		score += 2 * n
		*reasons = append(*reasons, "Termes d'urgence forts détectés.")
	}
	if n := matchAny(urgencyBlocking, text, "urg_block", features); n > 0 {
		score += 2 * n
		*reasons = append(*reasons, "Termes bloquants/production détectés.")
	}
	if httpErrorRe.MatchString(text) {
		*features = append(*features, "http_error")
		*reasons = append(*reasons, "Code HTTP d'erreur détecté.")
		score++
	}
	if erreurRe.MatchString(text) {
		*features = append(*features, "kw:erreur")
		*reasons = append(*reasons, "Mot-clé 'erreur' détecté.")
		score++
	}
	return score
}
