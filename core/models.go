package core

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so identical inputs always
// map to the same identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Chunk is a single paragraph-sized slice of a knowledge-base document.
// Chunk identity is content+source equality; there are no synthetic IDs.
// The same chunker produces chunks at index-build time and at query time,
// so equal inputs always yield byte-identical chunks.
type Chunk struct {
	Content string
	Source  string
}

// Snippet is a ranked retrieval result handed to upstream callers.
// Score is the fused composite; lower ranks better among equal lexical
// overlap. Callers that render scores use ScoreLabel.
type Snippet struct {
	Content string
	Source  string
	Score   float64
}

// ScoreLabel renders the composite score with six decimal places, the
// format emitted on every external surface (CLI tables, reply citations).
func (s Snippet) ScoreLabel() string {
	return strconv.FormatFloat(s.Score, 'f', 6, 64)
}

// TicketType classifies what kind of request an email carries.
type TicketType string

const (
	// TicketIncident marks a service disruption or error report.
	TicketIncident TicketType = "incident"
	// TicketDemande marks an access or provisioning request.
	TicketDemande TicketType = "demande"
	// TicketQuestion marks a plain question.
	TicketQuestion TicketType = "question"
)

// Urgency grades how quickly a ticket should be handled.
type Urgency string

const (
	UrgencyCritique Urgency = "critique"
	UrgencyHaute    Urgency = "haute"
	UrgencyNormale  Urgency = "normale"
	UrgencyBasse    Urgency = "basse"
)

// Ticket is a persisted record of an ingested support email together with
// its routing decision. Tickets are keyed by the content hash of the raw
// email file, so re-ingesting the same file overwrites rather than
// duplicates.
type Ticket struct {
	Id         ID
	SourcePath string
	From       string
	Recipients []string
	Subject    string
	Body       string
	Type       TicketType
	Urgency    Urgency
	ReceivedAt time.Time // Date header of the email, zero if absent
	InsertedAt time.Time // When the ticket was stored
}
