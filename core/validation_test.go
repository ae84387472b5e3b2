package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTicket() *Ticket {
	return &Ticket{
		Id:         IDFromContent("ticket"),
		SourcePath: "data/emails/sample_incident.eml",
		From:       "alice@example.com",
		Recipients: []string{"support@example.com"},
		Subject:    "[INCIDENT] Erreur 502",
		Body:       "Impossible de se connecter depuis ce matin.",
		Type:       TicketIncident,
		Urgency:    UrgencyCritique,
		InsertedAt: time.Now().Add(-time.Minute),
	}
}

func TestValidateTicket(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, ValidateTicket(validTicket()))
	})

	t.Run("nil", func(t *testing.T) {
		err := ValidateTicket(nil)
		assert.ErrorIs(t, err, ErrInvalidTicket)
	})

	t.Run("missing source path", func(t *testing.T) {
		tk := validTicket()
		tk.SourcePath = ""
		assert.ErrorIs(t, ValidateTicket(tk), ErrEmptySourcePath)
	})

	t.Run("empty subject and body", func(t *testing.T) {
		tk := validTicket()
		tk.Subject = ""
		tk.Body = ""
		assert.ErrorIs(t, ValidateTicket(tk), ErrEmptyTicketContent)
	})

	t.Run("subject only is enough", func(t *testing.T) {
		tk := validTicket()
		tk.Body = ""
		assert.NoError(t, ValidateTicket(tk))
	})

	t.Run("unknown type", func(t *testing.T) {
		tk := validTicket()
		tk.Type = TicketType("spam")
		assert.ErrorIs(t, ValidateTicket(tk), ErrInvalidTicketType)
	})

	t.Run("unknown urgency", func(t *testing.T) {
		tk := validTicket()
		tk.Urgency = Urgency("extreme")
		assert.ErrorIs(t, ValidateTicket(tk), ErrInvalidUrgency)
	})

	t.Run("future inserted at", func(t *testing.T) {
		tk := validTicket()
		tk.InsertedAt = time.Now().Add(time.Hour)
		assert.ErrorIs(t, ValidateTicket(tk), ErrInvalidTimestamp)
	})

	t.Run("zero inserted at tolerated", func(t *testing.T) {
		tk := validTicket()
		tk.InsertedAt = time.Time{}
		assert.NoError(t, ValidateTicket(tk))
	})
}

func TestValidateTicketType(t *testing.T) {
	for _, tt := range []TicketType{TicketIncident, TicketDemande, TicketQuestion} {
		assert.NoError(t, ValidateTicketType(tt))
	}
	assert.Error(t, ValidateTicketType(TicketType("")))
}

func TestValidateUrgency(t *testing.T) {
	for _, u := range []Urgency{UrgencyCritique, UrgencyHaute, UrgencyNormale, UrgencyBasse} {
		assert.NoError(t, ValidateUrgency(u))
	}
	assert.Error(t, ValidateUrgency(Urgency("")))
}
