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


package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soutienhq/soutien/core"
)

func TestMarshalID(t *testing.T) {
	for _, id := range []core.ID{0, 1, 42, core.IDFromContent("ticket")} {
		data := MarshalID(id)
		got, err := UnmarshalID(data)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestMarshalTicket(t *testing.T) {
	received := time.Date(2025, 9, 1, 9, 30, 0, 0, time.UTC)
	inserted := time.Date(2025, 9, 1, 9, 31, 12, 500_000_000, time.UTC)

	ticket := &core.Ticket{
		Id:         core.IDFromContent("emails/sample_incident.eml"),
		SourcePath: "emails/sample_incident.eml",
		From:       "Alice Martin <alice@example.com>",
		Recipients: []string{"support@soutien.fr", "ops@soutien.fr"},
		Subject:    "[INCIDENT] Erreur 502 en production",
		Body:       "Nous voyons une erreur 502 depuis ce matin.",
		Type:       core.TicketIncident,
		Urgency:    core.UrgencyCritique,
		ReceivedAt: received,
		InsertedAt: inserted,
	}

	data := MarshalTicket(ticket)
	got, err := UnmarshalTicket(data)
	require.NoError(t, err)
	assert.Equal(t, ticket, got)
}

func TestMarshalTicketZeroTimestamps(t *testing.T) {
	ticket := &core.Ticket{
		Id:         1,
		SourcePath: "emails/question.txt",
		Subject:    "Question",
		Body:       "Comment faire ?",
		Type:       core.TicketQuestion,
		Urgency:    core.UrgencyBasse,
	}

	got, err := UnmarshalTicket(MarshalTicket(ticket))
	require.NoError(t, err)
	assert.True(t, got.ReceivedAt.IsZero())
	assert.True(t, got.InsertedAt.IsZero())
	assert.Nil(t, got.Recipients)
}

func TestUnmarshalTicketTruncated(t *testing.T) {
	ticket := &core.Ticket{Id: 7, SourcePath: "x", Body: "corps", Type: core.TicketQuestion, Urgency: core.UrgencyBasse}
	data := MarshalTicket(ticket)

	_, err := UnmarshalTicket(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestUnmarshalIDEmpty(t *testing.T) {
	_, err := UnmarshalID(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
