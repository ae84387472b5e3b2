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


package core

import (
	"fmt"
	"time"
)

// ValidateTicket validates a Ticket according to domain rules.
//
// Validation rules:
//   - SourcePath must not be empty
//   - Subject and Body must not both be empty
//   - Type and Urgency must be known values
//   - InsertedAt must not be in the future
//
// NOT validated:
//   - ReceivedAt (emails may legitimately carry no Date header)
//   - Recipients (a .txt email may omit To)
func ValidateTicket(ticket *Ticket) error {
	if ticket == nil {
		return fmt.Errorf("%w: ticket is nil", ErrInvalidTicket)
	}

	if ticket.SourcePath == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTicket, ErrEmptySourcePath)
	}

	if ticket.Subject == "" && ticket.Body == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTicket, ErrEmptyTicketContent)
	}

	if err := ValidateTicketType(ticket.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTicket, err)
	}

	if err := ValidateUrgency(ticket.Urgency); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTicket, err)
	}

	if !ticket.InsertedAt.IsZero() && !IsValidTimestamp(ticket.InsertedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidTicket, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateTicketType validates that a TicketType has a known value.
func ValidateTicketType(t TicketType) error {
	switch t {
	case TicketIncident, TicketDemande, TicketQuestion:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidTicketType, t)
}

// ValidateUrgency validates that an Urgency has a known value.
func ValidateUrgency(u Urgency) error {
	switch u {
	case UrgencyCritique, UrgencyHaute, UrgencyNormale, UrgencyBasse:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidUrgency, u)
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
