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

import "errors"

// Domain validation errors
var (
	// ErrInvalidTicket indicates a Ticket failed validation.
	ErrInvalidTicket = errors.New("invalid ticket")

	// ErrEmptyTicketContent indicates both Subject and Body are empty.
	ErrEmptyTicketContent = errors.New("ticket subject and body cannot both be empty")

	// ErrEmptySourcePath indicates the SourcePath field is empty.
	ErrEmptySourcePath = errors.New("ticket source path cannot be empty")

	// ErrInvalidTicketType indicates an unknown TicketType value.
	ErrInvalidTicketType = errors.New("invalid ticket type")

	// ErrInvalidUrgency indicates an unknown Urgency value.
	ErrInvalidUrgency = errors.New("invalid urgency")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
