package storage

import (
	"context"

	"github.com/soutienhq/soutien/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// TicketRepository provides operations for managing support tickets.
type TicketRepository interface {
	Repository

	// AddTickets stores one or more tickets.
	// Tickets with Id=0 get a content-based ID from their source path and
	// body, so re-ingesting the same email overwrites its earlier ticket.
	// Sets InsertedAt if not already set.
	// Returns the tickets with IDs and timestamps populated.
	AddTickets(ctx context.Context, tickets ...*core.Ticket) ([]*core.Ticket, error)

	// GetTicket retrieves a single ticket by ID.
	// Returns ErrNotFound if the ticket doesn't exist.
	GetTicket(ctx context.Context, id core.ID) (*core.Ticket, error)

	// GetTickets retrieves multiple tickets by their IDs.
	// Returns only the tickets that exist (no error for missing tickets).
	GetTickets(ctx context.Context, ids ...core.ID) ([]*core.Ticket, error)

	// ListTickets returns every stored ticket, ordered by InsertedAt then ID.
	ListTickets(ctx context.Context) ([]*core.Ticket, error)

	// ListTicketsByType returns the tickets of one type, ordered by
	// InsertedAt then ID.
	ListTicketsByType(ctx context.Context, ticketType core.TicketType) ([]*core.Ticket, error)

	// ListTicketsByUrgency returns the tickets of one urgency, ordered by
	// InsertedAt then ID.
	ListTicketsByUrgency(ctx context.Context, urgency core.Urgency) ([]*core.Ticket, error)

	// DeleteTickets removes tickets by their IDs.
	// Returns ErrNotFound if any ticket doesn't exist.
	DeleteTickets(ctx context.Context, ids ...core.ID) error

	// CountTickets returns the number of stored tickets.
	CountTickets(ctx context.Context) (int, error)
}
