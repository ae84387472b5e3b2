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


package badger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/soutienhq/soutien/core"
	"github.com/soutienhq/soutien/storage"
)

// TicketRepository implements storage.TicketRepository for BadgerDB.
type TicketRepository struct {
	backend *Backend
}

var _ storage.TicketRepository = (*TicketRepository)(nil)

// NewTicketRepository creates a new TicketRepository.
func NewTicketRepository(backend *Backend) (storage.TicketRepository, error) {
	return &TicketRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *TicketRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *TicketRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddTickets stores one or more tickets. IDs are content-based, derived
// from the source path and body, so the same email file always maps to
// the same ticket.
func (r *TicketRepository) AddTickets(ctx context.Context, tickets ...*core.Ticket) ([]*core.Ticket, error) {
	for _, ticket := range tickets {
		if ticket.Id == 0 {
			ticket.Id = core.IDFromContent(ticket.SourcePath + "\x00" + ticket.Body)
		}
		if err := core.ValidateTicket(ticket); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, ticket := range tickets {
			if ticket.InsertedAt.IsZero() {
				ticket.InsertedAt = time.Now().UTC()
			}

			// A re-ingested ticket may have changed type or urgency:
			// drop the old index entries first.
			key := makeTicketKey(ticket.Id)
			old, err := r.readTicket(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				if err := r.deleteIndexEntries(tx, old); err != nil {
					return err
				}
			}

			if err := tx.Set(key, storage.MarshalTicket(ticket)); err != nil {
				return err
			}
			if err := tx.Set(makeTicketTypeKey(ticket.Type, ticket.Id), storage.MarshalID(ticket.Id)); err != nil {
				return err
			}
			if err := tx.Set(makeTicketUrgencyKey(ticket.Urgency, ticket.Id), storage.MarshalID(ticket.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return tickets, err
}

// GetTicket retrieves a single ticket by ID.
func (r *TicketRepository) GetTicket(ctx context.Context, id core.ID) (*core.Ticket, error) {
	var ticket *core.Ticket
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		ticket, err = r.readTicket(tx, makeTicketKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, storage.ErrNotFound
	}
	return ticket, nil
}

// GetTickets retrieves multiple tickets, skipping missing IDs.
func (r *TicketRepository) GetTickets(ctx context.Context, ids ...core.ID) ([]*core.Ticket, error) {
	var tickets []*core.Ticket
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			ticket, err := r.readTicket(tx, makeTicketKey(id))
			if err != nil {
				return err
			}
			if ticket != nil {
				tickets = append(tickets, ticket)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// ListTickets returns every stored ticket, ordered by InsertedAt then ID.
func (r *TicketRepository) ListTickets(ctx context.Context) ([]*core.Ticket, error) {
	var tickets []*core.Ticket
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(ticketPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var ticket *core.Ticket
			err := iter.Item().Value(func(val []byte) error {
				var err error
				ticket, err = storage.UnmarshalTicket(val)
				return err
			})
			if err != nil {
				return err
			}
			tickets = append(tickets, ticket)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sortTickets(tickets)
	return tickets, nil
}

// ListTicketsByType returns the tickets of one type via the type index.
func (r *TicketRepository) ListTicketsByType(ctx context.Context, ticketType core.TicketType) ([]*core.Ticket, error) {
	if err := core.ValidateTicketType(ticketType); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidQuery, err)
	}
	ids, err := r.indexedIDs(makePartialTicketTypeKey(ticketType))
	if err != nil {
		return nil, err
	}
	tickets, err := r.GetTickets(ctx, ids...)
	if err != nil {
		return nil, err
	}
	sortTickets(tickets)
	return tickets, nil
}

// ListTicketsByUrgency returns the tickets of one urgency via the urgency index.
func (r *TicketRepository) ListTicketsByUrgency(ctx context.Context, urgency core.Urgency) ([]*core.Ticket, error) {
	if err := core.ValidateUrgency(urgency); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidQuery, err)
	}
	ids, err := r.indexedIDs(makePartialTicketUrgencyKey(urgency))
	if err != nil {
		return nil, err
	}
	tickets, err := r.GetTickets(ctx, ids...)
	if err != nil {
		return nil, err
	}
	sortTickets(tickets)
	return tickets, nil
}

// DeleteTickets removes tickets and their index entries.
func (r *TicketRepository) DeleteTickets(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTicketKey(id)
			ticket, err := r.readTicket(tx, key)
			if err != nil {
				return err
			}
			if ticket == nil {
				return storage.ErrNotFound
			}
			if err := r.deleteIndexEntries(tx, ticket); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// CountTickets returns the number of stored tickets.
func (r *TicketRepository) CountTickets(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(ticketPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readTicket reads a ticket by key, returning nil when absent.
func (r *TicketRepository) readTicket(tx *badger.Txn, key []byte) (*core.Ticket, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ticket *core.Ticket
	err = item.Value(func(val []byte) error {
		var err error
		ticket, err = storage.UnmarshalTicket(val)
		return err
	})
	return ticket, err
}

func (r *TicketRepository) deleteIndexEntries(tx *badger.Txn, ticket *core.Ticket) error {
	if err := tx.Delete(makeTicketTypeKey(ticket.Type, ticket.Id)); err != nil {
		return err
	}
	return tx.Delete(makeTicketUrgencyKey(ticket.Urgency, ticket.Id))
}

// indexedIDs collects the ticket IDs stored under an index prefix.
func (r *TicketRepository) indexedIDs(prefix []byte) ([]core.ID, error) {
	var ids []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				id, err := storage.UnmarshalID(val)
				if err != nil {
					return err
				}
				ids = append(ids, id)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func sortTickets(tickets []*core.Ticket) {
	slices.SortFunc(tickets, func(a, b *core.Ticket) int {
		if !a.InsertedAt.Equal(b.InsertedAt) {
			if a.InsertedAt.Before(b.InsertedAt) {
				return -1
			}
			return 1
		}
		switch {
		case a.Id < b.Id:
			return -1
		case a.Id > b.Id:
			return 1
		default:
			return 0
		}
	})
}
