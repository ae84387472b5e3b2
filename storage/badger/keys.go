package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/soutienhq/soutien/core"
)

// Key prefixes for different data types
const (
	ticketPrefix        = "tickrec"
	ticketTypePrefix    = "tickty"
	ticketUrgencyPrefix = "tickurg"
)

// makeTicketKey generates a key for a ticket by ID.
func makeTicketKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", ticketPrefix, id))
}

// makeTicketTypeKey generates a composite key for the type index.
// Format: prefix:type:id
func makeTicketTypeKey(ticketType core.TicketType, id core.ID) []byte {
	prefix := ticketTypePrefix + ":" + string(ticketType) + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// BigEndian so lexicographic iteration follows ID order
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialTicketTypeKey generates the iteration prefix for one type.
func makePartialTicketTypeKey(ticketType core.TicketType) []byte {
	return []byte(ticketTypePrefix + ":" + string(ticketType) + ":")
}

// makeTicketUrgencyKey generates a composite key for the urgency index.
// Format: prefix:urgency:id
func makeTicketUrgencyKey(urgency core.Urgency, id core.ID) []byte {
	prefix := ticketUrgencyPrefix + ":" + string(urgency) + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialTicketUrgencyKey generates the iteration prefix for one urgency.
func makePartialTicketUrgencyKey(urgency core.Urgency) []byte {
	return []byte(ticketUrgencyPrefix + ":" + string(urgency) + ":")
}
