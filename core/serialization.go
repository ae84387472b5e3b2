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
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted types. Written by hand; the field
// order below is the wire format and must not be reordered.
var (
	IDMUS     = idMUS{}
	TicketMUS = ticketMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

type ticketMUS struct{}

func (s ticketMUS) Marshal(t Ticket, bs []byte) (n int) {
	n = IDMUS.Marshal(t.Id, bs)
	n += ord.String.Marshal(t.SourcePath, bs[n:])
	n += ord.String.Marshal(t.From, bs[n:])
	n += varint.Int.Marshal(len(t.Recipients), bs[n:])
	for _, r := range t.Recipients {
		n += ord.String.Marshal(r, bs[n:])
	}
	n += ord.String.Marshal(t.Subject, bs[n:])
	n += ord.String.Marshal(t.Body, bs[n:])
	n += ord.String.Marshal(string(t.Type), bs[n:])
	n += ord.String.Marshal(string(t.Urgency), bs[n:])
	n += marshalTimestamp(t.ReceivedAt, bs[n:])
	n += marshalTimestamp(t.InsertedAt, bs[n:])
	return n
}

func (s ticketMUS) Unmarshal(bs []byte) (t Ticket, n int, err error) {
	var n1 int
	if t.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if t.SourcePath, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	if t.From, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	var count int
	if count, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	if count > 0 {
		t.Recipients = make([]string, count)
		for i := 0; i < count; i++ {
			if t.Recipients[i], n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
				return t, n + n1, err
			}
			n += n1
		}
	}
	if t.Subject, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	if t.Body, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	var str string
	if str, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	t.Type = TicketType(str)
	if str, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	t.Urgency = Urgency(str)
	if t.ReceivedAt, n1, err = unmarshalTimestamp(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	if t.InsertedAt, n1, err = unmarshalTimestamp(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	return t, n, nil
}

func (s ticketMUS) Size(t Ticket) (n int) {
	n = IDMUS.Size(t.Id)
	n += ord.String.Size(t.SourcePath)
	n += ord.String.Size(t.From)
	n += varint.Int.Size(len(t.Recipients))
	for _, r := range t.Recipients {
		n += ord.String.Size(r)
	}
	n += ord.String.Size(t.Subject)
	n += ord.String.Size(t.Body)
	n += ord.String.Size(string(t.Type))
	n += ord.String.Size(string(t.Urgency))
	n += varint.Int64.Size(t.ReceivedAt.UnixMicro())
	n += varint.Int64.Size(t.InsertedAt.UnixMicro())
	return n
}

// zeroUnixMicro is what the zero time.Time serializes to; it marks an
// absent timestamp on the wire.
var zeroUnixMicro = time.Time{}.UnixMicro()

func marshalTimestamp(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTimestamp(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil || v == zeroUnixMicro {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}
