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


package mail

import (
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Email is a normalized local support message.
type Email struct {
	// ID is a stable identifier derived from the raw file contents.
	ID string

	// Path is the source file the message was read from.
	Path string

	From        string
	To          []string
	CC          []string
	BCC         []string
	Subject     string
	Date        time.Time
	Body        string
	Attachments []string
}

// stableID hashes the raw file bytes into a short hex identifier. The
// same file always maps to the same ID regardless of where it lives.
func stableID(raw []byte) string {
	h, _ := blake2b.New(6, nil)
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil))
}
