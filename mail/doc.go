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


// Package mail loads support messages from local files.
//
// Two on-disk formats are supported: RFC 5322 .eml files, and plain .txt
// files with an optional "Header: value" preamble separated from the body
// by a blank line. Parsed messages get a stable identifier derived from
// the file contents, so re-ingesting a folder is idempotent.
package mail
