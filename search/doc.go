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


// Package search provides hybrid retrieval over the knowledge base.
//
// The Retriever fuses two candidate streams per query:
//   - Vector similarity hits from the persistent index
//   - Lexical term-overlap scores recomputed over the chunked corpus
//
// Candidates are merged by (content, source) identity, ranked with a
// deterministic composite score, and then passed through guarantee stages
// that force known content classes (numbered procedures, anchor phrases)
// into the top-k when the corpus has them. Given a fixed corpus and query,
// the result list is byte-identical across calls.
//
// A failing vector index never fails a query: the retriever degrades to
// lexical-only candidates, and to a worst-score corpus fallback when
// neither signal matches.
package search
