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


// Package index provides the persistent vector similarity index over the
// knowledge base.
//
// The index is backed by chromem-go, an embeddable pure-Go vector store
// persisted to a directory. The retrieval engine only depends on the Store
// interface and its "lower distance is better" contract; how similarity is
// computed is opaque to ranking.
//
// Rebuilds are wholesale: the Builder writes a complete new index into a
// fresh sibling directory and then swaps it into place, so a concurrent
// reader never observes a half-populated index. There is no incremental
// update path.
package index
