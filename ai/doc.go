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


// Package ai provides abstractions for the embedding services used by the
// vector index.
//
// The core retrieval engine never talks to an embedding model directly; it
// depends on the Embedder interface, so implementations can be swapped
// without touching ranking logic.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//     (Ollama, LocalAI, vLLM, or the hosted service)
//   - ai/mock: Deterministic test doubles for unit testing without a model
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return
// interface types to enforce abstraction. Test utility constructors
// (mock.NewMockEmbedder) return concrete types so tests can inject
// behavior and assert call counts.
package ai
