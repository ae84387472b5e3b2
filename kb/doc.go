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


// Package kb reads the knowledge-base corpus and splits documents into
// bounded paragraph chunks.
//
// Chunking is deterministic: the exact same byte sequence of chunks is
// produced on every pass over the same source files. Both the vector index
// builder and the query-time lexical scorer go through this package, which
// is what makes (content, source) a reliable merge key downstream.
package kb
