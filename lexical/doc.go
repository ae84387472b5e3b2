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


// Package lexical provides French lexical normalization and term-overlap
// scoring for knowledge-base retrieval.
//
// Normalization is a heuristic pipeline: lowercase tokenization on letter
// and digit runs, accent stripping via Unicode decomposition, and
// longest-first suffix stripping over a fixed table of French
// morphological endings. It is intentionally not a dictionary stemmer;
// false positives and negatives are acceptable at knowledge-base scale.
//
// The same normalization serves index-time and query-time scoring so that
// overlap counts are symmetric.
package lexical
