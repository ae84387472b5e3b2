// Package mock provides test double implementations of the ai service
// interfaces.
//
// The mocks allow tests to run without an embedding service and produce
// deterministic vectors: the same text always hashes to the same
// embedding, so similarity rankings are stable across runs.
package mock
