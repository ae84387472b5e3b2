package agent

import "errors"

var (
	// ErrRetrieverRequired is returned when a graph is built without a retriever.
	ErrRetrieverRequired = errors.New("retriever required")

	// ErrUnknownNode is returned when a turn reaches a node that is not wired.
	ErrUnknownNode = errors.New("unknown graph node")
)
