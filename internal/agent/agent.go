package agent

import "context"

type EventType string

const (
	EventToken      EventType = "token"
	EventToolCall   EventType = "tool_call"
	EventToolResult EventType = "tool_result"
	EventDone       EventType = "done"
	EventError      EventType = "error"
)

type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

// Runner is the capability the CLI depends on: hand a free-text request
// to a reasoning loop, get the final answer back. The concrete loop is a
// pluggable collaborator.
type Runner interface {
	Run(ctx context.Context, request string, emit func(Event)) (string, error)
}
