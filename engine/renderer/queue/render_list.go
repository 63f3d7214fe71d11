package queue

import (
	"errors"
	"fmt"
)

// ErrListFull is returned when a command is registered into a full RenderList.
var ErrListFull = errors.New("queue: render list full")

// Command is one unit of work executed by a RenderQueue, normally a draw call.
type Command interface {
	// Execute issues the command's GPU work using the queue's binder and matrix stack.
	Execute(q RenderQueue)
}

// RenderList is an ordered, fixed-capacity list of commands. Commands run in registration order.
type RenderList struct {
	commands []Command
}

// NewRenderList creates an empty list holding at most capacity commands.
//
// Parameters:
//   - capacity: the maximum number of commands
//
// Returns:
//   - *RenderList: the list
func NewRenderList(capacity int) *RenderList {
	return &RenderList{commands: make([]Command, 0, max(capacity, 1))}
}

// Register appends cmd to the list.
//
// Parameters:
//   - cmd: the command
//
// Returns:
//   - error: ErrListFull if the list is at capacity
func (l *RenderList) Register(cmd Command) error {
	if len(l.commands) == cap(l.commands) {
		return fmt.Errorf("%w: capacity %d", ErrListFull, cap(l.commands))
	}
	l.commands = append(l.commands, cmd)
	return nil
}

// ExecRender executes every command in registration order, then empties the list without
// releasing its storage.
//
// Parameters:
//   - q: the queue passed to each command
func (l *RenderList) ExecRender(q RenderQueue) {
	for i, cmd := range l.commands {
		cmd.Execute(q)
		l.commands[i] = nil
	}
	l.commands = l.commands[:0]
}

// Len returns the number of registered commands.
func (l *RenderList) Len() int {
	return len(l.commands)
}

// Cap returns the capacity of the list.
func (l *RenderList) Cap() int {
	return cap(l.commands)
}
