package ecs

// Commands buffers work that must wait until every system in the frame has
// run, such as event notifications that should observe the final state.
type Commands struct {
	writes []func(*Storage)
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run when the frame is flushed
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// ReplaceSingleton queues an overwrite of the stored singleton with value
func (c *Commands) ReplaceSingleton(value any) {
	c.writes = append(c.writes, func(s *Storage) { s.AddSingleton(value) })
}

// Len is the number of pending commands
func (c *Commands) Len() int {
	return len(c.writes) + len(c.defers)
}

// Flush applies singleton writes, then runs deferred functions in queue
// order, and resets the buffer.
func (c *Commands) Flush(storage *Storage) {
	for _, write := range c.writes {
		write(storage)
	}
	for _, fn := range c.defers {
		fn()
	}

	c.writes = c.writes[:0]
	c.defers = c.defers[:0]
}
