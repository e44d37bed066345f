package gist

import "context"

type task func(ctx context.Context) error

// entry is a queued task bound to the file it edits.
type entry struct {
	name string
	run  task
}

// batch is a FIFO of deferred tasks run one at a time.
// next marks the first task that has not completed yet, so a drain halted by a
// failure resumes at the failed task instead of re-running finished ones.
type batch struct {
	entries []entry
	next    int
}

func newBatch() *batch {
	return &batch{}
}

func (b *batch) push(name string, t task) {
	b.entries = append(b.entries, entry{name: name, run: t})
}

func (b *batch) pending() int {
	return len(b.entries) - b.next
}

// drop removes the pending tasks of name; completed ones are kept.
func (b *batch) drop(name string) {
	kept := b.entries[:b.next]
	for _, e := range b.entries[b.next:] {
		if e.name != name {
			kept = append(kept, e)
		}
	}
	b.entries = kept
}

// end runs every pending task in order and stops at the first failure.
func (b *batch) end(ctx context.Context) error {
	for b.next < len(b.entries) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.entries[b.next].run(ctx); err != nil {
			return err
		}
		b.next++
	}
	return nil
}
