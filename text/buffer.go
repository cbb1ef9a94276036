// Package text provides the text buffer resource type owned by the pointer
// library. Buffer implements refptr.Dropper, so the last strong pointer to
// release a buffer destroys it; any use after destruction panics loudly
// instead of reading freed memory silently.
package text

// Buffer is a mutable text resource.
type Buffer struct {
	content string
	dead    bool
}

// New allocates a buffer holding s.
func New(s string) *Buffer {
	return &Buffer{content: s}
}

// String returns the buffer's content.
func (b *Buffer) String() string {
	b.check()
	return b.content
}

// Set replaces the buffer's content.
func (b *Buffer) Set(s string) {
	b.check()
	b.content = s
}

// Append appends s to the buffer's content.
func (b *Buffer) Append(s string) {
	b.check()
	b.content += s
}

// Len returns the content length in bytes.
func (b *Buffer) Len() int {
	b.check()
	return len(b.content)
}

// Dead reports whether the buffer has been destroyed.
func (b *Buffer) Dead() bool {
	return b.dead
}

// Drop destroys the buffer. Implements refptr.Dropper; called by the pointer
// library when the last owner releases. Dropping twice panics, surfacing a
// double-free in the counting logic.
func (b *Buffer) Drop() {
	if b.dead {
		panic("text: buffer dropped twice")
	}
	b.dead = true
	b.content = ""
}

func (b *Buffer) check() {
	if b.dead {
		panic("text: use of destroyed buffer")
	}
}
