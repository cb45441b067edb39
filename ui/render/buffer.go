package render

import (
	"html/template"
	"sync"
)

// Buffer is an in-memory preview container
type Buffer struct {
	mu      sync.Mutex
	content template.HTML
}

// NewBuffer creates an empty container
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Replace swaps the whole content of the container
func (b *Buffer) Replace(content template.HTML) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = content
	return nil
}

// Content returns the current content
func (b *Buffer) Content() template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content
}
