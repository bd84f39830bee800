// Package pkg provides small utilities for perlver.
package pkg

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// FileSpill buffers items of type T on disk instead of in memory, so batch
// scans over large source trees keep a flat footprint. Appends may come from
// multiple goroutines; reads see every item appended before the read began.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	Get(index uint64) (T, error)
	Range(fn func(index uint64, item T) error) error
	Close() error
}

type fileSpill[T any] struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	encoder *gob.Encoder
	length  uint64
}

// NewFileSpill creates a spill backed by a fresh temporary file. The caller
// owns the file and removes it through Close.
func NewFileSpill[T any]() (FileSpill[T], error) {
	file, err := os.CreateTemp("", "perlver-spill-*.gob")
	if err != nil {
		return nil, fmt.Errorf("create spill file: %w", err)
	}

	return &fileSpill[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Append encodes one item at the end of the spill.
func (f *fileSpill[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("spill encode failed", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("encode item: %w", err)
	}

	f.length++

	return nil
}

// Len returns the number of items appended so far.
func (f *fileSpill[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

// Path returns the backing file path.
func (f *fileSpill[T]) Path() string {
	return f.path
}

// Get decodes the item at index. Access is sequential under the hood, so
// Range is preferred for bulk reads.
func (f *fileSpill[T]) Get(index uint64) (T, error) {
	var item T

	f.mu.Lock()
	defer f.mu.Unlock()

	if index >= f.length {
		return item, fmt.Errorf("index %d out of bounds (length %d)", index, f.length)
	}

	err := f.decodeUpTo(index+1, func(_ uint64, decoded T) error {
		item = decoded
		return nil
	})

	return item, err
}

// Range decodes every item in append order and hands it to fn. A non-nil
// error from fn stops the iteration.
func (f *fileSpill[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.decodeUpTo(f.length, fn)
}

func (f *fileSpill[T]) decodeUpTo(count uint64, fn func(index uint64, item T) error) error {
	reader, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("open spill file: %w", err)
	}

	defer func() { _ = reader.Close() }()

	decoder := gob.NewDecoder(reader)

	for i := uint64(0); i < count; i++ {
		var item T
		if err := decoder.Decode(&item); err != nil {
			slog.Error("spill decode failed", "path", f.path, "index", i, "error", err)
			return fmt.Errorf("decode item %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close closes and removes the backing file.
func (f *fileSpill[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}

	if err := f.file.Close(); err != nil {
		return fmt.Errorf("close spill file: %w", err)
	}

	f.file = nil

	return os.Remove(f.path)
}
