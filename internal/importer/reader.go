// Package importer moves recipe documents from disk into the editor
// without blocking the caller. Reads complete on their own goroutine and
// their results arrive on a channel, in whatever order they finish.
package importer

import (
	"context"
	"fmt"
	"os"

	"github.com/hammamikhairi/recipedit/internal/document"
	"github.com/hammamikhairi/recipedit/internal/logger"
)

// Result is the outcome of one read.
type Result struct {
	Path   string
	Data   []byte
	Format document.Format
	Err    error
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithBuffer sets the capacity of the result channel.
func WithBuffer(n int) ReaderOption {
	return func(r *Reader) { r.buffer = n }
}

// WithReadFile replaces the function used to load files.
func WithReadFile(fn func(string) ([]byte, error)) ReaderOption {
	return func(r *Reader) { r.readFile = fn }
}

// Reader loads documents asynchronously. An in-flight read cannot be
// cancelled; a cancelled context only drops its result.
type Reader struct {
	log      *logger.Logger
	buffer   int
	readFile func(string) ([]byte, error)
	results  chan Result
}

// NewReader creates a reader.
func NewReader(log *logger.Logger, opts ...ReaderOption) *Reader {
	r := &Reader{
		log:      log,
		buffer:   8,
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.results = make(chan Result, r.buffer)
	return r
}

// C returns the channel that receives read results.
func (r *Reader) C() <-chan Result {
	return r.results
}

// Read starts loading path and returns immediately.
func (r *Reader) Read(ctx context.Context, path string) {
	go func() {
		res := Result{Path: path}
		data, err := r.readFile(path)
		if err != nil {
			res.Err = fmt.Errorf("reading %s: %w", path, err)
		} else {
			res.Data = data
			res.Format = document.DetectFormat(path, data)
		}
		r.log.Debug("import read finished: %s (%d bytes, err=%v)", path, len(res.Data), res.Err)

		select {
		case r.results <- res:
		case <-ctx.Done():
			r.log.Debug("import result dropped: %s", path)
		}
	}()
}
