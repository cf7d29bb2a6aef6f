// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"context"
	"io"
	"sync"

	"github.com/ik5/granuloop/audio"
)

// LoadFunc builds a Classifier. It may be slow, for example when it reads a
// model from disk.
type LoadFunc func(ctx context.Context) (Classifier, error)

// Holder owns a classifier that is built on first use. The loader runs at
// most once: its result, success or failure, is kept until Close. A closed
// holder never loads again.
type Holder struct {
	load LoadFunc

	mtx     sync.Mutex
	loading chan struct{} // closed when the load in progress finishes
	loaded  bool
	closed  bool
	clf     Classifier
	err     error
}

// NewHolder returns a holder that builds its classifier with load.
func NewHolder(load LoadFunc) *Holder {
	return &Holder{load: load}
}

// NewHeuristicHolder holds a HeuristicClassifier, which needs no loading.
func NewHeuristicHolder() *Holder {
	return NewHolder(func(context.Context) (Classifier, error) {
		return HeuristicClassifier{}, nil
	})
}

// Get returns the classifier, loading it on the first call. Callers that
// arrive during the load wait for it until their own ctx is done.
func (h *Holder) Get(ctx context.Context) (Classifier, error) {
	h.mtx.Lock()

	switch {
	case h.closed:
		h.mtx.Unlock()
		return nil, ErrHolderClosed
	case h.loaded:
		defer h.mtx.Unlock()
		return h.clf, h.err
	case h.loading != nil:
		done := h.loading
		h.mtx.Unlock()

		select {
		case <-done:
			return h.result()
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := ctx.Err(); err != nil {
		h.mtx.Unlock()
		return nil, err
	}

	done := make(chan struct{})
	h.loading = done
	h.mtx.Unlock()

	clf, err := h.load(ctx)

	h.mtx.Lock()
	closed := h.closed
	if !closed {
		h.clf, h.err = clf, err
	}
	h.loaded = true
	h.loading = nil
	h.mtx.Unlock()
	close(done)

	if closed {
		// Close ran during the load and left the release to us
		if c, ok := clf.(io.Closer); ok {
			_ = c.Close()
		}

		return nil, ErrHolderClosed
	}

	return clf, err
}

func (h *Holder) result() (Classifier, error) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	if h.closed {
		return nil, ErrHolderClosed
	}

	return h.clf, h.err
}

// Classify is shorthand for Get followed by Classify.
func (h *Holder) Classify(ctx context.Context, buf audio.Buffer) (Classification, error) {
	clf, err := h.Get(ctx)
	if err != nil {
		return Classification{}, err
	}

	return clf.Classify(ctx, buf)
}

// Close releases the classifier if it implements io.Closer. Closing twice
// is a no-op.
func (h *Holder) Close() error {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	if h.closed {
		return nil
	}

	h.closed = true
	if h.loading != nil {
		// the loader releases what it builds
		return nil
	}

	clf := h.clf
	h.clf = nil

	if c, ok := clf.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
