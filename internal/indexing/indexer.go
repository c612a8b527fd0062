// Package indexing streams a DING dictionary file once and emits
// (ref, prefix) pairs into the prefix store under a single transaction.
package indexing

import (
	"context"
	"sort"

	"github.com/dictcore/ding/internal/dicterr"
	"github.com/dictcore/ding/internal/prefixstore"
	"github.com/dictcore/ding/internal/textutil"
)

// State is a step in the install state machine reported through
// ProgressFunc.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateIndexing
	StateCompleted
	StateError
)

// Progress is delivered to the caller's ProgressFunc once per integer
// percentage point advance (and once at Starting/Completed/Error).
type Progress struct {
	State   State
	Percent int // 0-100, meaningful only in StateIndexing
	Err     error
}

// ProgressFunc receives install progress notifications.
type ProgressFunc func(Progress)

// Depth (D) is the indexing depth: the fixed number of Unicode code
// points a token is cropped to before it is stored as a prefix.
//
// Minimum (M) is the indexing minimum: tokens shorter than this many
// Unicode code points are never prefixed.
type Params struct {
	Depth   int
	Minimum int
}

// DefaultParams matches the design constants named in the specification:
// a small fixed depth with minimum <= depth.
var DefaultParams = Params{Depth: 3, Minimum: 3}

// bag is a sorted, deduplicated set of prefixes accumulated for the
// current ref, flushed to the store whenever the ref changes.
type bag struct {
	items [][]byte
}

func (b *bag) insert(prefix []byte) {
	i := sort.Search(len(b.items), func(i int) bool {
		return compareBytes(b.items[i], prefix) >= 0
	})
	if i < len(b.items) && compareBytes(b.items[i], prefix) == 0 {
		return // already present for this ref
	}
	b.items = append(b.items, nil)
	copy(b.items[i+1:], b.items[i:])
	b.items[i] = append([]byte(nil), prefix...)
}

func (b *bag) reset() {
	b.items = b.items[:0]
}

func compareBytes(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// IndexFile streams dingPath and writes (ref, prefix) pairs into store
// within a single transaction, already begun by the caller
// (store.BeginInstall). It does not commit or roll back the
// transaction; the caller (the install orchestrator) owns that decision
// so it can also remove the copied data file when the install fails.
//
// ctx is polled once per word; if ctx is done, IndexFile stops at the
// next word boundary and returns dicterr.ErrCancelled.
//
// A malformed UTF-8 sequence in any token is fatal: the DING file is
// considered corrupt, the stream stops at that word, and IndexFile
// returns a *dicterr.IndexingError of type ErrorTypeEncoding so the
// caller rolls the install back rather than silently dropping the word.
func IndexFile(ctx context.Context, dingPath string, store *prefixstore.Store, params Params, progress ProgressFunc) error {
	emit := func(p Progress) {
		if progress != nil {
			progress(p)
		}
	}

	emit(Progress{State: StateStarting})

	cur := bag{}
	var curRef int64 = -1
	lastPercent := -1
	upperBuf := make([]byte, 0, 128)

	flush := func(ref int64) error {
		if len(cur.items) == 0 {
			return nil
		}
		if err := store.Add(ref, cur.items); err != nil {
			return err
		}
		cur.reset()
		return nil
	}

	var stoppedByCancel bool
	var skipCurrentRef bool
	// streamErr captures a fatal error raised from inside the callback
	// (a store failure or an encoding failure); it is declared here, ahead
	// of the call below, so the callback closure can assign to it.
	var streamErr error

	ok, ioErr := textutil.IterateWordsInFile(dingPath, func(word []byte, ref int64, progressFrac float64) bool {
		select {
		case <-ctx.Done():
			stoppedByCancel = true
			return false
		default:
		}

		if ref != curRef {
			if ferr := flush(curRef); ferr != nil {
				streamErr = ferr
				return false
			}
			curRef = ref
			// A line is a comment iff its first token begins with '#'.
			skipCurrentRef = len(word) > 0 && word[0] == '#'
		}

		if !skipCurrentRef {
			upperBuf = append(upperBuf[:0], word...)
			textutil.ToUpper(upperBuf)
			n, cerr := textutil.CountSequences(upperBuf)
			if cerr != nil {
				streamErr = dicterr.NewIndexingError(dicterr.ErrorTypeEncoding, "validate word encoding", cerr).WithPath(dingPath)
				return false
			}
			if n >= params.Minimum && !textutil.IsCommonWord(string(upperBuf)) {
				croppedBuf := append([]byte(nil), upperBuf...)
				cropped, _ := textutil.CropToUnicodeLen(croppedBuf, params.Depth)
				cur.insert(cropped)
			}
		}

		percent := int(progressFrac * 100)
		if percent != lastPercent {
			lastPercent = percent
			emit(Progress{State: StateIndexing, Percent: percent})
		}
		return true
	})

	if ioErr != nil {
		emit(Progress{State: StateError, Err: ioErr})
		return dicterr.NewIndexingError(dicterr.ErrorTypeIO, "stream ding file", ioErr).WithPath(dingPath)
	}
	if streamErr != nil {
		emit(Progress{State: StateError, Err: streamErr})
		if idxErr, isIndexingErr := streamErr.(*dicterr.IndexingError); isIndexingErr {
			return idxErr
		}
		return dicterr.NewIndexingError(dicterr.ErrorTypeIO, "stream ding file", streamErr).WithPath(dingPath)
	}
	if !ok {
		if stoppedByCancel {
			emit(Progress{State: StateIdle})
			return dicterr.ErrCancelled
		}
		return nil
	}

	if ferr := flush(curRef); ferr != nil {
		emit(Progress{State: StateError, Err: ferr})
		return ferr
	}

	emit(Progress{State: StateCompleted, Percent: 100})
	return nil
}
