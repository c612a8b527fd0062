package textutil

import (
	"io"
	"os"
)

// isWordByte reports whether b is part of a word: anything that is not
// ASCII whitespace or an ASCII control character. High-bit (UTF-8
// continuation/lead) bytes are always word bytes.
func isWordByte(b byte) bool {
	if b >= 0x80 {
		return true
	}
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return false
	}
	return b >= 0x20 && b != 0x7f
}

// WordFunc is invoked once per maximal run of word bytes found by
// IterateWords. Returning false stops iteration early.
type WordFunc func(word []byte, offset int) bool

// IterateWords scans buf for maximal runs of non-whitespace,
// non-control bytes and invokes fn(word, offset) for each, where word is
// a sub-slice of buf. Returns false if fn ever returned false (iteration
// stopped early), true if the whole buffer was scanned.
func IterateWords(buf []byte, fn WordFunc) bool {
	i := 0
	n := len(buf)
	for i < n {
		for i < n && !isWordByte(buf[i]) {
			i++
		}
		if i >= n {
			break
		}
		start := i
		for i < n && isWordByte(buf[i]) {
			i++
		}
		if !fn(buf[start:i], start) {
			return false
		}
	}
	return true
}

// FileWordFunc is invoked once per word found while streaming a file.
// ref is the byte offset just past the most recent newline at the time the
// word was found (i.e. the start of the line containing it); progress is
// bytes_consumed/file_size, in [0,1]. Returning false stops the scan.
type FileWordFunc func(word []byte, ref int64, progress float64) bool

const defaultBlockSize = 64 * 1024

// IterateWordsInFile streams path in fixed-size blocks, tracking a
// running absolute offset and the offset just past the most recent
// newline (the ref), and invokes fn once per word. Words that straddle a
// block boundary are re-buffered so they are delivered whole; the carry
// buffer grows geometrically if a single word exceeds the block size.
// Returns false if fn stopped iteration early (cancellation), or a
// non-nil error on I/O failure. Words are not checked for valid UTF-8.
func IterateWordsInFile(path string, fn FileWordFunc) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	size := info.Size()
	if size == 0 {
		return true, nil
	}

	block := make([]byte, defaultBlockSize)
	var carry []byte
	var ref int64 // offset of the most recently seen newline + 1
	var baseOffset int64 // absolute file offset of carry/block[0]
	eof := false

	for {
		n, readErr := f.Read(block)
		if readErr != nil && readErr != io.EOF {
			return false, readErr
		}
		eof = readErr == io.EOF

		chunk := block[:n]
		if len(carry) > 0 {
			chunk = append(carry, chunk...)
		}

		// Scan the chunk once, tracking newlines as we go. The last
		// maximal word run is held back (not delivered) unless this is
		// the final block, since it may continue into the next read.
		deliverEnd := len(chunk)
		if !eof {
			deliverEnd = lastWordBoundary(chunk)
		}

		pos := 0
		cursorRef := ref
		cont := true
		for pos < deliverEnd {
			for pos < deliverEnd && !isWordByte(chunk[pos]) {
				if chunk[pos] == '\n' {
					cursorRef = baseOffset + int64(pos) + 1
				}
				pos++
			}
			if pos >= deliverEnd {
				break
			}
			start := pos
			for pos < deliverEnd && isWordByte(chunk[pos]) {
				pos++
			}
			progress := float64(baseOffset+int64(pos)) / float64(size)
			if progress > 1 {
				progress = 1
			}
			if !fn(chunk[start:pos], cursorRef, progress) {
				cont = false
				break
			}
		}
		ref = cursorRef

		if !cont {
			return false, nil
		}

		if eof {
			// Deliver whatever remains (the final, possibly partial, word).
			tail := chunk[deliverEnd:]
			if len(tail) > 0 {
				trailingRef := ref
				for k := 0; k < len(tail); k++ {
					if tail[k] == '\n' {
						trailingRef = baseOffset + int64(deliverEnd) + int64(k) + 1
					}
				}
				if !fn(tail, trailingRef, 1.0) {
					return false, nil
				}
			}
			return true, nil
		}

		carry = append(carry[:0], chunk[deliverEnd:]...)
		baseOffset += int64(deliverEnd)
	}
}

// lastWordBoundary returns the length of the prefix of buf that ends on a
// word boundary (i.e. does not split a trailing run of word bytes), so
// that the remainder can be carried into the next read.
func lastWordBoundary(buf []byte) int {
	i := len(buf)
	for i > 0 && isWordByte(buf[i-1]) {
		i--
	}
	return i
}
