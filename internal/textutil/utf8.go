// Package textutil implements the UTF-8-aware text primitives the rest of
// the dictionary engine is built on: sequence classification, case
// folding (including the German accented letters DING data uses), an
// ASCII transliteration table, and word iteration over buffers and files.
package textutil

import "github.com/dictcore/ding/internal/dicterr"

// SequenceLen returns the byte length (1-4) of the UTF-8 sequence whose
// leading byte is b[0], per RFC 3629. It returns an *dicterr.EncodingError
// ("illegal leading byte") if the leading byte is a continuation byte or
// an otherwise illegal value (0xC0, 0xC1, 0xF5-0xFF), and one reading
// "incomplete sequence" if b is shorter than the sequence it starts.
func SequenceLen(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, dicterr.NewEncodingError(0, "empty buffer")
	}
	lead := b[0]
	var n int
	switch {
	case lead == 0xC0 || lead == 0xC1 || lead > 0xF4:
		return 0, dicterr.NewEncodingError(0, "illegal leading byte")
	case lead < 0x80:
		n = 1
	case lead&0xE0 == 0xC0:
		n = 2
	case lead&0xF0 == 0xE0:
		n = 3
	case lead&0xF8 == 0xF0:
		n = 4
	default:
		return 0, dicterr.NewEncodingError(0, "illegal leading byte")
	}
	if len(b) < n {
		return 0, dicterr.NewEncodingError(0, "incomplete sequence")
	}
	for i := 1; i < n; i++ {
		if b[i]&0xC0 != 0x80 {
			return 0, dicterr.NewEncodingError(i, "expected continuation byte")
		}
	}
	return n, nil
}

// CountSequences returns the number of UTF-8 code points in b, failing
// with the same error modes as SequenceLen.
func CountSequences(b []byte) (int, error) {
	count := 0
	for i := 0; i < len(b); {
		n, err := SequenceLen(b[i:])
		if err != nil {
			return 0, err
		}
		i += n
		count++
	}
	return count, nil
}

// IsASCIIClean reports whether every byte in b has its high bit clear.
func IsASCIIClean(b []byte) bool {
	for _, c := range b {
		if c&0x80 != 0 {
			return false
		}
	}
	return true
}

// CropToUnicodeLen truncates b in place to min(n, code-point count) code
// points and returns the resulting code-point count. The returned slice
// shares b's backing array.
func CropToUnicodeLen(b []byte, n int) ([]byte, int) {
	count := 0
	i := 0
	for i < len(b) && count < n {
		seqLen, err := SequenceLen(b[i:])
		if err != nil {
			// Malformed tail: stop cropping at the last good boundary.
			break
		}
		i += seqLen
		count++
	}
	return b[:i], count
}
