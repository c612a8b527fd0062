package dictfile

import (
	"bytes"
	"io"
	"os"
)

const lineReadChunk = 4096

// ReadLineAt reads the line starting at byte offset ref in the file at
// path, up to (but excluding) the next newline or end of file.
func ReadLineAt(path string, ref int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := f.Seek(ref, 0); err != nil {
		return nil, err
	}

	var line []byte
	buf := make([]byte, lineReadChunk)
	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			if idx := bytes.IndexByte(buf[:n], '\n'); idx >= 0 {
				line = append(line, buf[:idx]...)
				return line, nil
			}
			line = append(line, buf[:n]...)
		}
		if readErr == io.EOF {
			return line, nil // EOF without a trailing newline: return what we have
		}
		if readErr != nil {
			return nil, readErr
		}
	}
}

// DataPath returns the path to the installed DING data file copy under root.
func DataPath(root string) string { return dataPath(root) }

// IndexPath returns the path to the installed index database under root.
func IndexPath(root string) string { return indexPath(root) }
