// Package dictfile implements the install/detect/format-check surface of
// §6: copying a DING source file into a root directory, building its
// prefix index, and reporting whether an installation is present and
// valid.
package dictfile

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/dictcore/ding/internal/dicterr"
	"github.com/dictcore/ding/internal/indexing"
	"github.com/dictcore/ding/internal/prefixstore"
)

// DataFileName and IndexFileName are the two files installed under the
// root directory.
const (
	DataFileName  = "dict.txt"
	IndexFileName = "index.db"
)

func dataPath(root string) string  { return filepath.Join(root, DataFileName) }
func indexPath(root string) string { return filepath.Join(root, IndexFileName) }

// IsInstalled reports whether a dictionary is installed under root (the
// presence of the data file).
func IsInstalled(root string) bool {
	_, err := os.Stat(dataPath(root))
	return err == nil
}

// InstallFromPath copies dingPath into root as an exact byte copy, then
// builds the prefix index over the copy in a single transaction. State
// transitions (Idle -> Starting -> Indexing(0..100%) -> Completed, or Error,
// or Idle on cancellation) are delivered through progress. On any
// failure, including cancellation, the copied data file and index file
// are removed before returning.
func InstallFromPath(ctx context.Context, root, dingPath string, params indexing.Params, progress indexing.ProgressFunc) error {
	check, err := CheckForDingFormat(dingPath)
	if err != nil {
		return err
	}
	if check != OK {
		return dicterr.NewFormatError(dingPath, string(check))
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return dicterr.NewIndexingError(dicterr.ErrorTypeIO, "create root", err).WithPath(root)
	}

	dst := dataPath(root)
	idx := indexPath(root)

	cleanup := func() {
		os.Remove(dst)
		os.Remove(idx)
	}

	if err := copyFile(dingPath, dst); err != nil {
		cleanup()
		return dicterr.NewIndexingError(dicterr.ErrorTypeIO, "copy ding file", err).WithPath(dingPath)
	}

	store, err := prefixstore.Open(idx)
	if err != nil {
		cleanup()
		return err
	}
	defer store.Close()

	if err := store.Truncate(); err != nil {
		cleanup()
		return err
	}
	if err := store.BeginInstall(); err != nil {
		cleanup()
		return err
	}

	if err := indexing.IndexFile(ctx, dst, store, params, progress); err != nil {
		_ = store.RollbackInstall()
		cleanup()
		return err
	}

	if err := store.CommitInstall(); err != nil {
		cleanup()
		return err
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
