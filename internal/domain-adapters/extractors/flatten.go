package extractors

import (
	"fmt"
	"os"
	"path/filepath"
)

// maxFlattenDepth bounds how many nested wrapper directories are
// collapsed. Real archives wrap at most two or three levels.
const maxFlattenDepth = 8

// FlattenSingleDir collapses the common archive layout where all content
// sits under a single wrapper directory (e.g. target/tool-1.2.0/bin)
// so the content lands directly in target. It works by renames, never by
// copying: target is renamed aside, the wrapper child is renamed into
// target's place, and the empty shell is removed. A target that already
// holds its content directly (or holds multiple entries) is untouched, so
// the operation is idempotent.
func FlattenSingleDir(targetDir string) error {
	for i := 0; i < maxFlattenDepth; i++ {
		child, ok, err := singleDirChild(targetDir)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if err := promoteChild(targetDir, child); err != nil {
			return err
		}
	}
	return nil
}

// singleDirChild reports the sole entry of dir when that entry is itself
// a directory.
func singleDirChild(dir string) (string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, fmt.Errorf("failed to read directory: %w", err)
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return "", false, nil
	}
	return entries[0].Name(), true, nil
}

// promoteChild moves targetDir/child into targetDir's place via a
// temporary sibling rename.
func promoteChild(targetDir, child string) error {
	tempDir := targetDir + ".flatten-tmp"

	// A leftover temp dir from an interrupted earlier run would block the
	// rename below.
	if err := os.RemoveAll(tempDir); err != nil {
		return fmt.Errorf("failed to clear temp directory: %w", err)
	}

	if err := os.Rename(targetDir, tempDir); err != nil {
		return fmt.Errorf("failed to move target aside: %w", err)
	}

	if err := os.Rename(filepath.Join(tempDir, child), targetDir); err != nil {
		// Roll the first rename back so the caller still finds its tree.
		//nolint:errcheck,gosec // G104: Best effort rollback
		os.Rename(tempDir, targetDir)
		return fmt.Errorf("failed to promote %s: %w", child, err)
	}

	if err := os.RemoveAll(tempDir); err != nil {
		return fmt.Errorf("failed to remove empty shell: %w", err)
	}
	return nil
}

// MoveContents moves every entry of srcDir into destDir, replacing any
// colliding destination entry. Used to promote installer payload subtrees
// (e.g. an MSI admin image's product directory) into the vendor target.
func MoveContents(srcDir, destDir string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	if err := os.MkdirAll(destDir, 0750); err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	for _, entry := range entries {
		src := filepath.Join(srcDir, entry.Name())
		dest := filepath.Join(destDir, entry.Name())

		if err := os.RemoveAll(dest); err != nil {
			return fmt.Errorf("failed to replace %s: %w", entry.Name(), err)
		}
		if err := os.Rename(src, dest); err != nil {
			return fmt.Errorf("failed to move %s: %w", entry.Name(), err)
		}
	}
	return nil
}
