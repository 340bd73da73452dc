package locator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// walkBase walks the subtree rooted at base, collecting every directory the
// variant recognizes as a project. Two filters apply to each subdirectory
// before descent:
//
//   - depth: with maxDepth > 0, a directory more than maxDepth levels below
//     base is pruned outright. It is neither tested nor descended into.
//   - name: a directory whose base name is in ignored is still tested as a
//     project, but its subtree is never descended into.
//
// Symbolic links are not followed. A read error anywhere in the subtree
// aborts the walk; results collected up to that point are returned alongside
// the error.
func (l *Locator) walkBase(ctx context.Context, base string, ignored map[string]bool, maxDepth int) (DirList, error) {
	var list DirList

	var walk func(dir string, depth int) error
	walk = func(dir string, depth int) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		l.notifier.Scanning(dir)
		if l.variant.IsRepoDir(dir) {
			list = append(list, DirInfo{FullPath: dir, Name: l.variant.DecideProjectName(dir)})
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("reading %s: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			child := filepath.Join(dir, entry.Name())
			childDepth := depth + 1
			if maxDepth > 0 && childDepth > maxDepth {
				continue
			}
			if ignored[entry.Name()] {
				l.notifier.Scanning(child)
				if l.variant.IsRepoDir(child) {
					list = append(list, DirInfo{FullPath: child, Name: l.variant.DecideProjectName(child)})
				}
				continue
			}
			if err := walk(child, childDepth); err != nil {
				return err
			}
		}
		return nil
	}

	err := walk(base, 0)
	return list, err
}
