// Package source loads token documents from the working tree or from a git
// revision.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/alexisbeaulieu97/tokenhex/internal/tokens"
	tokenerrors "github.com/alexisbeaulieu97/tokenhex/pkg/errors"
)

// Request identifies a token document.
type Request struct {
	Path   string
	Rev    string
	Format tokens.Format
}

// Load reads and decodes the document named by req. A missing file yields
// *errors.InputNotFoundError.
func Load(req Request) (*tokens.Document, error) {
	var (
		data []byte
		err  error
	)

	if req.Rev != "" {
		data, err = readAtRevision(req.Path, req.Rev)
	} else {
		data, err = readFile(req.Path)
	}
	if err != nil {
		return nil, err
	}

	return tokens.Decode(data, req.Path, req.Format)
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, tokenerrors.NewInputNotFoundError(path, "", err)
		}
		return nil, tokenerrors.NewParseError(path, 0, err)
	}
	if info.IsDir() {
		return nil, tokenerrors.NewParseError(path, 0, fmt.Errorf("%s is a directory", path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tokenerrors.NewParseError(path, 0, err)
	}
	return data, nil
}

// readAtRevision reads path as committed at rev in the repository that
// contains it.
func readAtRevision(path, rev string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve input path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository for %s: %w", path, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	rel, err := relativeTo(wt.Filesystem.Root(), abs)
	if err != nil {
		return nil, err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolve revision %q: %w", rev, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("load commit %s: %w", hash, err)
	}

	file, err := commit.File(rel)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, tokenerrors.NewInputNotFoundError(path, rev, err)
		}
		return nil, fmt.Errorf("read %s at %s: %w", rel, rev, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("read %s at %s: %w", rel, rev, err)
	}
	return []byte(contents), nil
}

func relativeTo(root, abs string) (string, error) {
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		resolvedRoot = root
	}
	resolvedDir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		resolvedDir = filepath.Dir(abs)
	}

	rel, err := filepath.Rel(resolvedRoot, filepath.Join(resolvedDir, filepath.Base(abs)))
	if err != nil {
		return "", fmt.Errorf("input %s is outside repository %s: %w", abs, root, err)
	}
	return filepath.ToSlash(rel), nil
}
