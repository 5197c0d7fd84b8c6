// Package staging enumerates the change set staged for the pending commit.
//
// It prefers go-git for repository access and falls back to the git CLI when
// go-git cannot serve, mirroring how the rest of the tool discovers
// repository state. Either way the result is an ordered list of
// meta.StagedChange values; renames are reported as a deletion of the old
// path plus an addition of the new one.
package staging

import (
	"bufio"
	"bytes"
	"errors"
	"os/exec"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"

	"github.com/unitykit/metaguard/internal/meta"
)

// ErrNotRepository reports that the target directory is not inside a git
// work tree. Callers must treat this as a fatal configuration error, never
// as an empty change set.
var ErrNotRepository = errors.New("not inside a git work tree")

// emptyTreeHash is git's well-known empty tree object, used as the diff base
// before the first commit exists.
const emptyTreeHash = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// GitSource reads the staged change set of the repository containing dir.
type GitSource struct {
	dir string
}

// NewGitSource returns a source for the repository containing dir.
func NewGitSource(dir string) *GitSource {
	return &GitSource{dir: dir}
}

// Root returns the repository's work-tree root.
func (s *GitSource) Root() (string, error) {
	if repo, err := git.PlainOpenWithOptions(s.dir, &git.PlainOpenOptions{DetectDotGit: true}); err == nil {
		if wt, err := repo.Worktree(); err == nil {
			return wt.Filesystem.Root(), nil
		}
	}
	if _, err := exec.LookPath("git"); err != nil {
		return "", ErrNotRepository
	}
	if out := runGit(s.dir, "rev-parse", "--show-toplevel"); out != "" {
		return out, nil
	}
	return "", ErrNotRepository
}

// Changes enumerates the paths that differ between HEAD and the index,
// ordered by path. A repository that cannot be read yields an error; the
// caller decides how to surface it.
func (s *GitSource) Changes() ([]meta.StagedChange, error) {
	if changes, ok := s.goGitChanges(); ok {
		return changes, nil
	}
	return s.cliChanges()
}

func (s *GitSource) goGitChanges() ([]meta.StagedChange, bool) {
	repo, err := git.PlainOpenWithOptions(s.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, false
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, false
	}
	st, err := wt.Status()
	if err != nil {
		return nil, false
	}

	paths := make([]string, 0, len(st))
	for path := range st {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var changes []meta.StagedChange
	for _, path := range paths {
		fs := st[path]
		switch fs.Staging {
		case git.Added, git.Copied:
			changes = append(changes, meta.StagedChange{Path: path, Kind: meta.KindAdded})
		case git.Modified, git.UpdatedButUnmerged:
			changes = append(changes, meta.StagedChange{Path: path, Kind: meta.KindModified})
		case git.Deleted:
			changes = append(changes, meta.StagedChange{Path: path, Kind: meta.KindDeleted})
		case git.Renamed:
			if fs.Extra != "" {
				changes = append(changes, meta.StagedChange{Path: fs.Extra, Kind: meta.KindDeleted})
			}
			changes = append(changes, meta.StagedChange{Path: path, Kind: meta.KindAdded})
		}
	}
	return changes, true
}

func (s *GitSource) cliChanges() ([]meta.StagedChange, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return nil, ErrNotRepository
	}
	if !isRepoCLI(s.dir) {
		return nil, ErrNotRepository
	}

	base := "HEAD"
	if runGit(s.dir, "rev-parse", "--verify", "HEAD") == "" {
		base = emptyTreeHash
	}
	out, err := runGitErr(s.dir, "diff", "--cached", "--name-status", "-M", base)
	if err != nil {
		return nil, errors.Join(errors.New("cannot read staging snapshot"), err)
	}
	return parseNameStatus(out), nil
}

// parseNameStatus parses `git diff --name-status` output. Lines look like
// "A\tpath", "M\tpath", "D\tpath", or "R100\told\tnew".
func parseNameStatus(data []byte) []meta.StagedChange {
	var changes []meta.StagedChange
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		status := parts[0]
		if status == "" {
			continue
		}
		switch status[0] {
		case 'A':
			changes = append(changes, meta.StagedChange{Path: parts[1], Kind: meta.KindAdded})
		case 'M', 'T', 'U':
			changes = append(changes, meta.StagedChange{Path: parts[1], Kind: meta.KindModified})
		case 'D':
			changes = append(changes, meta.StagedChange{Path: parts[1], Kind: meta.KindDeleted})
		case 'R':
			if len(parts) < 3 {
				continue
			}
			changes = append(changes, meta.StagedChange{Path: parts[1], Kind: meta.KindDeleted})
			changes = append(changes, meta.StagedChange{Path: parts[2], Kind: meta.KindAdded})
		case 'C':
			if len(parts) < 3 {
				continue
			}
			changes = append(changes, meta.StagedChange{Path: parts[2], Kind: meta.KindAdded})
		}
	}
	return changes
}

func isRepoCLI(dir string) bool {
	return runGit(dir, "rev-parse", "--is-inside-work-tree") == "true"
}

func runGit(dir string, args ...string) string {
	out, err := runGitErr(dir, args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func runGitErr(dir string, args ...string) ([]byte, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	return cmd.Output()
}
