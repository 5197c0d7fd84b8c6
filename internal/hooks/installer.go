package hooks

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// InstallResult describes what Install did for one hook.
type InstallResult int

const (
	// ResultInstalled: the script was written to an empty slot.
	ResultInstalled InstallResult = iota
	// ResultSkipped: the destination already contains the script verbatim.
	ResultSkipped
	// ResultReplaced: a pre-existing foreign hook was backed up first.
	ResultReplaced
)

func (r InstallResult) String() string {
	switch r {
	case ResultInstalled:
		return "installed"
	case ResultSkipped:
		return "skipped"
	case ResultReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Status describes the state of one hook slot.
type Status int

const (
	StatusMissing Status = iota
	StatusInstalled
	StatusForeign
)

func (s Status) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusForeign:
		return "foreign"
	default:
		return "missing"
	}
}

// BackupSuffix is appended to a foreign hook's name when Install displaces it.
const BackupSuffix = ".backup"

// Installer places rendered hook scripts into a hook directory. It treats
// script content opaquely: no pairing logic lives here.
type Installer struct {
	fs  billy.Filesystem
	dir string
}

// NewInstaller returns an installer writing into dir (normally
// ".git/hooks") inside fs.
func NewInstaller(fs billy.Filesystem, dir string) *Installer {
	return &Installer{fs: fs, dir: dir}
}

// Install writes content to the hook slot. A destination that already holds
// the identical content is left untouched; any other pre-existing hook is
// preserved at <name>.backup before the script is written.
func (i *Installer) Install(name, content string) (InstallResult, error) {
	if err := validateHookName(name); err != nil {
		return 0, err
	}
	if err := i.fs.MkdirAll(i.dir, 0o755); err != nil {
		return 0, err
	}
	dst := i.fs.Join(i.dir, name)

	result := ResultInstalled
	if existing, err := util.ReadFile(i.fs, dst); err == nil {
		if strings.Contains(string(existing), content) {
			return ResultSkipped, nil
		}
		if err := i.fs.Rename(dst, dst+BackupSuffix); err != nil {
			return 0, fmt.Errorf("failed to back up existing %s hook: %w", name, err)
		}
		result = ResultReplaced
	}

	if err := util.WriteFile(i.fs, dst, []byte(content), 0o755); err != nil {
		return 0, fmt.Errorf("failed to install %s hook: %w", name, err)
	}
	return result, nil
}

// Remove deletes the hook slot if metaguard owns it and restores a backup
// when one exists. It reports whether a hook was removed. Foreign hooks are
// left alone.
func (i *Installer) Remove(name string) (bool, error) {
	if err := validateHookName(name); err != nil {
		return false, err
	}
	dst := i.fs.Join(i.dir, name)

	content, err := util.ReadFile(i.fs, dst)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if !IsGenerated(string(content)) {
		return false, nil
	}
	if err := i.fs.Remove(dst); err != nil {
		return false, fmt.Errorf("failed to remove %s hook: %w", name, err)
	}
	if _, err := i.fs.Stat(dst + BackupSuffix); err == nil {
		if err := i.fs.Rename(dst+BackupSuffix, dst); err != nil {
			return true, fmt.Errorf("failed to restore %s backup: %w", name, err)
		}
	}
	return true, nil
}

// Inspect reports the state of the hook slot.
func (i *Installer) Inspect(name string) Status {
	if validateHookName(name) != nil {
		return StatusMissing
	}
	content, err := util.ReadFile(i.fs, i.fs.Join(i.dir, name))
	if err != nil {
		return StatusMissing
	}
	if IsGenerated(string(content)) {
		return StatusInstalled
	}
	return StatusForeign
}

// validateHookName rejects anything that could escape the hook directory.
func validateHookName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return fmt.Errorf("invalid hook name: %q", name)
	}
	return nil
}
