package meta

import (
	"github.com/go-git/go-billy/v5"
)

// FSProbe answers working-tree existence questions against a billy
// filesystem rooted at the repository. Production code passes an osfs; tests
// pass a memfs with a fabricated tree.
type FSProbe struct {
	fs billy.Filesystem
}

// NewFSProbe returns a probe over fs.
func NewFSProbe(fs billy.Filesystem) *FSProbe {
	return &FSProbe{fs: fs}
}

// Exists reports whether path exists in the working tree, file or directory.
func (p *FSProbe) Exists(path string) bool {
	_, err := p.fs.Stat(path)
	return err == nil
}
