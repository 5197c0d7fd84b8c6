// Package meta implements the sidecar pairing invariant for Unity-style
// asset trees: every content file under the asset root must be accompanied
// by exactly one metadata file named by appending the meta suffix, and every
// metadata file must name a content path that exists.
package meta

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Category is the classification of a path under the pairing rules.
type Category int

const (
	// CategoryIgnored paths are invisible to the checker on both sides of
	// the pairing: hidden files and directories (any segment starting with
	// "."), paths matching a configured exclude glob, and anything outside
	// the asset root.
	CategoryIgnored Category = iota
	// CategoryContent paths are tracked assets requiring a metadata pair.
	CategoryContent
	// CategoryMetadata paths are sidecar files named content-path + suffix.
	CategoryMetadata
)

func (c Category) String() string {
	switch c {
	case CategoryContent:
		return "content"
	case CategoryMetadata:
		return "metadata"
	default:
		return "ignored"
	}
}

// Classifier maps repository-relative paths to categories. It is pure and
// total: unrecognized inputs classify as ignored rather than failing.
type Classifier struct {
	root    string
	suffix  string
	exclude []string
}

// NewClassifier returns a classifier enforcing pairing under root (e.g.
// "Assets") with the given metadata suffix (e.g. ".meta"). Exclude globs use
// doublestar syntax and are matched against the slash-form path.
func NewClassifier(root, suffix string, exclude []string) *Classifier {
	return &Classifier{
		root:    strings.TrimSuffix(filepath.ToSlash(root), "/"),
		suffix:  suffix,
		exclude: exclude,
	}
}

// Classify maps a path to its category. Rules, in priority order: hidden or
// excluded paths are ignored; paths ending in the meta suffix are metadata;
// strict descendants of the asset root are content; everything else is
// ignored.
func (c *Classifier) Classify(path string) Category {
	p := filepath.ToSlash(path)
	if p == "" || hasHiddenSegment(p) || c.excluded(p) {
		return CategoryIgnored
	}
	if strings.HasSuffix(p, c.suffix) && len(p) > len(c.suffix) {
		return CategoryMetadata
	}
	if c.UnderRoot(p) {
		return CategoryContent
	}
	return CategoryIgnored
}

// ContentPath returns the content path a metadata path names, the same
// string with the suffix stripped.
func (c *Classifier) ContentPath(metaPath string) string {
	return strings.TrimSuffix(filepath.ToSlash(metaPath), c.suffix)
}

// MetaPath returns the metadata path paired with a content path.
func (c *Classifier) MetaPath(contentPath string) string {
	return filepath.ToSlash(contentPath) + c.suffix
}

// UnderRoot reports whether path is a strict descendant of the asset root.
// The root itself is not under the root: "Assets" carries no meta pair.
func (c *Classifier) UnderRoot(path string) bool {
	return strings.HasPrefix(filepath.ToSlash(path), c.root+"/")
}

// Root returns the configured asset root in slash form.
func (c *Classifier) Root() string {
	return c.root
}

// Suffix returns the configured metadata suffix.
func (c *Classifier) Suffix() string {
	return c.suffix
}

func (c *Classifier) excluded(p string) bool {
	for _, g := range c.exclude {
		if ok, err := doublestar.Match(g, p); err == nil && ok {
			return true
		}
	}
	return false
}

func hasHiddenSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
