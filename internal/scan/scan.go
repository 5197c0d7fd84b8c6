// Package scan audits an entire working tree against the sidecar pairing
// invariant, independent of any staged change set. It backs the
// post-checkout and post-merge hooks, where the interesting state is what a
// checkout or merge just put on disk rather than what a commit is about to
// record.
package scan

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/sync/errgroup"

	"github.com/unitykit/metaguard/internal/meta"
)

// pairCheck is one existence probe scheduled during the walk: when probePath
// is absent from the tree, violation is emitted.
type pairCheck struct {
	probePath string
	violation meta.Violation
}

// Run walks the asset root inside fs and returns every pairing violation it
// finds, in walk (lexicographic) order. An absent asset root yields no
// violations. Existence probes run in parallel, bounded by GOMAXPROCS; the
// result order stays deterministic regardless.
func Run(fs billy.Filesystem, classifier *meta.Classifier) ([]meta.Violation, error) {
	root := classifier.Root()
	if _, err := fs.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var checks []pairCheck
	err := util.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		p := filepath.ToSlash(path)
		if p == root {
			return nil
		}
		switch classifier.Classify(p) {
		case meta.CategoryIgnored:
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		case meta.CategoryContent:
			checks = append(checks, pairCheck{
				probePath: classifier.MetaPath(p),
				violation: meta.Violation{Path: p, Kind: meta.MissingMetadata},
			})
		case meta.CategoryMetadata:
			content := classifier.ContentPath(p)
			if classifier.Classify(content) == meta.CategoryIgnored {
				return nil
			}
			checks = append(checks, pairCheck{
				probePath: content,
				violation: meta.Violation{Path: p, Kind: meta.RedundantMetadata},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	exists := make([]bool, len(checks))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range checks {
		g.Go(func() error {
			_, statErr := fs.Stat(c.probePath)
			exists[i] = statErr == nil
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var violations []meta.Violation
	for i, c := range checks {
		if !exists[i] {
			violations = append(violations, c.violation)
		}
	}
	return violations, nil
}
