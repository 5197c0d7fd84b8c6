package meta

import (
	"path"
	"path/filepath"
	"strings"
)

// Check evaluates the pairing invariant against a staged change set and a
// working-tree probe, returning every violation in first-seen order. It is a
// pure function of its inputs: no I/O beyond the probe, no state across
// calls, and identical inputs yield identical violation lists.
func Check(changes []StagedChange, probe ExistsProbe, classifier *Classifier) []Violation {
	s := &checkState{
		classifier: classifier,
		probe:      probe,
		added:      make(map[string]bool),
		removed:    make(map[string]bool),
		seen:       make(map[Violation]bool),
	}

	for _, ch := range changes {
		p := filepath.ToSlash(ch.Path)
		switch ch.Kind {
		case KindAdded, KindModified:
			s.added[p] = true
		case KindDeleted:
			s.removed[p] = true
		}
	}

	for _, ch := range changes {
		s.evaluate(filepath.ToSlash(ch.Path), ch.Kind)
	}
	return s.violations
}

type checkState struct {
	classifier *Classifier
	probe      ExistsProbe
	added      map[string]bool
	removed    map[string]bool
	seen       map[Violation]bool
	violations []Violation
}

func (s *checkState) evaluate(p string, kind ChangeKind) {
	c := s.classifier
	switch c.Classify(p) {
	case CategoryContent:
		metaPath := c.MetaPath(p)
		switch kind {
		case KindAdded, KindModified:
			if !s.present(metaPath) {
				s.emit(Violation{Path: p, Kind: MissingMetadata})
			}
		case KindDeleted:
			if s.present(metaPath) {
				s.emit(Violation{Path: metaPath, Kind: RedundantMetadata})
			}
		}
	case CategoryMetadata:
		content := c.ContentPath(p)
		if c.Classify(content) == CategoryIgnored {
			// Ignored trees are invisible to the checker on both sides.
			break
		}
		switch kind {
		case KindAdded, KindModified:
			if !s.present(content) {
				s.emit(Violation{Path: p, Kind: RedundantMetadata})
			}
		case KindDeleted:
			if s.present(content) {
				s.emit(Violation{Path: content, Kind: MissingMetadata})
			}
		}
	}

	// A deletion can empty out ancestor directories, stranding their
	// metadata files. This holds for every removed path under the asset
	// root, hidden ones included: deleting Assets/dir/.gitkeep removes
	// Assets/dir, and Assets/dir.meta is then orphaned.
	if kind == KindDeleted && s.classifier.UnderRoot(p) {
		s.checkOrphanedAncestors(p)
	}
}

func (s *checkState) checkOrphanedAncestors(p string) {
	c := s.classifier
	for dir := path.Dir(p); c.UnderRoot(dir); dir = path.Dir(dir) {
		if s.present(dir) {
			// Ancestors of a surviving directory survive as well.
			break
		}
		if c.Classify(dir) != CategoryContent {
			continue
		}
		if metaPath := c.MetaPath(dir); s.present(metaPath) {
			s.emit(Violation{Path: metaPath, Kind: RedundantMetadata})
		}
	}
}

// present reports whether a path exists after the staged changes are
// applied: staged additions exist, staged deletions do not, and everything
// else defers to the working tree. A directory also counts as present when
// any staged addition lies beneath it.
func (s *checkState) present(p string) bool {
	if s.added[p] {
		return true
	}
	if s.removed[p] {
		return false
	}
	if s.probe.Exists(p) {
		return true
	}
	return s.addedUnder(p)
}

func (s *checkState) addedUnder(dir string) bool {
	prefix := dir + "/"
	for p := range s.added {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func (s *checkState) emit(v Violation) {
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.violations = append(s.violations, v)
}
