package swap

import (
	"path"
	"strings"

	"github.com/deckslim/deckslim/common"
	"github.com/deckslim/deckslim/placeholder"
	"github.com/deckslim/deckslim/pptx"
)

// matcher locates the package slot a record should be restored into. It
// holds the deduplicated candidate set for one swap-in run; matched
// candidates are consumed so a single physical target is never rewritten
// twice.
type matcher struct {
	candidates []*pptx.MediaLocation
	claimed    map[string]bool
}

func newMatcher(locations []*pptx.MediaLocation) *matcher {
	seen := make(map[string]bool)
	unique := make([]*pptx.MediaLocation, 0)
	for _, location := range locations {
		if seen[location.PartUri] {
			continue
		}
		seen[location.PartUri] = true
		unique = append(unique, location)
	}
	return &matcher{
		candidates: unique,
		claimed:    make(map[string]bool),
	}
}

// Find tries each strategy in order; the first hit wins.
//
//  1. Exact part URI - the common case when the package wasn't restructured.
//  2. Embedded placeholder metadata - survives renumbering because identity
//     travels inside the payload, not in the package's addressing.
//  3. Content type plus fuzzy file name - last resort, can pick the wrong
//     candidate when several parts share a type and similar names.
func (m *matcher) Find(pkg *pptx.Package, record *MediaRecord) *pptx.MediaLocation {
	for _, c := range m.candidates {
		if m.claimed[c.PartUri] {
			continue
		}
		if c.PartUri == record.PartUri {
			return m.claim(c)
		}
	}

	for _, c := range m.candidates {
		if m.claimed[c.PartUri] || !kindCompatible(c, record) {
			continue
		}
		payload, err := pkg.ReadPart(c.PartUri)
		if err != nil {
			continue
		}
		if meta := placeholder.Decode(payload); meta != nil && meta.Id == record.Id {
			return m.claim(c)
		}
	}

	stem := fileNameStem(record.OriginalFileName)
	if stem == "" {
		return nil
	}
	for _, c := range m.candidates {
		if m.claimed[c.PartUri] || c.ContentType != record.ContentType {
			continue
		}
		if strings.Contains(strings.ToLower(path.Base(c.PartUri)), stem) {
			return m.claim(c)
		}
	}

	return nil
}

func (m *matcher) claim(c *pptx.MediaLocation) *pptx.MediaLocation {
	m.claimed[c.PartUri] = true
	return c
}

func kindCompatible(c *pptx.MediaLocation, record *MediaRecord) bool {
	return common.KindForContentType(c.ContentType) == record.MediaType
}

func fileNameStem(fileName string) string {
	return strings.ToLower(strings.TrimSuffix(fileName, path.Ext(fileName)))
}
