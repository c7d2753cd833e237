package pptx

import (
	"encoding/xml"
	"path"
	"strings"
)

// MediaLocation is one reference from a structural part (slide, layout,
// master, ...) to a media part. The same media part can be referenced from
// several structural parts; callers interested in unique payloads must
// deduplicate by PartUri.
type MediaLocation struct {
	PartUri     string // the media part, e.g. "/ppt/media/image1.png"
	SourcePart  string // the referencing part, e.g. "/ppt/slides/slide1.xml"
	ContentType string // declared content type, empty if the package doesn't say
}

// Structural scopes whose relationship parts can reference media. This is
// the flattened traversal over the pptx hierarchy: slides, layouts, masters,
// notes and handouts all surface through the same relationship mechanism.
var mediaScopeDirs = []string{
	"ppt/slides",
	"ppt/slideLayouts",
	"ppt/slideMasters",
	"ppt/notesSlides",
	"ppt/notesMasters",
	"ppt/handoutMasters",
}

type relationshipsXml struct {
	XMLName       xml.Name `xml:"Relationships"`
	Relationships []struct {
		Id         string `xml:"Id,attr"`
		Type       string `xml:"Type,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

// MediaLocations enumerates every media reference across all structural
// scopes, in package entry order. References to parts that don't exist in
// the package are skipped.
func (p *Package) MediaLocations() ([]*MediaLocation, error) {
	locations := make([]*MediaLocation, 0)

	for _, name := range p.names {
		scope, ok := mediaScopeFor(name)
		if !ok {
			continue
		}

		rels := &relationshipsXml{}
		if err := xml.Unmarshal(p.parts[name], rels); err != nil {
			continue // not a relationships part we understand
		}

		sourcePart := sourcePartFor(scope, name)
		for _, rel := range rels.Relationships {
			if rel.TargetMode == "External" {
				continue
			}
			if !isMediaRelType(rel.Type) {
				continue
			}

			partUri := resolveTarget(scope, rel.Target)
			if _, ok := p.parts[zipName(partUri)]; !ok {
				continue
			}
			locations = append(locations, &MediaLocation{
				PartUri:     partUri,
				SourcePart:  sourcePart,
				ContentType: p.ContentTypeOf(partUri),
			})
		}
	}

	return locations, nil
}

// The OOXML relationship namespaces vary (standard vs Microsoft extension
// types for embedded video), but the final path segment is stable.
func isMediaRelType(relType string) bool {
	switch path.Base(relType) {
	case "image", "video", "media":
		return true
	}
	return false
}

func mediaScopeFor(entryName string) (string, bool) {
	for _, dir := range mediaScopeDirs {
		if strings.HasPrefix(entryName, dir+"/_rels/") && strings.HasSuffix(entryName, ".rels") {
			return dir, true
		}
	}
	return "", false
}

func sourcePartFor(scope string, relsEntryName string) string {
	base := strings.TrimSuffix(path.Base(relsEntryName), ".rels")
	return "/" + scope + "/" + base
}

func resolveTarget(scope string, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(target)
	}
	return "/" + path.Clean(path.Join(scope, target))
}
