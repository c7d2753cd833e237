package placeholder

import (
	"encoding/json"
)

// MetadataKeyword is the tEXt keyword under which swap metadata travels
// inside a placeholder payload. Changing it breaks restore of placeholders
// written by earlier versions.
const MetadataKeyword = "deckslimSwap"

// Metadata is the self-describing record embedded in a placeholder. It
// mirrors the subset of the manifest record needed to re-identify the
// placeholder without the manifest.
type Metadata struct {
	Id          string `json:"id"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	DataHash    string `json:"dataHash,omitempty"`
}

// Encode renders a placeholder image for the given media kind and embeds
// meta in it. The resulting payload is a valid PNG regardless of kind: video
// parts carry a PNG payload too, their declared content type is untouched.
func Encode(kind string, meta Metadata) ([]byte, error) {
	base, err := renderBase(kind, meta.FileName)
	if err != nil {
		return nil, err
	}
	text, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	return insertTextChunk(base, MetadataKeyword, text)
}

// Decode extracts placeholder metadata from an arbitrary payload. Returns
// nil when the payload is not a placeholder - wrong container, missing or
// malformed chunk, truncated stream. It never errors: absence of metadata is
// a normal outcome for callers probing foreign payloads.
func Decode(b []byte) *Metadata {
	value, ok := findTextChunk(b, MetadataKeyword)
	if !ok {
		return nil
	}
	meta := &Metadata{}
	if err := json.Unmarshal(value, meta); err != nil {
		return nil
	}
	if meta.Id == "" {
		return nil
	}
	return meta
}
