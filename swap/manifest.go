package swap

import (
	"encoding/json"
	"os"
	"time"

	"github.com/deckslim/deckslim/common"
	"github.com/pkg/errors"
)

const ManifestFileName = "swap-manifest.json"
const MediaDirName = "media"

type ImageDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MediaRecord describes one swapped media part. The field names are the wire
// schema: renaming any of them breaks restore of manifests written by other
// versions. DataHash and ImageDimensions are optional and tolerated absent
// on read (older manifests didn't have them).
type MediaRecord struct {
	Id               string           `json:"id"`
	OriginalFileName string           `json:"originalFileName"`
	MediaType        string           `json:"mediaType"`
	ContentType      string           `json:"contentType"`
	OriginalSize     int64            `json:"originalSize"`
	PartUri          string           `json:"partUri"`
	SavedFilePath    string           `json:"savedFilePath"`
	DataHash         string           `json:"dataHash,omitempty"`
	ImageDimensions  *ImageDimensions `json:"imageDimensions"`
}

// Manifest is written once per swap-out run and never mutated afterwards.
// Record order is discovery order.
type Manifest struct {
	CreatedAt        time.Time      `json:"createdAt"`
	OriginalFileName string         `json:"originalFileName"`
	MediaFiles       []*MediaRecord `json:"mediaFiles"`
}

func NewManifest(originalFileName string) *Manifest {
	return &Manifest{
		CreatedAt:        time.Now().UTC(),
		OriginalFileName: originalFileName,
		MediaFiles:       make([]*MediaRecord, 0),
	}
}

func (m *Manifest) Append(record *MediaRecord) {
	m.MediaFiles = append(m.MediaFiles, record)
}

func (m *Manifest) Save(filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err = enc.Encode(m); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func ReadManifest(filePath string) (*Manifest, error) {
	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrManifestNotFound
		}
		return nil, err
	}
	defer f.Close()

	manifest := &Manifest{}
	if err = json.NewDecoder(f).Decode(manifest); err != nil {
		return nil, errors.Wrap(common.ErrInvalidManifest, err.Error())
	}
	if manifest.MediaFiles == nil {
		return nil, errors.Wrap(common.ErrInvalidManifest, "no media files")
	}

	seen := make(map[string]bool)
	for _, record := range manifest.MediaFiles {
		if record.Id == "" {
			return nil, errors.Wrap(common.ErrInvalidManifest, "record without an id")
		}
		if seen[record.Id] {
			return nil, errors.Wrap(common.ErrInvalidManifest, "duplicate record id "+record.Id)
		}
		seen[record.Id] = true
	}

	return manifest, nil
}
