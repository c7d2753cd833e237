package swap

import (
	"os"
	"path"
	"path/filepath"

	"github.com/deckslim/deckslim/common"
	"github.com/deckslim/deckslim/common/rcontext"
	"github.com/deckslim/deckslim/placeholder"
	"github.com/deckslim/deckslim/pptx"
	"github.com/deckslim/deckslim/util"
	"github.com/deckslim/deckslim/util/ids"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

type SwapOutResult struct {
	Manifest       *Manifest
	Count          int
	BytesReclaimed int64
}

// SwapOut replaces every unique media payload in the package with an encoded
// placeholder, persists the originals under mediaDir and builds the manifest.
// The package is mutated in memory only; the caller decides where to save it.
//
// Any per-item failure other than the dimension probe aborts the whole run:
// the manifest is only returned once every item succeeded, so an aborted run
// never leaves a manifest pointing at files that were never written.
func SwapOut(ctx rcontext.RequestContext, pkg *pptx.Package, mediaDir string) (*SwapOutResult, error) {
	locations, err := pkg.MediaLocations()
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(mediaDir, os.ModePerm); err != nil {
		return nil, err
	}

	manifest := NewManifest(pkg.FileName())
	seen := make(map[string]bool)
	reclaimed := int64(0)

	for _, location := range locations {
		if seen[location.PartUri] {
			continue // already swapped through another reference
		}
		seen[location.PartUri] = true

		log := ctx.Log.WithFields(logrus.Fields{"partUri": location.PartUri})

		payload, err := pkg.ReadPart(location.PartUri)
		if err != nil {
			return nil, err
		}

		contentType := location.ContentType
		if contentType == "" {
			contentType = util.DetectContentType(payload)
			log.Debugf("Package doesn't declare a content type, sniffed %s", contentType)
		}
		kind := common.KindForContentType(contentType)
		dataHash := util.GetSha256Base64OfBytes(payload)

		var dimensions *ImageDimensions
		if kind == common.KindImage {
			if w, h, ok := util.GetImageDimensions(payload); ok {
				dimensions = &ImageDimensions{Width: w, Height: h}
			} else {
				log.Debug("Couldn't probe image dimensions")
			}
		}

		fileName := path.Base(location.PartUri)
		id := ids.NewUniqueId()

		encoded, err := placeholder.Encode(kind, placeholder.Metadata{
			Id:          id,
			FileName:    fileName,
			ContentType: contentType,
			DataHash:    dataHash,
		})
		if err != nil {
			return nil, err
		}
		if len(encoded) >= len(payload) {
			log.Debugf("Payload (%s) is no larger than its placeholder, leaving it alone", humanize.Bytes(uint64(len(payload))))
			continue
		}

		ext := path.Ext(location.PartUri)
		if ext == "" {
			ext = util.ExtensionForContentType(contentType)
		}
		if ext == "" {
			ext = ".bin"
		}
		storedName := id + ext
		if err = os.WriteFile(filepath.Join(mediaDir, storedName), payload, 0644); err != nil {
			return nil, err
		}

		if err = pkg.WritePart(location.PartUri, encoded); err != nil {
			return nil, err
		}

		manifest.Append(&MediaRecord{
			Id:               id,
			OriginalFileName: fileName,
			MediaType:        kind,
			ContentType:      contentType,
			OriginalSize:     int64(len(payload)),
			PartUri:          location.PartUri,
			SavedFilePath:    MediaDirName + "/" + storedName,
			DataHash:         dataHash,
			ImageDimensions:  dimensions,
		})
		reclaimed += int64(len(payload)) - int64(len(encoded))

		log.Infof("Swapped out %s %s (%s)", kind, fileName, humanize.Bytes(uint64(len(payload))))
	}

	return &SwapOutResult{
		Manifest:       manifest,
		Count:          len(manifest.MediaFiles),
		BytesReclaimed: reclaimed,
	}, nil
}
