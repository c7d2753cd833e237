package swap

import (
	"os"
	"path/filepath"

	"github.com/deckslim/deckslim/common/rcontext"
	"github.com/deckslim/deckslim/pptx"
	"github.com/deckslim/deckslim/util"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// SwapIn restores original payloads from storageRoot into the package,
// walking the manifest in record order. Missing stored files, fingerprint
// mismatches and unmatched records are warnings, never fatal: the returned
// count reflects only the records actually rewritten.
func SwapIn(ctx rcontext.RequestContext, pkg *pptx.Package, manifest *Manifest, storageRoot string) (int, error) {
	locations, err := pkg.MediaLocations()
	if err != nil {
		return 0, err
	}
	m := newMatcher(locations)

	restored := 0
	for _, record := range manifest.MediaFiles {
		log := ctx.Log.WithFields(logrus.Fields{
			"id":      record.Id,
			"partUri": record.PartUri,
		})

		storedPath := filepath.Join(storageRoot, filepath.FromSlash(record.SavedFilePath))
		payload, err := os.ReadFile(storedPath)
		if err != nil {
			log.Warnf("Stored file %s is missing - skipping record", record.SavedFilePath)
			continue
		}

		if record.DataHash != "" && util.GetSha256Base64OfBytes(payload) != record.DataHash {
			log.Warnf("Stored file %s doesn't match its recorded fingerprint - skipping record", record.SavedFilePath)
			continue
		}

		target := m.Find(pkg, record)
		if target == nil {
			log.Warn("No matching location in the package - skipping record")
			continue
		}

		if err = pkg.WritePart(target.PartUri, payload); err != nil {
			return restored, err
		}
		restored++
		log.Infof("Restored %s into %s (%s)", record.OriginalFileName, target.PartUri, humanize.Bytes(uint64(len(payload))))
	}

	return restored, nil
}
