package common

import (
	"errors"
)

var ErrPackageNotFound = errors.New("package not found")
var ErrManifestNotFound = errors.New("manifest not found")
var ErrInvalidManifest = errors.New("invalid manifest")
var ErrPartNotFound = errors.New("part not found")
