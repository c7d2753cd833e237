package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/deckslim/deckslim/common"
	"github.com/pkg/errors"
)

const contentTypesPart = "[Content_Types].xml"

// Package is an OPC (Open Packaging Conventions) zip container held fully in
// memory. Parts are addressed by their part URI ("/ppt/media/image1.png");
// payloads can be overwritten in place and the whole package written back out
// with SaveTo. The original entry order is preserved on save.
type Package struct {
	fileName string
	names    []string
	parts    map[string][]byte

	defaults  map[string]string // extension (lowercase, no dot) -> content type
	overrides map[string]string // part URI -> content type
}

type contentTypesXml struct {
	XMLName  xml.Name `xml:"Types"`
	Defaults []struct {
		Extension   string `xml:"Extension,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Default"`
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

func Open(filePath string) (*Package, error) {
	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrPackageNotFound
		}
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	return OpenReader(f, stat.Size(), filepath.Base(filePath))
}

func OpenReader(r io.ReaderAt, size int64, fileName string) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open package")
	}

	pkg := &Package{
		fileName:  fileName,
		names:     make([]string, 0),
		parts:     make(map[string][]byte),
		defaults:  make(map[string]string),
		overrides: make(map[string]string),
	}

	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		ef, err := entry.Open()
		if err != nil {
			return nil, errors.Wrap(err, "failed to read "+entry.Name)
		}
		b, err := io.ReadAll(ef)
		_ = ef.Close()
		if err != nil {
			return nil, errors.Wrap(err, "failed to read "+entry.Name)
		}
		pkg.names = append(pkg.names, entry.Name)
		pkg.parts[entry.Name] = b
	}

	if err = pkg.parseContentTypes(); err != nil {
		return nil, err
	}

	return pkg, nil
}

func (p *Package) parseContentTypes() error {
	b, ok := p.parts[contentTypesPart]
	if !ok {
		return errors.New("package has no " + contentTypesPart)
	}

	types := &contentTypesXml{}
	if err := xml.Unmarshal(b, types); err != nil {
		return errors.Wrap(err, "failed to parse "+contentTypesPart)
	}
	for _, d := range types.Defaults {
		p.defaults[strings.ToLower(d.Extension)] = d.ContentType
	}
	for _, o := range types.Overrides {
		p.overrides[o.PartName] = o.ContentType
	}
	return nil
}

func (p *Package) FileName() string {
	return p.fileName
}

// ContentTypeOf resolves a part's declared content type from the package's
// content type table. Returns an empty string when the table has no answer.
func (p *Package) ContentTypeOf(partUri string) string {
	if ct, ok := p.overrides[partUri]; ok {
		return ct
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(partUri)), ".")
	return p.defaults[ext]
}

func (p *Package) ReadPart(partUri string) ([]byte, error) {
	b, ok := p.parts[zipName(partUri)]
	if !ok {
		return nil, errors.Wrap(common.ErrPartNotFound, partUri)
	}
	return b, nil
}

// WritePart overwrites an existing part's payload. New parts cannot be
// introduced this way: the package's structure is owned by whatever tool
// produced it.
func (p *Package) WritePart(partUri string, b []byte) error {
	name := zipName(partUri)
	if _, ok := p.parts[name]; !ok {
		return errors.Wrap(common.ErrPartNotFound, partUri)
	}
	p.parts[name] = b
	return nil
}

func (p *Package) SaveTo(filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(f)
	for _, name := range p.names {
		w, err := zw.Create(name)
		if err != nil {
			_ = f.Close()
			return err
		}
		if _, err = io.Copy(w, bytes.NewReader(p.parts[name])); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err = zw.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func zipName(partUri string) string {
	return strings.TrimPrefix(partUri, "/")
}
