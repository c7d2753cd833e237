package placeholder

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/pkg/errors"
)

// PNG chunk-level plumbing. A PNG is an 8-byte signature followed by chunks
// of [4-byte big-endian length][4-byte type][data][4-byte CRC-32 over
// type+data], ending with a zero-length IEND chunk. The CRC is the standard
// reflected-table IEEE polynomial, which is exactly crc32.IEEE; the table is
// precomputed once by the stdlib.

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

const iendType = "IEND"
const textType = "tEXt"

// walkChunks calls fn for each well-formed chunk until fn returns false or
// the stream ends. A stream without the PNG signature reports false; a
// truncated or malformed tail simply stops the walk. Chunk order is not
// assumed beyond the signature coming first and IEND ending the stream.
func walkChunks(b []byte, fn func(chunkType string, data []byte) bool) bool {
	if len(b) < len(pngSignature) || !bytes.Equal(b[:len(pngSignature)], pngSignature) {
		return false
	}

	offset := len(pngSignature)
	for offset+12 <= len(b) {
		length := int(binary.BigEndian.Uint32(b[offset : offset+4]))
		if length < 0 || offset+12+length > len(b) {
			break // truncated chunk
		}
		chunkType := string(b[offset+4 : offset+8])
		data := b[offset+8 : offset+8+length]
		if !fn(chunkType, data) {
			break
		}
		if chunkType == iendType {
			break
		}
		offset += 12 + length
	}
	return true
}

// insertTextChunk returns a copy of png with a tEXt chunk carrying
// keyword\0text inserted immediately before the IEND chunk.
func insertTextChunk(png []byte, keyword string, text []byte) ([]byte, error) {
	if len(png) < len(pngSignature) || !bytes.Equal(png[:len(pngSignature)], pngSignature) {
		return nil, errors.New("payload is not a png stream")
	}

	iendAt := -1
	offset := len(pngSignature)
	for offset+12 <= len(png) {
		length := int(binary.BigEndian.Uint32(png[offset : offset+4]))
		if length < 0 || offset+12+length > len(png) {
			break
		}
		if string(png[offset+4:offset+8]) == iendType {
			iendAt = offset
			break
		}
		offset += 12 + length
	}
	if iendAt < 0 {
		return nil, errors.New("png stream has no IEND chunk")
	}

	typeAndData := make([]byte, 0, 4+len(keyword)+1+len(text))
	typeAndData = append(typeAndData, textType...)
	typeAndData = append(typeAndData, keyword...)
	typeAndData = append(typeAndData, 0)
	typeAndData = append(typeAndData, text...)

	var word [4]byte
	chunk := make([]byte, 0, 8+len(typeAndData)+4)
	binary.BigEndian.PutUint32(word[:], uint32(len(typeAndData)-4))
	chunk = append(chunk, word[:]...)
	chunk = append(chunk, typeAndData...)
	binary.BigEndian.PutUint32(word[:], crc32.ChecksumIEEE(typeAndData))
	chunk = append(chunk, word[:]...)

	out := make([]byte, 0, len(png)+len(chunk))
	out = append(out, png[:iendAt]...)
	out = append(out, chunk...)
	out = append(out, png[iendAt:]...)
	return out, nil
}

// findTextChunk scans for a tEXt chunk with the given keyword and returns its
// value bytes. Absence (including "not a png at all") is not an error.
func findTextChunk(b []byte, keyword string) ([]byte, bool) {
	var value []byte
	found := false
	walkChunks(b, func(chunkType string, data []byte) bool {
		if chunkType != textType {
			return true
		}
		sep := bytes.IndexByte(data, 0)
		if sep < 0 {
			return true
		}
		if string(data[:sep]) != keyword {
			return true
		}
		value = data[sep+1:]
		found = true
		return false
	})
	return value, found
}
