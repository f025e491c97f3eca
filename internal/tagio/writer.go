package tagio

import (
	"bytes"
	"fmt"
	"os"
)

// vendorString is written into the Vorbis comment header's vendor field.
const vendorString = "helictag"

// WriteTags rewrites path's tag container in place: ID3v2 files are
// migrated to 2.3 (spec.md §4.11) and the tag region is replaced; FLAC
// files have their VORBIS_COMMENT metadata block replaced, leaving
// STREAMINFO, SEEKTABLE, PICTURE and other blocks untouched.
func WriteTags(path string, c Container) error {
	switch c.Type() {
	case TypeID3v22, TypeID3v23, TypeID3v24:
		return writeID3v2File(path, c)
	case TypeVorbis:
		return writeFLACFile(path, c)
	default:
		return fmt.Errorf("tagio: write %s: unsupported container type", path)
	}
}

// writeID3v2File strips any existing ID3v2 header from the front of the
// file and prepends the freshly encoded ID3v2.3 tag.
func writeID3v2File(path string, c Container) error {
	orig, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tagio: read %s: %w", path, err)
	}

	audio := orig
	if len(orig) >= 10 && string(orig[0:3]) == "ID3" {
		size := synchsafeToUint32(orig[6:10])
		end := 10 + int(size)
		if end <= len(orig) {
			audio = orig[end:]
		}
	}

	tagBytes, err := EncodeID3v2(c)
	if err != nil {
		return fmt.Errorf("tagio: encode %s: %w", path, err)
	}

	return atomicWrite(path, append(tagBytes, audio...))
}

func synchsafeToUint32(b []byte) uint32 {
	return uint32(b[0])<<21 | uint32(b[1])<<14 | uint32(b[2])<<7 | uint32(b[3])
}

// flacBlockHeader is the 4-byte header preceding every FLAC metadata block:
// 1 bit "last block" flag, 7 bit type, 24 bit length.
type flacBlockHeader struct {
	last      bool
	blockType byte
	length    int
}

func parseFLACBlockHeader(b []byte) flacBlockHeader {
	return flacBlockHeader{
		last:      b[0]&0x80 != 0,
		blockType: b[0] & 0x7f,
		length:    int(b[1])<<16 | int(b[2])<<8 | int(b[3]),
	}
}

func encodeFLACBlockHeader(h flacBlockHeader) []byte {
	first := h.blockType & 0x7f
	if h.last {
		first |= 0x80
	}
	return []byte{first, byte(h.length >> 16), byte(h.length >> 8), byte(h.length)}
}

const flacVorbisCommentBlockType = 4

// writeFLACFile replaces the VORBIS_COMMENT metadata block in a FLAC file,
// preserving every other block and the audio frames that follow them.
func writeFLACFile(path string, c Container) error {
	orig, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tagio: read %s: %w", path, err)
	}
	if len(orig) < 4 || string(orig[0:4]) != "fLaC" {
		return fmt.Errorf("tagio: %s is not a FLAC file", path)
	}

	newComment, err := EncodeVorbisComment(c, vendorString)
	if err != nil {
		return fmt.Errorf("tagio: encode vorbis comment: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("fLaC")

	offset := 4
	replaced := false
	for offset < len(orig) {
		if offset+4 > len(orig) {
			break
		}
		h := parseFLACBlockHeader(orig[offset : offset+4])
		blockStart := offset + 4
		blockEnd := blockStart + h.length

		if h.blockType == flacVorbisCommentBlockType {
			newHeader := encodeFLACBlockHeader(flacBlockHeader{
				last:      h.last,
				blockType: flacVorbisCommentBlockType,
				length:    len(newComment),
			})
			out.Write(newHeader)
			out.Write(newComment)
			replaced = true
		} else {
			out.Write(orig[offset:blockEnd])
		}

		offset = blockEnd
		if h.last {
			break
		}
	}
	out.Write(orig[offset:])

	if !replaced {
		// No existing VORBIS_COMMENT block: insert one as the new last
		// metadata block, demoting whatever block used to be last.
		return insertFLACCommentBlock(path, orig, newComment)
	}

	return atomicWrite(path, out.Bytes())
}

func insertFLACCommentBlock(path string, orig []byte, newComment []byte) error {
	var out bytes.Buffer
	out.WriteString("fLaC")

	offset := 4
	for offset < len(orig) {
		h := parseFLACBlockHeader(orig[offset : offset+4])
		blockStart := offset + 4
		blockEnd := blockStart + h.length
		if h.last {
			demoted := h
			demoted.last = false
			out.Write(encodeFLACBlockHeader(demoted))
			out.Write(orig[blockStart:blockEnd])
			out.Write(encodeFLACBlockHeader(flacBlockHeader{last: true, blockType: flacVorbisCommentBlockType, length: len(newComment)}))
			out.Write(newComment)
			offset = blockEnd
			break
		}
		out.Write(orig[offset:blockEnd])
		offset = blockEnd
	}
	out.Write(orig[offset:])
	return atomicWrite(path, out.Bytes())
}

// atomicWrite writes data to a temp file beside path, fsyncs it, then
// renames over the original — the same durable-write idiom importer.Move
// uses for cross-filesystem moves (spec.md §4.11, §5).
func atomicWrite(path string, data []byte) error {
	tmp := path + ".helictag-tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("tagio: create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("tagio: write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("tagio: sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("tagio: close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("tagio: rename temp file: %w", err)
	}
	return nil
}

// New constructs an empty Container of the given type, for files being
// tagged from scratch (e.g. freshly written by a previous importer pass).
func New(t Type) Container {
	switch t {
	case TypeVorbis:
		return &vorbisContainer{fields: map[string][]string{}}
	default:
		minor := 3
		if t == TypeID3v22 {
			minor = 2
		} else if t == TypeID3v24 {
			minor = 4
		}
		return &id3v2Container{minorVersion: minor, frames: map[string][]string{}, txxx: map[string][]string{}}
	}
}
