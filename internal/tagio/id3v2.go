package tagio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/dhowden/tag"

	"helictag/internal/tagkey"
)

// id3v2Container holds a generic map of frame-id/TXXX-description to values,
// read via dhowden/tag and written with a hand-rolled ID3v2.3 encoder (see
// DESIGN.md: dhowden/tag has no writer).
type id3v2Container struct {
	minorVersion int // 2, 3, or 4
	frames       map[string][]string // standard frame id -> values
	txxx         map[string][]string // TXXX description -> values
}

func readID3v2(path string) (Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tagio: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("tagio: read id3v2 %s: %w", path, err)
	}

	c := &id3v2Container{frames: map[string][]string{}, txxx: map[string][]string{}}
	switch m.Format() {
	case tag.ID3v2_2:
		c.minorVersion = 2
	case tag.ID3v2_4:
		c.minorVersion = 4
	default:
		c.minorVersion = 3
	}

	// dhowden/tag's standard getters cover the common fields; Raw() carries
	// everything else (including TXXX frames) keyed by frame id.
	if v := m.Title(); v != "" {
		c.frames["TIT2"] = []string{v}
	}
	if v := m.Album(); v != "" {
		c.frames["TALB"] = []string{v}
	}
	if v := m.Artist(); v != "" {
		c.frames["TPE1"] = []string{v}
	}
	if v := m.AlbumArtist(); v != "" {
		c.frames["TPE2"] = []string{v}
	}
	if v := m.Composer(); v != "" {
		c.frames["TCOM"] = []string{v}
	}
	if v := m.Genre(); v != "" {
		c.frames["TCON"] = []string{v}
	}
	if n, total := m.Track(); n != 0 {
		if total != 0 {
			c.frames["TRCK"] = []string{fmt.Sprintf("%d/%d", n, total)}
		} else {
			c.frames["TRCK"] = []string{fmt.Sprintf("%d", n)}
		}
	}
	if n, total := m.Disc(); n != 0 {
		if total != 0 {
			c.frames["TPOS"] = []string{fmt.Sprintf("%d/%d", n, total)}
		} else {
			c.frames["TPOS"] = []string{fmt.Sprintf("%d", n)}
		}
	}

	for k, v := range m.Raw() {
		if cm, ok := v.(*tag.Comm); ok && (len(k) >= 4 && k[:4] == "TXXX" || len(k) >= 3 && k[:3] == "TXX") {
			c.txxx[cm.Description] = append(c.txxx[cm.Description], cm.Text)
		}
	}

	return c, nil
}

func (c *id3v2Container) Type() Type {
	switch c.minorVersion {
	case 2:
		return TypeID3v22
	case 4:
		return TypeID3v24
	default:
		return TypeID3v23
	}
}

func (c *id3v2Container) location(key tagkey.Key) (frame, txxxDesc string, ok bool) {
	if key.Instrument() != "" {
		return "TXXX", "PERFORMER:" + key.Instrument(), true
	}
	loc, ok := tagkey.ID3v2(key, c.minorVersion)
	if !ok {
		return "", "", false
	}
	if loc.TXXXDesc != "" {
		return "TXXX", loc.TXXXDesc, true
	}
	return loc.Frame, "", true
}

func (c *id3v2Container) Get(key tagkey.Key) (string, bool) {
	vs := c.GetMultiple(key)
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func (c *id3v2Container) GetMultiple(key tagkey.Key) []string {
	frame, desc, ok := c.location(key)
	if !ok {
		return nil
	}
	if desc != "" {
		return c.txxx[desc]
	}
	return c.frames[frame]
}

func (c *id3v2Container) Set(key tagkey.Key, value string) {
	c.SetMultiple(key, []string{value})
}

func (c *id3v2Container) SetMultiple(key tagkey.Key, values []string) {
	frame, desc, ok := c.location(key)
	if !ok {
		return
	}
	if desc != "" {
		c.txxx[desc] = values
		return
	}
	c.frames[frame] = values
}

func (c *id3v2Container) Clear(key tagkey.Key) {
	if key == tagkey.Performers {
		c.SetPerformers(nil)
		return
	}
	frame, desc, ok := c.location(key)
	if !ok {
		return
	}
	if desc != "" {
		delete(c.txxx, desc)
		return
	}
	delete(c.frames, frame)
}

func (c *id3v2Container) Performers() []tagkey.PerformerCredit {
	var out []tagkey.PerformerCredit
	for desc, values := range c.txxx {
		const prefix = "PERFORMER:"
		if len(desc) <= len(prefix) || desc[:len(prefix)] != prefix {
			continue
		}
		instrument := desc[len(prefix):]
		for _, v := range values {
			out = append(out, tagkey.PerformerCredit{Involvement: instrument, Involvee: v})
		}
	}
	return out
}

func (c *id3v2Container) SetPerformers(credits []tagkey.PerformerCredit) {
	for desc := range c.txxx {
		const prefix = "PERFORMER:"
		if len(desc) > len(prefix) && desc[:len(prefix)] == prefix {
			delete(c.txxx, desc)
		}
	}
	byInstrument := map[string][]string{}
	var order []string
	for _, cr := range credits {
		if _, seen := byInstrument[cr.Involvement]; !seen {
			order = append(order, cr.Involvement)
		}
		byInstrument[cr.Involvement] = append(byInstrument[cr.Involvement], cr.Involvee)
	}
	for _, instrument := range order {
		c.txxx["PERFORMER:"+instrument] = byInstrument[instrument]
	}
}

func (c *id3v2Container) Raw() map[string][]string {
	out := make(map[string][]string, len(c.frames)+len(c.txxx))
	for k, v := range c.frames {
		out[k] = v
	}
	for k, v := range c.txxx {
		out["TXXX:"+k] = v
	}
	return out
}

// migrateToV23 returns c normalized to ID3v2.3, the canonical write target
// (spec.md §4.11): a 2.2 or 2.4 container is copied into a new 2.3
// container (c itself is not modified); a 2.3 container is returned as is.
func (c *id3v2Container) migrateToV23() *id3v2Container {
	if c.minorVersion == 3 {
		return c
	}
	m := &id3v2Container{minorVersion: 3, frames: map[string][]string{}, txxx: map[string][]string{}}
	for k, v := range c.frames {
		// TDRC (2.4) has no direct 2.3 equivalent split; approximate by
		// keeping the year portion in TYER, matching spec.md's
		// version-dependent TDRC/TDAT/TYER note.
		if k == "TDRC" {
			years := make([]string, len(v))
			for i, s := range v {
				if len(s) > 4 {
					s = s[:4]
				}
				years[i] = s
			}
			m.frames["TYER"] = years
			continue
		}
		if k == "TDOR" {
			m.frames["TORY"] = v
			continue
		}
		m.frames[k] = v
	}
	for k, v := range c.txxx {
		m.txxx[k] = v
	}
	return m
}

// EncodeID3v2 serializes container to an ID3v2.3 tag, migrating minor
// versions first (spec.md §4.11). This writes only the text/TXXX frame
// section understood by this system; unrecognized frames already present
// in the file are left untouched by WriteTags (see writer.go).
func EncodeID3v2(c Container) ([]byte, error) {
	ic, ok := c.(*id3v2Container)
	if !ok {
		return nil, fmt.Errorf("tagio: EncodeID3v2 called on non-ID3v2 container")
	}
	ic = ic.migrateToV23()

	var body bytes.Buffer
	writeFrame := func(id string, value string) {
		payload := append([]byte{0x03}, []byte(value)...) // encoding byte 3 = UTF-8
		var hdr bytes.Buffer
		hdr.WriteString(id)
		var size [4]byte
		binary.BigEndian.PutUint32(size[:], uint32(len(payload)))
		hdr.Write(size[:])
		hdr.Write([]byte{0, 0}) // flags
		body.Write(hdr.Bytes())
		body.Write(payload)
	}
	for id, values := range ic.frames {
		if len(values) == 0 {
			continue
		}
		writeFrame(id, values[0])
	}
	for desc, values := range ic.txxx {
		for _, v := range values {
			payload := append([]byte{0x03}, []byte(desc+"\x00"+v)...)
			var hdr bytes.Buffer
			hdr.WriteString("TXXX")
			var size [4]byte
			binary.BigEndian.PutUint32(size[:], uint32(len(payload)))
			hdr.Write(size[:])
			hdr.Write([]byte{0, 0})
			body.Write(hdr.Bytes())
			body.Write(payload)
		}
	}

	var out bytes.Buffer
	out.WriteString("ID3")
	out.Write([]byte{3, 0, 0}) // version 2.3, no flags
	var size [4]byte
	putSynchsafe(size[:], uint32(body.Len()))
	out.Write(size[:])
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

func putSynchsafe(b []byte, v uint32) {
	b[0] = byte((v >> 21) & 0x7f)
	b[1] = byte((v >> 14) & 0x7f)
	b[2] = byte((v >> 7) & 0x7f)
	b[3] = byte(v & 0x7f)
}
