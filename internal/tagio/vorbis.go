package tagio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"

	"helictag/internal/tagkey"
)

// vorbisContainer holds Vorbis comment fields keyed by uppercase field name.
// Read via dhowden/tag's FLAC parser; dhowden/tag exposes only a single
// value per field name (its Raw() is a plain map), so a file with repeated
// fields (multiple PERFORMER entries) round-trips only its last-seen value
// per field through the read path — a documented dhowden/tag limitation,
// not a helictag one. Writing supports true multi-valued fields.
type vorbisContainer struct {
	fields map[string][]string
}

func readVorbis(path string) (Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tagio: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("tagio: read vorbis %s: %w", path, err)
	}

	c := &vorbisContainer{fields: map[string][]string{}}
	for k, v := range m.Raw() {
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		c.fields[strings.ToUpper(k)] = append(c.fields[strings.ToUpper(k)], s)
	}
	return c, nil
}

func (c *vorbisContainer) Type() Type { return TypeVorbis }

func (c *vorbisContainer) Get(key tagkey.Key) (string, bool) {
	vs := c.GetMultiple(key)
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func (c *vorbisContainer) GetMultiple(key tagkey.Key) []string {
	field, ok := tagkey.Vorbis(key)
	if !ok {
		return nil
	}
	if key.Instrument() != "" {
		return c.performerValues(key.Instrument())
	}
	return c.fields[field]
}

// performerValues filters the raw PERFORMER field for entries tagged with
// the given instrument, stored as "instrument|name" by SetPerformers.
func (c *vorbisContainer) performerValues(instrument string) []string {
	var out []string
	prefix := instrument + "|"
	for _, v := range c.fields["PERFORMER"] {
		if strings.HasPrefix(v, prefix) {
			out = append(out, strings.TrimPrefix(v, prefix))
		}
	}
	return out
}

func (c *vorbisContainer) Set(key tagkey.Key, value string) {
	c.SetMultiple(key, []string{value})
}

func (c *vorbisContainer) SetMultiple(key tagkey.Key, values []string) {
	field, ok := tagkey.Vorbis(key)
	if !ok {
		return
	}
	if key.Instrument() != "" {
		c.setPerformerValues(key.Instrument(), values)
		return
	}
	c.fields[field] = values
}

func (c *vorbisContainer) setPerformerValues(instrument string, values []string) {
	var remaining []string
	prefix := instrument + "|"
	for _, v := range c.fields["PERFORMER"] {
		if !strings.HasPrefix(v, prefix) {
			remaining = append(remaining, v)
		}
	}
	for _, v := range values {
		remaining = append(remaining, prefix+v)
	}
	c.fields["PERFORMER"] = remaining
}

func (c *vorbisContainer) Clear(key tagkey.Key) {
	field, ok := tagkey.Vorbis(key)
	if !ok {
		return
	}
	if key.Instrument() != "" {
		c.setPerformerValues(key.Instrument(), nil)
		return
	}
	delete(c.fields, field)
}

func (c *vorbisContainer) Performers() []tagkey.PerformerCredit {
	var out []tagkey.PerformerCredit
	for _, v := range c.fields["PERFORMER"] {
		parts := strings.SplitN(v, "|", 2)
		if len(parts) != 2 {
			continue
		}
		out = append(out, tagkey.PerformerCredit{Involvement: parts[0], Involvee: parts[1]})
	}
	return out
}

func (c *vorbisContainer) SetPerformers(credits []tagkey.PerformerCredit) {
	delete(c.fields, "PERFORMER")
	var values []string
	for _, cr := range credits {
		values = append(values, cr.Involvement+"|"+cr.Involvee)
	}
	if len(values) > 0 {
		c.fields["PERFORMER"] = values
	}
}

func (c *vorbisContainer) Raw() map[string][]string {
	out := make(map[string][]string, len(c.fields))
	for k, v := range c.fields {
		out[k] = v
	}
	return out
}

// EncodeVorbisComment serializes a vorbisContainer into the Vorbis comment
// block layout dhowden/tag's reader expects: vendor string, comment count,
// then length-prefixed "KEY=value" strings.
func EncodeVorbisComment(c Container, vendor string) ([]byte, error) {
	vc, ok := c.(*vorbisContainer)
	if !ok {
		return nil, fmt.Errorf("tagio: EncodeVorbisComment called on non-Vorbis container")
	}

	var buf bytes.Buffer
	writeLenPrefixed := func(s string) {
		var l [4]byte
		binary.LittleEndian.PutUint32(l[:], uint32(len(s)))
		buf.Write(l[:])
		buf.WriteString(s)
	}
	writeLenPrefixed(vendor)

	var comments []string
	for field, values := range vc.fields {
		for _, v := range values {
			comments = append(comments, field+"="+v)
		}
	}
	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(comments)))
	buf.Write(count[:])
	for _, c := range comments {
		writeLenPrefixed(c)
	}
	return buf.Bytes(), nil
}
