package host

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Metadata is the host's attachment metadata record. File is relative to
// the upload base directory; every size file is a bare file name living
// next to the original.
type Metadata struct {
	File   string `json:"file,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Sizes  Sizes  `json:"sizes,omitempty"`
}

// Size is one generated variant.
type Size struct {
	Name     string `json:"-"`
	File     string `json:"file,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	MimeType string `json:"mime-type,omitempty"`
}

// Sizes keeps variants in the order the host listed them. It encodes as a
// JSON object keyed by size name.
type Sizes []Size

func (s Sizes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, size := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(size.Name)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(size)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Sizes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch tok {
	case nil:
		*s = nil
		return nil
	case json.Delim('{'):
	case json.Delim('['):
		// an empty sizes list is serialised as an array by some hosts
		var list []Size
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("sizes: %w", err)
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("sizes: unexpected token %v", tok)
	}

	var out Sizes
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("sizes: unexpected key %v", keyTok)
		}
		var size Size
		if err := dec.Decode(&size); err != nil {
			return fmt.Errorf("sizes %q: %w", name, err)
		}
		size.Name = name
		out = append(out, size)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}
