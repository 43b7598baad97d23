package datamapper

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
)

type imageMapper struct{}

func (imageMapper) Kind() Kind { return Image }

// TryParse passes images through unchanged and decodes the base64 PNG form
// produced by ConvertToString, or raw PNG bytes read from the database
func (imageMapper) TryParse(value interface{}) (interface{}, bool) {
	v, null, ok := prepare(value)
	if null || !ok {
		return nil, ok
	}

	switch v := v.(type) {
	case image.Image:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, true
		}
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, false
		}
		return decodeImage(raw)
	case []byte:
		if len(v) == 0 {
			return nil, true
		}
		return decodeImage(v)
	}
	return nil, false
}

func decodeImage(raw []byte) (interface{}, bool) {
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, false
	}
	return img, true
}

func encodeImage(img image.Image) ([]byte, bool) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

func (m imageMapper) ConvertToString(value interface{}) string {
	parsed, ok := m.TryParse(value)
	if !ok || parsed == nil {
		return ""
	}
	raw, ok := encodeImage(parsed.(image.Image))
	if !ok {
		return ""
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func (m imageMapper) DatabaseValue(value interface{}) (interface{}, bool) {
	parsed, ok := m.TryParse(value)
	if !ok || parsed == nil {
		return nil, ok
	}
	return encodeImage(parsed.(image.Image))
}
