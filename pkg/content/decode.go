package content

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nekodev/skillring/pkg/errors"
)

// Format is a deck file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported deck file %q (want .json or .toml)", filepath.Base(path))
	}
}

// Decode reads a deck from r and normalizes it.
func Decode(r io.Reader, f Format) (*Deck, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidContent, err, "read deck")
	}

	var d Deck
	switch f {
	case FormatJSON:
		err = decodeJSON(data, &d)
	case FormatTOML:
		_, err = toml.Decode(string(data), &d)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown deck format %q", f)
	}
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s deck", f)
	}

	if err := d.Normalize(); err != nil {
		return nil, err
	}
	return &d, nil
}

// decodeJSON accepts either a bare array of cards or a {"cards": [...]}
// object.
func decodeJSON(data []byte, d *Deck) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &d.Cards)
	}
	return json.Unmarshal(trimmed, d)
}

// LoadFile reads a deck file, choosing the format by extension.
func LoadFile(path string) (*Deck, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "deck file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open deck file")
	}
	defer file.Close()
	return Decode(file, f)
}
