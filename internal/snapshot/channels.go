package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ziadkadry99/orgchart/internal/ids"
)

// channelInfo is the per-channel value in the channel lookup file. Only
// the display name matters for options; other fields are ignored.
type channelInfo struct {
	Name string `json:"name"`
}

// ParseChannelOptions reads the channel lookup map and produces dropdown
// options in the file's key order. A plain json.Unmarshal into a Go map
// would lose that order, so the document is walked token by token.
func ParseChannelOptions(r io.Reader) ([]ChannelOption, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &ParseError{Err: fmt.Errorf("channel lookup must be a JSON object, got %v", tok)}
	}

	var options []ChannelOption
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, &ParseError{Err: fmt.Errorf("unexpected token %v for channel key", keyTok)}
		}

		var info channelInfo
		if err := dec.Decode(&info); err != nil {
			return nil, &ParseError{Err: fmt.Errorf("channel %q: %w", key, err)}
		}

		options = append(options, ChannelOption{
			Label: info.Name,
			Value: ids.ChannelID(key),
		})
	}

	// More() reports false on malformed input without surfacing the
	// error; reading the closing brace does.
	if _, err := dec.Token(); err != nil {
		return nil, &ParseError{Err: err}
	}

	return options, nil
}

// LoadChannelOptions reads channel options from a file.
func LoadChannelOptions(path string) ([]ChannelOption, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening channel lookup %s: %w", path, err)
	}
	defer f.Close()

	options, err := ParseChannelOptions(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return options, nil
}
