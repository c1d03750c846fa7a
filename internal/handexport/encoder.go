package handexport

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/sessionstats/internal/session"
)

// Encode writes hands to the provided writer as a sectioned TOML document.
// Section keys are zero-padded so decoders reading tables in key order see
// hands in sequence.
func Encode(w io.Writer, hands []session.Hand) error {
	if len(hands) == 0 {
		return fmt.Errorf("handexport: no hands to encode")
	}

	sections := make(map[string]Hand, len(hands))
	for i := range hands {
		key := fmt.Sprintf("hand_%04d", i+1)
		sections[key] = FromHand(&hands[i])
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(sections)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hands []session.Hand) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, hands); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}
