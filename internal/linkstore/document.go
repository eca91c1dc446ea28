package linkstore

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// DocumentVersion is the link document schema version this build reads and
// writes. Documents carrying any other version are rejected rather than
// silently migrated.
const DocumentVersion = "1.0"

// document is the on-disk envelope of links.json.
type document struct {
	Version string       `json:"version"`
	Links   []types.Link `json:"links"`
}

// encodeDocument renders links as an indented JSON document with a trailing
// newline. Output is deterministic for a given link order so the file diffs
// cleanly under version control.
func encodeDocument(links []types.Link) ([]byte, error) {
	if links == nil {
		links = []types.Link{}
	}
	doc := document{Version: DocumentVersion, Links: links}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding link document: %w", err)
	}
	return append(data, '\n'), nil
}

// decodeDocument parses a link document. Malformed JSON and unsupported
// versions both surface as parse failures; the store never guesses at the
// contents of a corrupt compliance record.
func decodeDocument(data []byte) ([]types.Link, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding link document: %v: %w", err, types.ErrParse)
	}
	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("unsupported link document version %q: %w", doc.Version, types.ErrParse)
	}
	if doc.Links == nil {
		return []types.Link{}, nil
	}
	return doc.Links, nil
}
