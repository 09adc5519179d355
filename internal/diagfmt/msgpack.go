package diagfmt

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"wisp/internal/source"
	"wisp/internal/token"
)

// Current schema version - increment when TokenDump format changes
const tokenDumpSchemaVersion uint16 = 1

// TokenRecord is the compact wire form of a single token.
type TokenRecord struct {
	Kind  uint8
	Start uint32
	End   uint32
	Pos   uint32
	Text  string
}

// TokenDump is the msgpack payload for a tokenized file. ContentHash
// binds the dump to the exact source bytes it was produced from.
type TokenDump struct {
	// Schema version for safe invalidation when format changes
	Schema      uint16
	Path        string
	ContentHash [32]byte
	Tokens      []TokenRecord
}

// FormatTokensMsgpack serializes the token stream as a schema-versioned
// msgpack payload.
func FormatTokensMsgpack(w io.Writer, file *source.File, tokens []token.Token) error {
	dump := TokenDump{
		Schema:      tokenDumpSchemaVersion,
		Path:        file.Path,
		ContentHash: file.Hash,
		Tokens:      make([]TokenRecord, 0, len(tokens)),
	}

	for _, tok := range tokens {
		dump.Tokens = append(dump.Tokens, TokenRecord{
			Kind:  uint8(tok.Kind),
			Start: tok.Span.Start,
			End:   tok.Span.End,
			Pos:   tok.Pos,
			Text:  tok.Text,
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	enc := msgpack.NewEncoder(w)
	return enc.Encode(&dump)
}

// ReadTokensMsgpack decodes a payload written by FormatTokensMsgpack and
// rejects dumps with an unknown schema version.
func ReadTokensMsgpack(r io.Reader) (*TokenDump, error) {
	var dump TokenDump
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&dump); err != nil {
		return nil, err
	}
	if dump.Schema != tokenDumpSchemaVersion {
		return nil, fmt.Errorf("unsupported token dump schema %d (want %d)", dump.Schema, tokenDumpSchemaVersion)
	}
	return &dump, nil
}
