// Package tablecache is a CLI convenience, not part of the core: it lets
// "sturgeon build --cache FILE" skip re-running table construction for an
// unchanged grammar by persisting the rendered table alongside a hash of
// the grammar source and the flavor it was built under. This is exactly
// the rezi.EncBinary/rezi.DecBinary pattern the teacher uses in
// server/dao/sqlite to persist a binary-marshaled blob alongside a SQL
// row, lifted out to a flat file since there is no database here.
//
// Per spec §6, the core itself persists nothing; this cache sits entirely
// outside build/parse and is invalidated by any change to the grammar
// text or the requested flavor.
package tablecache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/dekarrin/rezi"
)

// Entry is the cached artifact: enough to decide whether a cache hit
// applies, plus the rendered table text to print on a hit.
type Entry struct {
	GrammarHash string
	Flavor      string
	Rendered    string
}

// MarshalBinary implements encoding.BinaryMarshaler so rezi.EncBinary can
// serialize an Entry.
func (e *Entry) MarshalBinary() ([]byte, error) {
	hash, err := rezi.Enc(e.GrammarHash)
	if err != nil {
		return nil, err
	}
	flavor, err := rezi.Enc(e.Flavor)
	if err != nil {
		return nil, err
	}
	rendered, err := rezi.Enc(e.Rendered)
	if err != nil {
		return nil, err
	}
	out := append(hash, flavor...)
	out = append(out, rendered...)
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler so rezi.DecBinary
// can reconstruct an Entry.
func (e *Entry) UnmarshalBinary(data []byte) error {
	n, err := rezi.Dec(data, &e.GrammarHash)
	if err != nil {
		return err
	}
	data = data[n:]

	n, err = rezi.Dec(data, &e.Flavor)
	if err != nil {
		return err
	}
	data = data[n:]

	_, err = rezi.Dec(data, &e.Rendered)
	return err
}

// HashGrammar fingerprints grammar source text for cache-key comparison.
func HashGrammar(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// Save writes entry to path as a rezi-encoded binary blob.
func Save(path string, entry Entry) error {
	data := rezi.EncBinary(&entry)
	return os.WriteFile(path, data, 0o644)
}

// Load reads and decodes the cache file at path. A missing file is
// reported as (Entry{}, false, nil): there is simply no cache yet.
func Load(path string) (Entry, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Entry{}, false, nil
	} else if err != nil {
		return Entry{}, false, err
	}

	var entry Entry
	if _, err := rezi.DecBinary(data, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("tablecache: corrupt cache file %s: %w", path, err)
	}
	return entry, true, nil
}

// Hit reports whether entry is still valid for the given grammar source
// and flavor.
func (e Entry) Hit(grammarHash, flavor string) bool {
	return e.GrammarHash == grammarHash && e.Flavor == flavor
}
