package core

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// The three possible values of Side (the side an entry ships on) are
// "server", "client", and "both".
const (
	ServerSide    = "server"
	ClientSide    = "client"
	UniversalSide = "both"
)

// ValidSide reports whether side is one of the three deployment sides.
func ValidSide(side string) bool {
	return side == ServerSide || side == ClientSide || side == UniversalSide
}

// LockEntry pins exactly one distributable file for a declared project. A
// manifest is a JSON array of these, immutable once written; re-resolution
// replaces the whole file rather than patching it.
type LockEntry struct {
	Filename  string            `json:"filename"`
	Side      string            `json:"side"`
	Downloads []string          `json:"downloads"`
	Hashes    map[string]string `json:"hashes"`
	FileSize  uint64            `json:"fileSize"`
}

// SortEntries orders entries by case-insensitive filename so the manifest is
// diff-stable across reruns even when the registry reorders its responses.
// The sort is explicitly stable: filenames differing only in case keep their
// input order (exact duplicates are rejected before sorting).
func SortEntries(entries []LockEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Filename) < strings.ToLower(entries[j].Filename)
	})
}

// WriteManifest serialises a resolved manifest. An empty manifest is written
// as an empty array, not null.
func WriteManifest(path string, entries []LockEntry) error {
	if entries == nil {
		entries = []LockEntry{}
	}
	return WriteJSON(path, entries)
}

// LoadManifest reads a lock manifest back and validates every entry, so the
// build command never assembles an archive from a malformed manifest.
func LoadManifest(path string) ([]LockEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingArtifactError{Path: path}
		}
		return nil, err
	}
	var entries []LockEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &SchemaError{Path: path, Reason: err.Error()}
	}
	name := filepath.Base(path)
	for i, entry := range entries {
		if err := entry.validate(fmt.Sprintf("%s[%d]", name, i)); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (e LockEntry) validate(path string) error {
	if e.Filename == "" {
		return &SchemaError{Path: path + ".filename", Reason: "must be a non-empty string"}
	}
	if !ValidSide(e.Side) {
		return &SchemaError{Path: path + ".side", Reason: "must be one of both, client, server"}
	}
	if len(e.Downloads) == 0 {
		return &SchemaError{Path: path + ".downloads", Reason: "must be a non-empty array of URLs"}
	}
	for _, download := range e.Downloads {
		if _, err := url.ParseRequestURI(download); err != nil {
			return &SchemaError{Path: path + ".downloads", Reason: fmt.Sprintf("%q is not a valid URL", download)}
		}
	}
	if e.Hashes["sha1"] == "" && e.Hashes["sha512"] == "" {
		return &SchemaError{Path: path + ".hashes", Reason: "must include at least sha1 or sha512"}
	}
	if e.FileSize == 0 {
		return &SchemaError{Path: path + ".fileSize", Reason: "must be an integer > 0"}
	}
	return nil
}
