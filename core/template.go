package core

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
)

// FormatVersion is the Modrinth pack format version emitted in templates and
// index documents.
const FormatVersion = 1

// Game is the game identifier for every pack built by this tool.
const Game = "minecraft"

// Template is the pack metadata shared by every built index document. It is
// rendered by the resolve command and read back by the build command.
type Template struct {
	FormatVersion uint32            `json:"formatVersion"`
	Game          string            `json:"game"`
	Name          string            `json:"name"`
	Summary       string            `json:"summary"`
	VersionID     string            `json:"versionId"`
	Dependencies  map[string]string `json:"dependencies"`
}

var requiredTemplateKeys = []string{"formatVersion", "game", "name", "summary", "versionId", "dependencies"}

// LoadTemplate reads a rendered template and enforces its required keys.
func LoadTemplate(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Template{}, &MissingArtifactError{Path: path}
		}
		return Template{}, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Template{}, &SchemaError{Path: path, Reason: err.Error()}
	}
	var missing []string
	for _, key := range requiredTemplateKeys {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Template{}, &SchemaError{Path: path, Reason: "missing required keys: " + joinKeys(missing)}
	}

	var template Template
	if err := json.Unmarshal(data, &template); err != nil {
		return Template{}, &SchemaError{Path: path, Reason: err.Error()}
	}
	return template, nil
}

// WriteJSON serialises v with the fixed artifact formatting (2-space indent,
// newline-terminated) and writes it in a single shot, creating parent
// directories as needed. Nothing is written if serialisation fails.
func WriteJSON(path string, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
