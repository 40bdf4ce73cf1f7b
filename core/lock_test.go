package core

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func sampleEntry(filename string, side string) LockEntry {
	return LockEntry{
		Filename:  filename,
		Side:      side,
		Downloads: []string{"https://cdn.modrinth.com/data/xx/versions/yy/" + filename},
		Hashes:    map[string]string{"sha512": "abc123"},
		FileSize:  12345,
	}
}

func TestSortEntriesCaseInsensitive(t *testing.T) {
	entries := []LockEntry{
		sampleEntry("Sodium.jar", UniversalSide),
		sampleEntry("lithium.jar", UniversalSide),
		sampleEntry("Iris.jar", ClientSide),
	}
	SortEntries(entries)

	want := []string{"Iris.jar", "lithium.jar", "Sodium.jar"}
	for i, name := range want {
		if entries[i].Filename != name {
			t.Errorf("position %d: expected %s, got %s", i, name, entries[i].Filename)
		}
	}
}

func TestSortEntriesStableOnCaseTies(t *testing.T) {
	entries := []LockEntry{
		sampleEntry("MOD.jar", ClientSide),
		sampleEntry("mod.jar", ServerSide),
	}
	SortEntries(entries)
	if entries[0].Filename != "MOD.jar" || entries[1].Filename != "mod.jar" {
		t.Errorf("case-only ties must keep input order, got %s then %s", entries[0].Filename, entries[1].Filename)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mods.lock.json")
	entries := []LockEntry{
		sampleEntry("a.jar", UniversalSide),
		sampleEntry("b.jar", ServerSide),
	}
	entries[1].Hashes = map[string]string{"sha1": "def", "sha512": "abc"}

	if err := WriteManifest(path, entries); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	loaded, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(entries, loaded) {
		t.Errorf("round trip mismatch:\nwrote %+v\nread  %+v", entries, loaded)
	}
}

func TestWriteManifestEmptyIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.lock.json")
	if err := WriteManifest(path, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]\n" {
		t.Errorf("expected an empty JSON array, got %q", string(data))
	}
}

func TestWriteManifestDeterministic(t *testing.T) {
	dir := t.TempDir()
	entries := []LockEntry{
		sampleEntry("b.jar", UniversalSide),
		sampleEntry("A.jar", ClientSide),
	}
	SortEntries(entries)

	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	if err := WriteManifest(first, entries); err != nil {
		t.Fatal(err)
	}
	if err := WriteManifest(second, entries); err != nil {
		t.Fatal(err)
	}
	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if string(a) != string(b) {
		t.Error("identical manifests must serialise byte-identically")
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.json"))
	var missing *MissingArtifactError
	if !errors.As(err, &missing) {
		t.Fatalf("expected a MissingArtifactError, got %T: %v", err, err)
	}
}

func expectSchemaError(t *testing.T, content string) *SchemaError {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bad.lock.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadManifest(path)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected a SchemaError, got %T: %v", err, err)
	}
	return schemaErr
}

func TestLoadManifestInvalidJSON(t *testing.T) {
	expectSchemaError(t, "{not json")
}

func TestLoadManifestRejectsBadSide(t *testing.T) {
	schemaErr := expectSchemaError(t, `[{"filename":"a.jar","side":"everywhere","downloads":["https://x/a.jar"],"hashes":{"sha1":"ab"},"fileSize":1}]`)
	if schemaErr.Path != "bad.lock.json[0].side" {
		t.Errorf("unexpected error path %q", schemaErr.Path)
	}
}

func TestLoadManifestRejectsMissingHashes(t *testing.T) {
	schemaErr := expectSchemaError(t, `[{"filename":"a.jar","side":"both","downloads":["https://x/a.jar"],"hashes":{"md5":"ab"},"fileSize":1}]`)
	if schemaErr.Path != "bad.lock.json[0].hashes" {
		t.Errorf("unexpected error path %q", schemaErr.Path)
	}
}

func TestLoadManifestRejectsZeroSize(t *testing.T) {
	expectSchemaError(t, `[{"filename":"a.jar","side":"both","downloads":["https://x/a.jar"],"hashes":{"sha1":"ab"},"fileSize":0}]`)
}

func TestLoadManifestRejectsBadDownloadURL(t *testing.T) {
	expectSchemaError(t, `[{"filename":"a.jar","side":"both","downloads":["not a url"],"hashes":{"sha1":"ab"},"fileSize":1}]`)
}

func TestLoadTemplateRequiredKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.template.json")
	content := `{"formatVersion":1,"game":"minecraft","name":"p","versionId":"v"}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadTemplate(path)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected a SchemaError, got %T: %v", err, err)
	}
}

func TestLoadTemplateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.template.json")
	template := Template{
		FormatVersion: FormatVersion,
		Game:          Game,
		Name:          "p",
		Summary:       "s",
		VersionID:     "v",
		Dependencies:  map[string]string{"minecraft": "1.20.1", "fabric": "0.15.11"},
	}
	if err := WriteJSON(path, template); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadTemplate(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(template, loaded) {
		t.Errorf("round trip mismatch:\nwrote %+v\nread  %+v", template, loaded)
	}
}
