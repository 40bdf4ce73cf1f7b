package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writePackFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pack.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validPackToml = `
[pack]
name = "Create Hardcore Ultimate Journey"
summary = "Hardcore Create-focused journey pack"
debug_version = "0.0.0-dev"

[dependencies]
minecraft = "1.20.1"
loader = "fabric"
loader_version = "0.15.11"

[build]
slug = "chuj"
dist_dir = "dist"
default_side = "both"

[[mods.performance.mods]]
url = "https://modrinth.com/project/AANobbMI"
side = "client"
name = "Sodium"

[[mods.gameplay.mods]]
url = "https://modrinth.com/project/Xbc0uyRg"
side = "both"
version = "0.5.1f"

[[resourcepacks.visuals.packs]]
url = "https://modrinth.com/project/ZFNuXKZT"
side = "client"
`

func expectConfigError(t *testing.T, err error, path string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a ConfigError at %s, got nil", path)
	}
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected a ConfigError, got %T: %v", err, err)
	}
	if configErr.Path != path {
		t.Errorf("expected error path %q, got %q", path, configErr.Path)
	}
}

func TestLoadPackValid(t *testing.T) {
	pack, err := LoadPack(writePackFile(t, validPackToml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pack.Pack.Name != "Create Hardcore Ultimate Journey" {
		t.Errorf("unexpected pack name %q", pack.Pack.Name)
	}
	if pack.Dependencies.Loader != "fabric" {
		t.Errorf("unexpected loader %q", pack.Dependencies.Loader)
	}
	if pack.Build.Slug != "chuj" || pack.Build.DefaultSide != "both" {
		t.Errorf("unexpected build defaults %+v", pack.Build)
	}

	mods := pack.ModReferences()
	if len(mods) != 2 {
		t.Fatalf("expected 2 mod references, got %d", len(mods))
	}
	if mods[0].Name != "Sodium" || mods[0].Side != ClientSide {
		t.Errorf("unexpected first mod reference %+v", mods[0])
	}
	if mods[1].Version != "0.5.1f" {
		t.Errorf("expected second mod to be pinned, got %+v", mods[1])
	}
	if len(pack.ResourcePackReferences()) != 1 {
		t.Errorf("expected 1 resource pack reference")
	}
	if len(pack.ShaderPackReferences()) != 0 {
		t.Errorf("expected no shader pack references")
	}
}

func TestLoadPackDeclarationOrder(t *testing.T) {
	// Group order must follow the file, not Go's map iteration.
	pack, err := LoadPack(writePackFile(t, `
[pack]
name = "p"
summary = "s"
debug_version = "v"

[dependencies]
minecraft = "1.20.1"
loader = "fabric"
loader_version = "0.15.11"

[[mods.zebra.mods]]
url = "https://modrinth.com/project/first"
side = "both"

[[mods.aardvark.mods]]
url = "https://modrinth.com/project/second"
side = "both"
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mods := pack.ModReferences()
	if len(mods) != 2 {
		t.Fatalf("expected 2 mod references, got %d", len(mods))
	}
	if mods[0].URL != "https://modrinth.com/project/first" {
		t.Errorf("expected the zebra group first, got %s", mods[0].URL)
	}
}

func TestLoadPackUnsupportedLoader(t *testing.T) {
	_, err := LoadPack(writePackFile(t, `
[pack]
name = "p"
summary = "s"
debug_version = "v"

[dependencies]
minecraft = "1.20.1"
loader = "paper"
loader_version = "1.0"
`))
	expectConfigError(t, err, "dependencies.loader")
}

func TestLoadPackMissingSummary(t *testing.T) {
	_, err := LoadPack(writePackFile(t, `
[pack]
name = "p"
debug_version = "v"

[dependencies]
minecraft = "1.20.1"
loader = "fabric"
loader_version = "0.15.11"
`))
	expectConfigError(t, err, "pack.summary")
}

func TestLoadPackInvalidSide(t *testing.T) {
	_, err := LoadPack(writePackFile(t, `
[pack]
name = "p"
summary = "s"
debug_version = "v"

[dependencies]
minecraft = "1.20.1"
loader = "fabric"
loader_version = "0.15.11"

[[mods.gameplay.mods]]
url = "https://modrinth.com/project/AANobbMI"
side = "serverside"
`))
	expectConfigError(t, err, "mods.gameplay.mods[0].side")
}

func TestLoadPackMissingItemURL(t *testing.T) {
	_, err := LoadPack(writePackFile(t, `
[pack]
name = "p"
summary = "s"
debug_version = "v"

[dependencies]
minecraft = "1.20.1"
loader = "fabric"
loader_version = "0.15.11"

[[mods.gameplay.mods]]
side = "both"
`))
	expectConfigError(t, err, "mods.gameplay.mods[0].url")
}

func TestLoadPackGroupWithoutArray(t *testing.T) {
	_, err := LoadPack(writePackFile(t, `
[pack]
name = "p"
summary = "s"
debug_version = "v"

[dependencies]
minecraft = "1.20.1"
loader = "fabric"
loader_version = "0.15.11"

[mods.gameplay]
comment = "no mods array here"
`))
	expectConfigError(t, err, "mods.gameplay.mods")
}

func TestLoadPackMissingFile(t *testing.T) {
	_, err := LoadPack(filepath.Join(t.TempDir(), "nope.toml"))
	var missing *MissingArtifactError
	if !errors.As(err, &missing) {
		t.Fatalf("expected a MissingArtifactError, got %T: %v", err, err)
	}
}

func TestTemplateRender(t *testing.T) {
	pack, err := LoadPack(writePackFile(t, validPackToml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	template := pack.Template()
	if template.FormatVersion != FormatVersion || template.Game != Game {
		t.Errorf("unexpected format metadata %+v", template)
	}
	if template.VersionID != "0.0.0-dev" {
		t.Errorf("expected debug version as versionId, got %q", template.VersionID)
	}
	if template.Dependencies["minecraft"] != "1.20.1" || template.Dependencies["fabric"] != "0.15.11" {
		t.Errorf("unexpected dependencies %v", template.Dependencies)
	}
}

func TestLoadBuildDefaultsMissingFile(t *testing.T) {
	defaults := LoadBuildDefaults(filepath.Join(t.TempDir(), "nope.toml"))
	if defaults != (BuildDefaults{}) {
		t.Errorf("expected zero defaults, got %+v", defaults)
	}
}
