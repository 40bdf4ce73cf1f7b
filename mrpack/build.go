package mrpack

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Nodular22/Create-Hardcore-Ultimate-Journey/core"
)

// Manifests carries the three category lock manifests a build consumes.
type Manifests struct {
	Mods          []core.LockEntry
	ResourcePacks []core.LockEntry
	ShaderPacks   []core.LockEntry
}

// Options select the target side and output naming of one build.
type Options struct {
	Side            string // client or server
	Slug            string
	DistDir         string
	VersionOverride string // replaces the template versionId when non-empty
}

// Result reports what one build produced.
type Result struct {
	Path              string
	ModCount          int
	ResourcePackCount int
	ShaderPackCount   int
}

// envForSide maps an entry's declared side to its env requirement pair.
// Entries declared for both sides keep the universal tag even in a
// single-side build; single-side entries that don't match the target were
// already filtered out.
func envForSide(side string) (client string, server string) {
	switch side {
	case core.ClientSide:
		return "required", "unsupported"
	case core.ServerSide:
		return "unsupported", "required"
	default:
		return "required", "required"
	}
}

// buildFiles filters one category by target side and assigns archive paths
// under pathPrefix.
func buildFiles(entries []core.LockEntry, side string, pathPrefix string) []PackFile {
	files := make([]PackFile, 0, len(entries))
	for _, entry := range entries {
		if entry.Side != core.UniversalSide && entry.Side != side {
			continue
		}
		clientEnv, serverEnv := envForSide(entry.Side)
		files = append(files, PackFile{
			Path:   pathPrefix + "/" + entry.Filename,
			Hashes: entry.Hashes,
			Env: &struct {
				Client string `json:"client"`
				Server string `json:"server"`
			}{Client: clientEnv, Server: serverEnv},
			Downloads: entry.Downloads,
			FileSize:  entry.FileSize,
		})
	}
	return files
}

func sideLabel(side string) string {
	if side == core.ServerSide {
		return "Server"
	}
	return "Client"
}

// Build assembles one side-specific .mrpack archive. It is a pure function
// of its inputs; building both sides runs it twice with no shared state.
func Build(template core.Template, manifests Manifests, opts Options) (Result, error) {
	modFiles := buildFiles(manifests.Mods, opts.Side, "mods")
	resourcePackFiles := buildFiles(manifests.ResourcePacks, opts.Side, "resourcepacks")
	shaderPackFiles := buildFiles(manifests.ShaderPacks, opts.Side, "shaderpacks")

	files := make([]PackFile, 0, len(modFiles)+len(resourcePackFiles)+len(shaderPackFiles))
	files = append(files, modFiles...)
	files = append(files, resourcePackFiles...)
	files = append(files, shaderPackFiles...)

	label := sideLabel(opts.Side)
	versionID := template.VersionID
	if opts.VersionOverride != "" {
		versionID = opts.VersionOverride
	}
	index := Pack{
		FormatVersion: template.FormatVersion,
		Game:          template.Game,
		Name:          fmt.Sprintf("%s (%s)", template.Name, label),
		Summary:       fmt.Sprintf("%s [%s]", template.Summary, label),
		VersionID:     versionID,
		Dependencies:  template.Dependencies,
		Files:         files,
	}

	if err := os.MkdirAll(opts.DistDir, 0755); err != nil {
		return Result{}, err
	}
	outPath := filepath.Join(opts.DistDir, fmt.Sprintf("%s-%s-%s.mrpack", opts.Slug, opts.Side, versionID))
	if err := writeArchive(outPath, index); err != nil {
		return Result{}, err
	}

	return Result{
		Path:              outPath,
		ModCount:          len(modFiles),
		ResourcePackCount: len(resourcePackFiles),
		ShaderPackCount:   len(shaderPackFiles),
	}, nil
}

// writeArchive serialises the whole archive in memory and writes it in a
// single shot, so a failed build never leaves a partial file behind.
func writeArchive(path string, index Pack) error {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	w, err := archive.Create(IndexName)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(index); err != nil {
		return err
	}
	if err := archive.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
