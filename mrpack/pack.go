package mrpack

// IndexName is the sole member of a built archive.
const IndexName = "modrinth.index.json"

// Pack is the modrinth.index.json document of one built archive.
type Pack struct {
	FormatVersion uint32            `json:"formatVersion"`
	Game          string            `json:"game"`
	Name          string            `json:"name"`
	Summary       string            `json:"summary,omitempty"`
	VersionID     string            `json:"versionId"`
	Dependencies  map[string]string `json:"dependencies"`
	Files         []PackFile        `json:"files"`
}

// PackFile references one resolved file and its environment requirements.
type PackFile struct {
	Path   string            `json:"path"`
	Hashes map[string]string `json:"hashes"`
	Env    *struct {
		Client string `json:"client"`
		Server string `json:"server"`
	} `json:"env"`
	Downloads []string `json:"downloads"`
	FileSize  uint64   `json:"fileSize"`
}
