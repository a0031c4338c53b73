package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration. Every component receives it
// explicitly; there are no package-level path globals.
type Config struct {
	// ProjectDir is the root of the LaTeX project under analysis.
	// All artifact paths below default to conventional locations under it.
	ProjectDir string `json:"project_dir,omitempty"`

	// Per-artifact overrides. Empty means the ProjectDir-derived default:
	// auxil/main.toc, auxil/main.lof, auxil/main.lot, auxil/main.aux,
	// bibliography/refs.bib, auxil/main.blg, auxil/main.log, auxil/main.pdf.
	TOCPath     string `json:"toc_path,omitempty"`
	LOFPath     string `json:"lof_path,omitempty"`
	LOTPath     string `json:"lot_path,omitempty"`
	AuxPath     string `json:"aux_path,omitempty"`
	BibPath     string `json:"bib_path,omitempty"`
	BibLogPath  string `json:"biblog_path,omitempty"`
	MainLogPath string `json:"mainlog_path,omitempty"`
	PDFPath     string `json:"pdf_path,omitempty"`

	// ChaptersDir holds the .tex sources counted per chapter; FiguresDir
	// holds the image files checked against \includegraphics usage.
	ChaptersDir string `json:"chapters_dir,omitempty"`
	FiguresDir  string `json:"figures_dir,omitempty"`

	// FigurePrefix is the path prefix stripped from \includegraphics
	// arguments before comparing them with figure filenames.
	FigurePrefix string `json:"figure_prefix,omitempty"`

	// ListenAddr is the plain-text command listener address.
	ListenAddr string `json:"listen_addr,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ProjectDir:   ".",
		FigurePrefix: "figures/",
		ListenAddr:   "127.0.0.1:1234",
	}
}

// Artifacts is the set of effective file locations for one project.
type Artifacts struct {
	TOC         string
	LOF         string
	LOT         string
	Aux         string
	Bib         string
	BibLog      string
	MainLog     string
	PDF         string
	ChaptersDir string
	FiguresDir  string
}

// Artifacts resolves the effective artifact paths: explicit override if
// set, otherwise the conventional location under ProjectDir.
func (c *Config) Artifacts() Artifacts {
	pick := func(override string, rel ...string) string {
		if override != "" {
			return override
		}
		return filepath.Join(append([]string{c.ProjectDir}, rel...)...)
	}
	return Artifacts{
		TOC:         pick(c.TOCPath, "auxil", "main.toc"),
		LOF:         pick(c.LOFPath, "auxil", "main.lof"),
		LOT:         pick(c.LOTPath, "auxil", "main.lot"),
		Aux:         pick(c.AuxPath, "auxil", "main.aux"),
		Bib:         pick(c.BibPath, "bibliography", "refs.bib"),
		BibLog:      pick(c.BibLogPath, "auxil", "main.blg"),
		MainLog:     pick(c.MainLogPath, "auxil", "main.log"),
		PDF:         pick(c.PDFPath, "auxil", "main.pdf"),
		ChaptersDir: pick(c.ChaptersDir, "chapters"),
		FiguresDir:  pick(c.FiguresDir, "figures"),
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.texpulse.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithProject loads configuration from both the global (~/.texpulse) and
// project (.texpulse) directories. Project config is found by walking upward
// from startDir to the nearest .texpulse/config.json. Project config takes
// precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithProject(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	projectConfigPath := FindProjectConfig(startDir)
	project, err := loadFileRaw(projectConfigPath)
	if err != nil {
		return nil, err
	}

	return Merge(Merge(DefaultConfig(), global), project), nil
}

// FindProjectConfig walks upward from startDir to the nearest
// .texpulse/config.json. Returns the path if found, or empty string.
func FindProjectConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".texpulse", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	pick := func(b, o string) string {
		if o != "" {
			return o
		}
		return b
	}

	result.ProjectDir = pick(base.ProjectDir, overlay.ProjectDir)
	result.TOCPath = pick(base.TOCPath, overlay.TOCPath)
	result.LOFPath = pick(base.LOFPath, overlay.LOFPath)
	result.LOTPath = pick(base.LOTPath, overlay.LOTPath)
	result.AuxPath = pick(base.AuxPath, overlay.AuxPath)
	result.BibPath = pick(base.BibPath, overlay.BibPath)
	result.BibLogPath = pick(base.BibLogPath, overlay.BibLogPath)
	result.MainLogPath = pick(base.MainLogPath, overlay.MainLogPath)
	result.PDFPath = pick(base.PDFPath, overlay.PDFPath)
	result.ChaptersDir = pick(base.ChaptersDir, overlay.ChaptersDir)
	result.FiguresDir = pick(base.FiguresDir, overlay.FiguresDir)
	result.FigurePrefix = pick(base.FigurePrefix, overlay.FigurePrefix)
	result.ListenAddr = pick(base.ListenAddr, overlay.ListenAddr)

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
