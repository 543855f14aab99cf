package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Level is a named layout of spawned entities.
type Level struct {
	Name        string      `yaml:"name"`
	PlayerStart common.Vec3 `yaml:"player_start"`
	PlayerYaw   float64     `yaml:"player_yaw"`
	Entities    []Entity    `yaml:"entities"`
}

// Entity is a typed placement; Props is decoded by the builder for Type.
type Entity struct {
	Type     string         `yaml:"type"`
	Prefab   string         `yaml:"prefab,omitempty"`
	Position common.Vec3    `yaml:"position"`
	Props    map[string]any `yaml:"props,omitempty"`
}

// Load reads name (with or without the .yaml suffix), preferring the levels
// directory on disk over the embedded copy.
func Load(name string) (*Level, error) {
	file := fileName(name)
	data, err := os.ReadFile(filepath.Join("levels", file))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, file)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", file, err)
	}
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", file, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(file, ".yaml")
	}
	return &lvl, nil
}

// Names lists the embedded levels.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(out)
	return out
}

func fileName(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	return name
}
