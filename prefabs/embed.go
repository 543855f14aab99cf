package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var FS embed.FS

// DiskDir is checked before the embedded copy so edits made while the game
// runs are picked up by the watcher. Empty disables the disk lookup.
var DiskDir = "prefabs"

// Load returns a prefab yaml by name.
func Load(name string) ([]byte, error) {
	return read(prefabPath(name))
}

// LoadScript returns an enemy script. name may be given bare or prefixed
// with prefabs/ or scripts/.
func LoadScript(name string) ([]byte, error) {
	return read(cleanScriptPath(name))
}

func read(clean string) ([]byte, error) {
	if clean == "" || !fs.ValidPath(clean) {
		return nil, &fs.PathError{Op: "open", Path: clean, Err: fs.ErrInvalid}
	}
	if DiskDir != "" {
		if data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(clean))); err == nil {
			return data, nil
		}
	}
	return FS.ReadFile(clean)
}

func prefabPath(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
}

func cleanScriptPath(name string) string {
	if name == "" {
		return ""
	}
	s := prefabPath(name)
	s = strings.TrimPrefix(s, "scripts/")
	return path.Join("scripts", s)
}
