package techconf

import (
	"os"
	"path/filepath"

	"github.com/layoutkit/rect2lef/pkg/errors"
)

const (
	// EnvHome names the environment variable holding the ACT install root.
	EnvHome = "ACT_HOME"

	// DefaultHome is used when EnvHome is unset.
	DefaultHome = "/opt/cad"

	// DefaultTech is the technology used when none is requested.
	DefaultTech = "sky130"
)

// Home returns the technology root from $ACT_HOME, or DefaultHome.
func Home() string {
	if h := os.Getenv(EnvHome); h != "" {
		return h
	}
	return DefaultHome
}

// Locate returns the layout configuration path for tech under root:
// <root>/conf/<tech>/layout.conf.
func Locate(root, tech string) (string, error) {
	if err := errors.ValidateTechName(tech); err != nil {
		return "", err
	}
	return filepath.Join(root, "conf", tech, "layout.conf"), nil
}

// Available lists the technologies under root that carry a layout.conf,
// sorted by name. A missing or unreadable conf directory yields none.
func Available(root string) []string {
	entries, err := os.ReadDir(filepath.Join(root, "conf"))
	if err != nil {
		return nil
	}
	var techs []string
	for _, e := range entries {
		if !e.IsDir() || errors.ValidateTechName(e.Name()) != nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, "conf", e.Name(), "layout.conf")); err == nil {
			techs = append(techs, e.Name())
		}
	}
	return techs
}
