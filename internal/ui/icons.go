package ui

import (
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/1broseidon/qwerty/internal/xdgpath"
)

var iconSizes = []string{"48x48", "64x64", "scalable", "128x128", "256x256", "32x32", "24x24", "16x16"}

var iconExts = []string{".png", ".svg"}

// IconResolver finds freedesktop application icons by name and caches the
// loaded resources, misses included.
type IconResolver struct {
	dirs  []string
	cache map[string]fyne.Resource
}

// NewIconResolver searches the hicolor theme under every dir, then each dir's
// pixmaps folder. With no dirs the XDG data directories are used.
func NewIconResolver(dirs ...string) *IconResolver {
	if len(dirs) == 0 {
		dirs = xdgpath.DataDirs()
	}
	return &IconResolver{dirs: dirs, cache: map[string]fyne.Resource{}}
}

// Resource returns the icon for name, or nil when it cannot be found.
func (r *IconResolver) Resource(name string) fyne.Resource {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if res, ok := r.cache[name]; ok {
		return res
	}

	var res fyne.Resource
	if path := r.Lookup(name); path != "" {
		if loaded, err := fyne.LoadResourceFromPath(path); err == nil {
			res = loaded
		}
	}
	r.cache[name] = res
	return res
}

// Lookup returns the file backing the icon name, or "".
func (r *IconResolver) Lookup(name string) string {
	if filepath.IsAbs(name) {
		if isFile(name) {
			return name
		}
		return ""
	}

	for _, dir := range r.dirs {
		for _, size := range iconSizes {
			for _, ext := range iconExts {
				p := filepath.Join(dir, "icons", "hicolor", size, "apps", name+ext)
				if isFile(p) {
					return p
				}
			}
		}
	}
	for _, dir := range r.dirs {
		for _, ext := range iconExts {
			p := filepath.Join(dir, "pixmaps", name+ext)
			if isFile(p) {
				return p
			}
		}
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
