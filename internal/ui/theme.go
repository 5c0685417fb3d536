package ui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// LoadTheme reads a Fyne JSON theme. A missing file yields (nil, nil) so the
// caller keeps the default theme.
func LoadTheme(path string) (fyne.Theme, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read theme %s: %w", path, err)
	}
	th, err := theme.FromJSON(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme %s: %w", path, err)
	}
	return th, nil
}
