package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// MenuChooser shows window choices as a popup menu centered on the launcher.
type MenuChooser struct {
	window fyne.Window
}

func NewMenuChooser(w fyne.Window) *MenuChooser {
	return &MenuChooser{window: w}
}

// Choose shows one entry per label. Dismissing the menu leaves pick uncalled.
func (c *MenuChooser) Choose(labels []string, pick func(int)) {
	if len(labels) == 0 {
		return
	}
	items := make([]*fyne.MenuItem, len(labels))
	for i, label := range labels {
		i := i
		items[i] = fyne.NewMenuItem(label, func() { pick(i) })
	}

	canvas := c.window.Canvas()
	menu := widget.NewPopUpMenu(fyne.NewMenu("", items...), canvas)
	size := menu.MinSize()
	area := canvas.Size()
	pos := fyne.NewPos((area.Width-size.Width)/2, (area.Height-size.Height)/2)
	if pos.X < 0 {
		pos.X = 0
	}
	if pos.Y < 0 {
		pos.Y = 0
	}
	menu.ShowAtPosition(pos)
	canvas.Focus(menu)
}
