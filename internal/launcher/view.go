package launcher

import "github.com/1broseidon/qwerty/internal/config"

// SectionView is the render model of one section button.
type SectionView struct {
	ID       int
	Key      string
	Title    string
	Icon     string
	Used     bool
	Selected bool
}

// SlotView is the render model of one letter button.
type SlotView struct {
	Letter  rune
	Key     string
	Title   string
	Icon    string
	Used    bool
	Running bool
}

// View is everything the grid shows for the current state.
type View struct {
	Phase    Phase
	Sections []SectionView
	Rows     [][]SlotView
}

// View builds the render model against the last directory refresh. Slots
// show what pressing the key would resolve to, fill-empty included.
func (l *Launcher) View() View {
	v := View{
		Phase:    l.phase,
		Sections: make([]SectionView, 0, config.SectionCount),
		Rows:     make([][]SlotView, 0, len(LetterRows)),
	}

	for id := 0; id < config.SectionCount; id++ {
		sec := l.resolver.Section(id)
		v.Sections = append(v.Sections, SectionView{
			ID:       id,
			Key:      string(Digits[id]),
			Title:    sec.Title,
			Icon:     sec.Icon,
			Used:     sec.Title != "",
			Selected: id == l.section,
		})
	}

	for _, row := range LetterRows {
		slots := make([]SlotView, 0, len(row))
		for _, letter := range row {
			app := l.resolver.Resolve(l.section, letter, l.opts.FillEmpty)
			slots = append(slots, SlotView{
				Letter:  letter,
				Key:     string(letter),
				Title:   app.Title,
				Icon:    app.Icon,
				Used:    app.Assigned(),
				Running: l.directory.Running(app.Class),
			})
		}
		v.Rows = append(v.Rows, slots)
	}
	return v
}
