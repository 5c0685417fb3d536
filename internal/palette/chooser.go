package palette

import (
	"errors"
	"strconv"

	"github.com/1broseidon/qwerty/internal/logger"
	"github.com/1broseidon/qwerty/internal/windows"
)

// Chooser presents window choices through a palette backend.
type Chooser struct {
	backend Backend
	prompt  string
	log     *logger.Logger
}

func NewChooser(backend Backend, prompt string, log *logger.Logger) *Chooser {
	if log == nil {
		log = logger.Nop()
	}
	return &Chooser{backend: backend, prompt: prompt, log: log}
}

var _ windows.IconChooser = (*Chooser)(nil)

// Choose shows labels and calls pick with the selected index. Cancelling the
// palette or a backend failure leaves pick uncalled.
func (c *Chooser) Choose(labels []string, pick func(int)) {
	c.show(labels, "", pick)
}

// ChooseWithIcon is Choose with icon shown on every row.
func (c *Chooser) ChooseWithIcon(labels []string, icon string, pick func(int)) {
	c.show(labels, icon, pick)
}

func (c *Chooser) show(labels []string, icon string, pick func(int)) {
	if len(labels) == 0 {
		return
	}
	items := make([]Item, len(labels))
	for i, label := range labels {
		items[i] = Item{Label: label, Icon: icon, Info: strconv.Itoa(i), IsActive: i == 0}
	}

	res, err := c.backend.Show(c.prompt, items)
	if err != nil {
		if !errors.Is(err, ErrCancelled) {
			c.log.Error("Palette failed", err, "prompt", c.prompt)
		}
		return
	}
	pick(res.Index)
}
