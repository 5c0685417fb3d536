// Package launcher implements the keyboard state machine behind the grid:
// digits switch sections, letters focus or start applications, and the
// launcher closes after a launch unless it is configured to stay open.
package launcher

import (
	"github.com/1broseidon/qwerty/internal/config"
	"github.com/1broseidon/qwerty/internal/logger"
	"github.com/1broseidon/qwerty/internal/windows"
)

// Store is the settings store the launcher reads applications from and
// persists the last used section to.
type Store interface {
	config.Settings
	Set(path string, value interface{}) error
	Sync() error
}

// Config wires a Launcher to its collaborators.
type Config struct {
	Store     Store
	Directory *windows.Directory
	Activator *windows.Activator
	Chooser   windows.Chooser
	Spawner   Spawner
	Options   config.Options
	Logger    *logger.Logger
}

// Launcher owns the current section and dispatches grid input. It is not
// safe for concurrent use; every call is expected on the UI goroutine.
type Launcher struct {
	store     Store
	resolver  *config.Resolver
	directory *windows.Directory
	activator *windows.Activator
	chooser   windows.Chooser
	spawner   Spawner
	opts      config.Options
	log       *logger.Logger

	phase    Phase
	section  int
	handlers map[Input]func()

	// OnChange runs after anything shown by View changed.
	OnChange func()
	// OnQuit runs once, after the launcher entered PhaseExiting and
	// persisted its state.
	OnQuit func()
}

// New returns an idle launcher on the persisted last section.
func New(cfg Config) *Launcher {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	spawner := cfg.Spawner
	if spawner == nil {
		spawner = ShellSpawner{}
	}

	l := &Launcher{
		store:     cfg.Store,
		resolver:  config.NewResolver(cfg.Store),
		directory: cfg.Directory,
		activator: cfg.Activator,
		chooser:   cfg.Chooser,
		spawner:   spawner,
		opts:      cfg.Options,
		log:       log,
		phase:     PhaseIdle,
		section:   config.LastSection(cfg.Store),
	}
	l.handlers = l.dispatchTable()
	return l
}

func (l *Launcher) dispatchTable() map[Input]func() {
	table := make(map[Input]func(), len(Digits)+26+1)
	for id := range Digits {
		id := id
		table[SectionInput(id)] = func() { l.selectSection(id) }
	}
	for _, row := range LetterRows {
		for _, letter := range row {
			letter := letter
			table[Input(letter)] = func() { l.launch(letter) }
		}
	}
	table[InputEscape] = l.Exit
	return table
}

// Phase returns the current state.
func (l *Launcher) Phase() Phase {
	return l.phase
}

// Section returns the selected section id.
func (l *Launcher) Section() int {
	return l.section
}

// Refresh re-reads the window directory so running states are current.
func (l *Launcher) Refresh() {
	if err := l.directory.Refresh(); err != nil {
		l.log.Warn("Window list unavailable", "error", err.Error())
	}
}

// Handle runs the handler bound to in. It reports whether the input was
// dispatched; unknown keys and anything received while exiting are dropped.
func (l *Launcher) Handle(in Input) bool {
	if l.phase == PhaseExiting {
		l.log.Debug("Dropping input while exiting", "input", string(rune(in)))
		return false
	}
	h, ok := l.handlers[Normalize(rune(in))]
	if !ok {
		return false
	}
	h()
	return true
}

// Exit persists the current section and quits. Only the first call has an
// effect.
func (l *Launcher) Exit() {
	if l.phase == PhaseExiting {
		return
	}
	l.phase = PhaseExiting
	l.persist()
	l.log.Debug("Launcher exiting", "section", l.section)
	if l.OnQuit != nil {
		l.OnQuit()
	}
}

func (l *Launcher) selectSection(id int) {
	l.Refresh()
	l.section = id
	l.log.Debug("Section selected", "section", id)
	l.persist()
	l.changed()
}

func (l *Launcher) launch(letter rune) {
	app := l.resolver.Resolve(l.section, letter, l.opts.FillEmpty)

	if records := l.directory.WindowsFor(app.Class); len(records) > 0 {
		l.log.Info("Switching to running application", "key", string(letter), "class", app.Class, "windows", len(records))
		l.activator.Choose(records, l.chooser, func(windows.Record) { l.finish() })
		return
	}

	if app.Command == "" {
		l.log.Debug("Nothing bound to key", "key", string(letter), "section", l.section)
		return
	}

	l.log.Info("Starting application", "key", string(letter), "command", app.Command)
	if err := l.spawner.Spawn(app.Command); err != nil {
		l.log.Error("Failed to start application", err, "key", string(letter))
	}
	l.finish()
}

func (l *Launcher) finish() {
	if l.phase == PhaseExiting {
		return
	}
	if !l.opts.NoClose {
		l.Exit()
		return
	}
	l.Refresh()
	l.changed()
}

func (l *Launcher) persist() {
	if err := l.store.Set(config.KeyLastSection, l.section); err != nil {
		l.log.Error("Failed to record last section", err)
		return
	}
	if err := l.store.Sync(); err != nil {
		l.log.Error("Failed to save settings", err)
	}
}

func (l *Launcher) changed() {
	if l.OnChange != nil {
		l.OnChange()
	}
}
