package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/1broseidon/qwerty/internal/config"
	"github.com/1broseidon/qwerty/internal/platform"
	"github.com/1broseidon/qwerty/internal/platform/platformtest"
	"github.com/1broseidon/qwerty/internal/windows"
)

const testSettings = `
section_0:
  title: Web
  Q:
    title: Shell
    command: echo hi
  W:
    title: Firefox
    class: firefox
    command: firefox
  E:
    command: xterm
section_3:
  title: Mail
  R:
    title: Thunderbird
    class: thunderbird
    command: thunderbird
`

type fakeSpawner struct {
	commands []string
	err      error
}

func (s *fakeSpawner) Spawn(command string) error {
	s.commands = append(s.commands, command)
	return s.err
}

type fakeChooser struct {
	shown  [][]string
	choose int // index to pick, or -1 to dismiss
}

func (c *fakeChooser) Choose(labels []string, pick func(int)) {
	c.shown = append(c.shown, append([]string(nil), labels...))
	if c.choose >= 0 {
		pick(c.choose)
	}
}

type harness struct {
	launcher *Launcher
	store    *config.Store
	backend  *platformtest.Backend
	spawner  *fakeSpawner
	chooser  *fakeChooser
	quits    int
	changes  int
}

func newHarness(t *testing.T, settings string, opts config.Options, wins ...platformtest.Window) *harness {
	t.Helper()

	path := filepath.Join(t.TempDir(), "qwerty.yaml")
	if err := writeFile(path, settings); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	store, err := config.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	h := &harness{
		store:   store,
		backend: &platformtest.Backend{Windows: wins},
		spawner: &fakeSpawner{},
		chooser: &fakeChooser{choose: -1},
	}
	dir := windows.NewDirectory(h.backend, nil)
	act := windows.NewActivator(h.backend, dir, nil)
	act.Requester = func() platform.WindowID { return 900 }

	h.launcher = New(Config{
		Store:     store,
		Directory: dir,
		Activator: act,
		Chooser:   h.chooser,
		Spawner:   h.spawner,
		Options:   opts,
	})
	h.launcher.OnQuit = func() { h.quits++ }
	h.launcher.OnChange = func() { h.changes++ }
	h.launcher.Refresh()
	return h
}

func writeFile(path, data string) error {
	return os.WriteFile(path, []byte(data), 0644)
}

func reopen(t *testing.T, s *config.Store) *config.Store {
	t.Helper()
	out, err := config.Open(s.Path())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	return out
}

func TestNew_StartsOnPersistedSection(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		want     int
	}{
		{"missing", "", 0},
		{"stored", "state:\n  last_used_section: 4\n", 4},
		{"out of range", "state:\n  last_used_section: 12\n", 0},
		{"negative", "state:\n  last_used_section: -1\n", 0},
		{"garbage", "state:\n  last_used_section: nine\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.settings, config.Options{})
			if got := h.launcher.Section(); got != tt.want {
				t.Fatalf("section = %d, want %d", got, tt.want)
			}
			if h.launcher.Phase() != PhaseIdle {
				t.Fatalf("phase = %v, want idle", h.launcher.Phase())
			}
		})
	}
}

func TestHandle_SpawnsCommandAndExits(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{})

	if !h.launcher.Handle('Q') {
		t.Fatalf("Q was not dispatched")
	}

	if !reflect.DeepEqual(h.spawner.commands, []string{"echo hi"}) {
		t.Fatalf("spawned %v", h.spawner.commands)
	}
	if h.launcher.Phase() != PhaseExiting {
		t.Fatalf("phase = %v, want exiting", h.launcher.Phase())
	}
	if h.quits != 1 {
		t.Fatalf("quit hook ran %d times", h.quits)
	}
	if v, ok := reopen(t, h.store).Int(config.KeyLastSection); !ok || v != 0 {
		t.Fatalf("persisted section = %d, %v", v, ok)
	}
}

func TestHandle_LowerCaseLetters(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{})

	h.launcher.Handle('q')
	if len(h.spawner.commands) != 1 {
		t.Fatalf("expected lower-case q to launch, spawned %v", h.spawner.commands)
	}
}

func TestHandle_SpawnFailureStillExits(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{})
	h.spawner.err = errors.New("no shell")

	h.launcher.Handle('Q')
	if h.launcher.Phase() != PhaseExiting || h.quits != 1 {
		t.Fatalf("expected exit after failed spawn, phase=%v quits=%d", h.launcher.Phase(), h.quits)
	}
}

func TestHandle_CommandWithoutTitleStillSpawns(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{})

	h.launcher.Handle('E')
	if !reflect.DeepEqual(h.spawner.commands, []string{"xterm"}) {
		t.Fatalf("spawned %v", h.spawner.commands)
	}
}

func TestHandle_EmptySlotIsNoop(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{})

	if !h.launcher.Handle('Z') {
		t.Fatalf("Z should be dispatched")
	}
	if len(h.spawner.commands) != 0 || h.quits != 0 {
		t.Fatalf("empty slot launched something: %v quits=%d", h.spawner.commands, h.quits)
	}
	if h.launcher.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want idle", h.launcher.Phase())
	}
}

func TestHandle_RunningSingleWindowActivatesDirectly(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{}, platformtest.Window{
		ID: 42, Classes: []string{"Navigator", "firefox"}, Desktop: 1, Title: "Docs",
	})

	h.launcher.Handle('W')

	if len(h.chooser.shown) != 0 {
		t.Fatalf("chooser shown for a single window: %v", h.chooser.shown)
	}
	if len(h.spawner.commands) != 0 {
		t.Fatalf("running app was spawned again: %v", h.spawner.commands)
	}
	want := []string{"desktop 1", "flush", "raise 42", "focus 42", "activate 42 from 900", "map 42", "flush"}
	if !reflect.DeepEqual(h.backend.Calls, want) {
		t.Fatalf("calls = %v, want %v", h.backend.Calls, want)
	}
	if h.launcher.Phase() != PhaseExiting {
		t.Fatalf("phase = %v, want exiting", h.launcher.Phase())
	}
}

func TestHandle_RunningSeveralWindowsShowsChooser(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{},
		platformtest.Window{ID: 1, Classes: []string{"firefox"}, Title: "Docs"},
		platformtest.Window{ID: 2, Classes: []string{"xterm"}, Title: "shell"},
		platformtest.Window{ID: 3, Classes: []string{"firefox"}, Title: "Mail"},
	)
	h.chooser.choose = 1

	h.launcher.Handle('W')

	if !reflect.DeepEqual(h.chooser.shown, [][]string{{"Docs", "Mail"}}) {
		t.Fatalf("chooser shown %v", h.chooser.shown)
	}
	if got := h.backend.Calls; len(got) == 0 || got[len(got)-2] != "map 3" {
		t.Fatalf("expected window 3 to be activated, calls = %v", got)
	}
	if h.launcher.Phase() != PhaseExiting || h.quits != 1 {
		t.Fatalf("expected exit after choosing, phase=%v quits=%d", h.launcher.Phase(), h.quits)
	}
}

func TestHandle_DismissedChooserStaysIdle(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{},
		platformtest.Window{ID: 1, Classes: []string{"firefox"}},
		platformtest.Window{ID: 3, Classes: []string{"firefox"}},
	)

	h.launcher.Handle('W')

	if len(h.chooser.shown) != 1 {
		t.Fatalf("chooser shown %d times", len(h.chooser.shown))
	}
	if !reflect.DeepEqual(h.chooser.shown[0], []string{windows.UntitledPlaceholder, windows.UntitledPlaceholder}) {
		t.Fatalf("labels = %v", h.chooser.shown[0])
	}
	if len(h.backend.Calls) != 0 {
		t.Fatalf("dismissal wrote to the window manager: %v", h.backend.Calls)
	}
	if h.launcher.Phase() != PhaseIdle || h.quits != 0 {
		t.Fatalf("dismissal changed state: phase=%v quits=%d", h.launcher.Phase(), h.quits)
	}
}

func TestHandle_NoCloseStaysIdle(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{NoClose: true})
	before := h.changes

	h.launcher.Handle('Q')

	if len(h.spawner.commands) != 1 {
		t.Fatalf("spawned %v", h.spawner.commands)
	}
	if h.launcher.Phase() != PhaseIdle || h.quits != 0 {
		t.Fatalf("no-close exited: phase=%v quits=%d", h.launcher.Phase(), h.quits)
	}
	if h.changes != before+1 {
		t.Fatalf("expected a view refresh after launching")
	}

	h.launcher.Handle('Q')
	if len(h.spawner.commands) != 2 {
		t.Fatalf("second press not handled: %v", h.spawner.commands)
	}
}

func TestHandle_SectionSwitchPersists(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{})

	if !h.launcher.Handle('4') {
		t.Fatalf("4 was not dispatched")
	}
	if got := h.launcher.Section(); got != 3 {
		t.Fatalf("section = %d, want 3", got)
	}
	if h.changes != 1 {
		t.Fatalf("OnChange ran %d times", h.changes)
	}
	if v, ok := reopen(t, h.store).Int(config.KeyLastSection); !ok || v != 3 {
		t.Fatalf("persisted section = %d, %v", v, ok)
	}

	h.launcher.Handle('0')
	if got := h.launcher.Section(); got != 9 {
		t.Fatalf("key 0 selected section %d, want 9", got)
	}

	// Q is bound in section 0 only.
	h.launcher.Handle('Q')
	if len(h.spawner.commands) != 0 {
		t.Fatalf("section 9 launched %v", h.spawner.commands)
	}
}

func TestHandle_SectionSwitchRefreshesDirectory(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{})
	h.backend.Windows = []platformtest.Window{{ID: 8, Classes: []string{"thunderbird"}}}

	h.launcher.Handle('4')
	h.launcher.Handle('R')

	if len(h.spawner.commands) != 0 {
		t.Fatalf("running app was spawned: %v", h.spawner.commands)
	}
	if len(h.backend.Calls) == 0 {
		t.Fatalf("expected activation of window 8")
	}
}

func TestHandle_FillEmpty(t *testing.T) {
	h := newHarness(t, testSettings+"state:\n  last_used_section: 5\n", config.Options{FillEmpty: true})

	h.launcher.Handle('R')
	if !reflect.DeepEqual(h.spawner.commands, []string{"thunderbird"}) {
		t.Fatalf("spawned %v", h.spawner.commands)
	}
	if v, _ := reopen(t, h.store).Int(config.KeyLastSection); v != 5 {
		t.Fatalf("persisted section = %d, want 5", v)
	}
}

func TestHandle_EscapeExitsWithoutLaunching(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{})

	h.launcher.Handle(InputEscape)

	if h.launcher.Phase() != PhaseExiting || h.quits != 1 {
		t.Fatalf("escape did not exit: phase=%v quits=%d", h.launcher.Phase(), h.quits)
	}
	if len(h.spawner.commands) != 0 {
		t.Fatalf("escape launched %v", h.spawner.commands)
	}
}

func TestHandle_DropsInputWhileExiting(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{})

	h.launcher.Handle('Q')
	for _, in := range []Input{'Q', '4', InputEscape} {
		if h.launcher.Handle(in) {
			t.Fatalf("input %q dispatched after exit", rune(in))
		}
	}
	if len(h.spawner.commands) != 1 || h.quits != 1 {
		t.Fatalf("expected exactly one launch and one quit, got %v and %d", h.spawner.commands, h.quits)
	}
	if h.launcher.Section() != 0 {
		t.Fatalf("section changed after exit")
	}
}

func TestHandle_UnknownInputIgnored(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{})

	for _, in := range []Input{'!', ' ', 'é'} {
		if h.launcher.Handle(in) {
			t.Fatalf("input %q was dispatched", rune(in))
		}
	}
	if h.changes != 0 || h.quits != 0 {
		t.Fatalf("unknown input had side effects")
	}
}

func TestExit_OnlyOnce(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{})

	h.launcher.Exit()
	h.launcher.Exit()
	if h.quits != 1 {
		t.Fatalf("quit hook ran %d times", h.quits)
	}
}

func TestRefresh_ClientListFailureKeepsWorking(t *testing.T) {
	h := newHarness(t, testSettings, config.Options{})
	h.backend.ClientListErr = errors.New("no display")

	h.launcher.Handle('4')
	if h.launcher.Section() != 3 {
		t.Fatalf("section switch failed without a window list")
	}
}
