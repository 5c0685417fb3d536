package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/1broseidon/qwerty/internal/config"
	"github.com/1broseidon/qwerty/internal/launcher"
	"github.com/1broseidon/qwerty/internal/logger"
	"github.com/1broseidon/qwerty/internal/palette"
	"github.com/1broseidon/qwerty/internal/ui"
	"github.com/1broseidon/qwerty/internal/windows"
)

const appID = "io.github.1broseidon.qwerty"

type launchOptions struct {
	fillEmpty   bool
	geometry    string
	fullscreen  bool
	undecorated bool
	noClose     bool
}

func newRootCmd() *cobra.Command {
	global := &globalOptions{}
	launch := &launchOptions{}

	cmd := &cobra.Command{
		Use:   "qwerty",
		Short: "Keyboard launcher and window switcher",
		Long: "qwerty shows a grid of keys. Digits switch between ten sections; letters focus the\n" +
			"configured application if it is running and start it otherwise.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLauncher(cmd, global, launch)
		},
	}

	addGlobalFlags(cmd.PersistentFlags(), global)
	flags := cmd.Flags()
	flags.BoolVar(&launch.fillEmpty, "fill-empty", false, "Fill unassigned keys from the first section that assigns them")
	flags.StringVar(&launch.geometry, "geometry", "", "Window geometry as WIDTHxHEIGHT+X+Y")
	flags.BoolVar(&launch.fullscreen, "fullscreen", false, "Show the launcher fullscreen")
	flags.BoolVar(&launch.undecorated, "undecorated", false, "Show the launcher without window decorations")
	flags.BoolVar(&launch.noClose, "no-close", false, "Keep the launcher open after launching")

	cmd.AddCommand(
		newWindowsCmd(global),
		newResolveCmd(global),
	)
	return cmd
}

func runLauncher(cmd *cobra.Command, global *globalOptions, launch *launchOptions) error {
	var geometry *config.Geometry
	if launch.geometry != "" {
		g, err := config.ParseGeometry(launch.geometry)
		if err != nil {
			return err
		}
		geometry = &g
	}

	log, err := setupLogger(global)
	if err != nil {
		return err
	}
	defer log.Close()

	store, err := openStore(global)
	if err != nil {
		return err
	}

	opts := config.LoadOptions(store)
	if cmd.Flags().Changed("fill-empty") {
		opts.FillEmpty = launch.fillEmpty
	}
	if cmd.Flags().Changed("no-close") {
		opts.NoClose = launch.noClose
	}
	log.Debug("Settings loaded", "path", store.Path(), "fill_empty", opts.FillEmpty, "no_close", opts.NoClose, "chooser", opts.Chooser)

	backend := newBackend()
	defer closeBackend(backend)

	a := app.NewWithID(appID)
	if th, err := ui.LoadTheme(opts.CSSPath); err != nil {
		log.Warn("Using default theme", "error", err.Error())
	} else if th != nil {
		a.Settings().SetTheme(th)
	}

	win := ui.NewWindow(a, backend, ui.Options{
		Title:       "qwerty",
		Geometry:    geometry,
		Fullscreen:  launch.fullscreen,
		Undecorated: launch.undecorated,
	}, log)

	directory := windows.NewDirectory(backend, log)
	activator := windows.NewActivator(backend, directory, log)
	activator.Requester = win.NativeID

	l := launcher.New(launcher.Config{
		Store:     store,
		Directory: directory,
		Activator: activator,
		Chooser:   newChooser(opts.Chooser, win, log),
		Spawner:   launcher.ShellSpawner{},
		Options:   opts,
		Logger:    log,
	})
	l.Refresh()
	win.Bind(l)

	log.Info("Launcher started", "section", l.Section())
	win.ShowAndRun()
	return nil
}

// newChooser returns the in-window menu unless an external palette is
// configured and available.
func newChooser(name string, win *ui.Window, log *logger.Logger) windows.Chooser {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == config.ChooserMenu {
		return ui.NewMenuChooser(win.Fyne())
	}
	backend, err := palette.NewBackend(name)
	if err != nil {
		log.Warn("Falling back to the popup menu", "chooser", name, "error", err.Error())
		return ui.NewMenuChooser(win.Fyne())
	}
	return palette.NewChooser(backend, "Switch to", log)
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("usage: %s %s", cmd.CommandPath(), usage)
		}
		return nil
	}
}
