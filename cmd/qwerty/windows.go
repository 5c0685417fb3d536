package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/1broseidon/qwerty/internal/logger"
	"github.com/1broseidon/qwerty/internal/platform"
	"github.com/1broseidon/qwerty/internal/windows"
)

func newWindowsCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "windows",
		Short:        "List client windows with their WM classes",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := setupLogger(global)
			if err != nil {
				return err
			}
			defer log.Close()

			backend := newBackend()
			defer closeBackend(backend)
			return printWindows(cmd, backend, log)
		},
	}
}

func printWindows(cmd *cobra.Command, backend platform.Backend, log *logger.Logger) error {
	dir := windows.NewDirectory(backend, log)
	if err := dir.Refresh(); err != nil {
		return err
	}

	classes := dir.Classes()
	sort.Strings(classes)
	byWindow := map[platform.WindowID][]string{}
	for _, class := range classes {
		for _, rec := range dir.WindowsFor(class) {
			byWindow[rec.ID] = append(byWindow[rec.ID], class)
		}
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASSES\tWINDOW\tDESKTOP\tTITLE")
	for _, id := range dir.Windows() {
		names := byWindow[id]
		if len(names) == 0 {
			continue
		}
		rec := windows.Record{ID: id, Class: names[0]}
		fmt.Fprintf(tw, "%s\t0x%08x\t%s\t%s\n", strings.Join(names, ","), uint32(id), desktopLabel(dir, rec), dir.Title(rec))
	}
	return tw.Flush()
}

func desktopLabel(dir *windows.Directory, rec windows.Record) string {
	desktop, ok := dir.Desktop(rec)
	switch {
	case !ok:
		return "?"
	case desktop == platform.StickyDesktop:
		return "all"
	default:
		return fmt.Sprintf("%d", desktop)
	}
}
