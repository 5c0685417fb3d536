package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/qwerty/internal/config"
	"github.com/1broseidon/qwerty/internal/launcher"
)

type resolvedApplication struct {
	Section int    `yaml:"section"`
	Letter  string `yaml:"letter"`
	Title   string `yaml:"title"`
	Class   string `yaml:"class"`
	Icon    string `yaml:"icon"`
	Command string `yaml:"command"`
}

func newResolveCmd(global *globalOptions) *cobra.Command {
	var fillEmpty bool

	cmd := &cobra.Command{
		Use:          "resolve SECTION LETTER",
		Short:        "Print the application bound to a key",
		Args:         exactArgs(2, "SECTION LETTER"),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			section, letter, err := parseSlot(args[0], args[1])
			if err != nil {
				return err
			}
			store, err := openStore(global)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("fill-empty") {
				fillEmpty = config.LoadOptions(store).FillEmpty
			}

			app := config.NewResolver(store).Resolve(section, letter, fillEmpty)
			out, err := yaml.Marshal(resolvedApplication{
				Section: app.Section,
				Letter:  string(app.Letter),
				Title:   app.Title,
				Class:   app.Class,
				Icon:    app.Icon,
				Command: app.Command,
			})
			if err != nil {
				return fmt.Errorf("failed to encode application: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&fillEmpty, "fill-empty", false, "Fall back to the first section that assigns the letter")
	return cmd
}

func parseSlot(sectionArg, letterArg string) (int, rune, error) {
	section, err := strconv.Atoi(strings.TrimSpace(sectionArg))
	if err != nil || section < 0 || section >= config.SectionCount {
		return 0, 0, fmt.Errorf("invalid section %q (expected 0-%d)", sectionArg, config.SectionCount-1)
	}

	letterArg = strings.TrimSpace(letterArg)
	if len(letterArg) != 1 {
		return 0, 0, fmt.Errorf("invalid letter %q", letterArg)
	}
	letter := rune(launcher.Normalize(rune(letterArg[0])))
	for _, row := range launcher.LetterRows {
		if strings.ContainsRune(row, letter) {
			return section, letter, nil
		}
	}
	return 0, 0, fmt.Errorf("invalid letter %q", letterArg)
}
