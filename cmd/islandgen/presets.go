package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/evo-terrain/preset"
)

func doRules(cmd *cobra.Command, args []string) error {
	setup, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	q := setup.Quantizer()

	tw := newTable(cmd.OutOrStdout(), fmt.Sprintf("Rules of %s (first match wins)", setup.Name))
	tw.AppendHeader(table.Row{"#", "TILE", "MIN", "MAX", "RANGE"})
	for i, t := range q.Thresholds {
		closing := ")"
		if t.MaxInclusive {
			closing = "]"
		}
		tw.AppendRow(table.Row{i, t.Tile.String(), t.Min, t.Max, fmt.Sprintf("[%g, %g%s", t.Min, t.Max, closing)})
	}
	tw.Render()
	return nil
}

func presetManager(cmd *cobra.Command) *preset.Manager {
	dir, _ := cmd.Flags().GetString("preset-dir")
	return preset.NewManager(dir)
}

func doPresetsList(cmd *cobra.Command, args []string) error {
	m := presetManager(cmd)
	names, err := m.List()
	if err != nil {
		return err
	}

	tw := newTable(cmd.OutOrStdout(), "Presets in "+m.Dir())
	tw.AppendHeader(table.Row{"NAME", "SIZE", "NOISE", "MASKS", "SOURCE"})
	for _, name := range names {
		s, err := m.Load(name)
		if err != nil {
			tw.AppendRow(table.Row{name, "", "", "", "error: " + err.Error()})
			continue
		}
		source := "embedded"
		if m.Stored(name) {
			source = "file"
		}
		tw.AppendRow(table.Row{name, fmt.Sprintf("%dx%d", s.Width, s.Height), s.Noise.String(), len(s.Masks), source})
	}
	tw.Render()
	return nil
}

func doPresetsShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	s, err := presetManager(cmd).Load(args[0])
	if err != nil {
		return err
	}
	data, err := preset.Encode(s, preset.Format(format))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func doPresetsSave(cmd *cobra.Command, args []string) error {
	s, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	s.Name = args[0]
	m := presetManager(cmd)
	if err := m.Save(s); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", m.FilePath(s.Name))
	return nil
}
