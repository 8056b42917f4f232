package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/evo-terrain/preset"
)

func main() {
	cobra.CheckErr(NewCmd().ExecuteContext(context.Background()))
}

func NewCmd() *cobra.Command {
	cobra.EnableCommandSorting = false

	var logCloser io.Closer

	rootCmd := &cobra.Command{
		Use:           "islandgen [command] [flags]",
		Short:         "islandgen generates masked noise islands and their tile maps",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			logPath, _ := cmd.Flags().GetString("log-file")
			logCloser = setupLogging(debug, logPath)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}
	rootCmd.PersistentFlags().Bool("debug", false, "write debug logs")
	rootCmd.PersistentFlags().String("log-file", filepath.Join(logDir, logFileName), "`<path>` of the rotated debug log")
	rootCmd.PersistentFlags().StringP("preset", "p", "", "`<name|file>` preset name or .toml/.yaml file (default: embedded island)")
	rootCmd.PersistentFlags().String("preset-dir", "presets", "`<dir>` holding named presets")
	rootCmd.PersistentFlags().Int64P("seed", "s", 0, "`<seed>` noise seed, 0 = time based")

	generateCmd := &cobra.Command{
		Use:   "generate [flags]",
		Short: "Generate a map and write it as PNG, JSON or terminal text",
		Args:  cobra.NoArgs,
		RunE:  doGenerate,
	}
	generateCmd.Flags().StringP("out", "o", "-", "`<file>` .png, .json or - for stdout")
	generateCmd.Flags().String("view", "tiles", "`<view>` height or tiles")
	generateCmd.Flags().Int("width", 0, "override map width, masks are scaled")
	generateCmd.Flags().Int("height", 0, "override map height, masks are scaled")
	generateCmd.Flags().Int("cols", 0, "text output columns (default: terminal width or 80)")
	generateCmd.Flags().Bool("no-color", false, "plain text output even on a terminal")

	previewCmd := &cobra.Command{
		Use:   "preview [flags]",
		Short: "Interactive terminal viewer",
		Args:  cobra.NoArgs,
		RunE:  doPreview,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [flags]",
		Short: "Print tile histogram, height distribution and climate",
		Args:  cobra.NoArgs,
		RunE:  doStats,
	}
	statsCmd.Flags().Int("turn", 0, "`<turn>` for the climate summary")

	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the tile threshold rules of the preset",
		Args:  cobra.NoArgs,
		RunE:  doRules,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage stored presets",
	}
	presetsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored presets",
		Args:  cobra.NoArgs,
		RunE:  doPresetsList,
	}
	presetsShowCmd := &cobra.Command{
		Use:   "show [flags] <name>",
		Short: "Print a preset document",
		Args:  cobra.ExactArgs(1),
		RunE:  doPresetsShow,
	}
	presetsShowCmd.Flags().String("format", "toml", "`<format>` toml or yaml")
	presetsSaveCmd := &cobra.Command{
		Use:   "save [flags] <name>",
		Short: "Save the current preset (with --seed applied) under a new name",
		Args:  cobra.ExactArgs(1),
		RunE:  doPresetsSave,
	}
	presetsCmd.AddCommand(presetsListCmd, presetsShowCmd, presetsSaveCmd)

	serveCmd := &cobra.Command{
		Use:   "serve [flags]",
		Short: "Serve the terrain HTTP API",
		Args:  cobra.NoArgs,
		RunE:  doServe,
	}
	serveCmd.Flags().String("addr", "127.0.0.1:5670", "`<host:port>` to listen on")
	serveCmd.Flags().Duration("ttl", 0, "result cache TTL (default 10m)")
	serveCmd.Flags().Uint64("capacity", 0, "result cache capacity (default 64)")
	serveCmd.Flags().Duration("gen-timeout", 0, "deadline of one generation (default 1m)")

	rootCmd.AddCommand(
		generateCmd,
		previewCmd,
		statsCmd,
		rulesCmd,
		presetsCmd,
		serveCmd,
	)
	return rootCmd
}

// loadSetup resolves --preset and applies --seed when given
func loadSetup(cmd *cobra.Command) (preset.Setup, error) {
	ref, _ := cmd.Flags().GetString("preset")
	dir, _ := cmd.Flags().GetString("preset-dir")

	var (
		setup preset.Setup
		err   error
	)
	switch {
	case ref == "":
		setup = preset.Default()
	case filepath.Ext(ref) != "":
		setup, err = preset.LoadFile(ref)
	default:
		setup, err = preset.NewManager(dir).Load(ref)
	}
	if err != nil {
		return preset.Setup{}, err
	}

	if cmd.Flags().Changed("seed") {
		setup.NoiseConfig.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if err := setup.Validate(); err != nil {
		return preset.Setup{}, fmt.Errorf("preset %q: %w", setup.Name, err)
	}
	log.Printf("islandgen: using preset %q %dx%d seed %d", setup.Name, setup.Width, setup.Height, setup.NoiseConfig.Seed)
	return setup, nil
}
