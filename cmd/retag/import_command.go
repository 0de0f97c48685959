package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"retag/internal/config"
	"retag/internal/layout"
	"retag/internal/library"
	"retag/internal/logging"
	"retag/internal/pipeline"
	"retag/internal/prompt"
	"retag/internal/render"
	"retag/internal/style"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var quiet bool
	var timid bool
	var libraryPath string
	var noLibrary bool

	cmd := &cobra.Command{
		Use:   "import <proposals.json>",
		Short: "Review match proposals and record decisions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("quiet") {
				cfg.Import.Quiet = quiet
			}
			if cmd.Flags().Changed("timid") {
				cfg.Import.Timid = timid
			}
			if cmd.Flags().Changed("library") {
				cfg.Library.Path = libraryPath
			}
			if noLibrary {
				cfg.Library.Path = ""
			}

			return runImport(cmd.Context(), cfg, args[0])
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Apply strong matches without prompting")
	cmd.Flags().BoolVarP(&timid, "timid", "t", false, "Always confirm, even for strong matches")
	cmd.Flags().StringVar(&libraryPath, "library", "", "Path to the duplicate-detection library database")
	cmd.Flags().BoolVar(&noLibrary, "no-library", false, "Skip duplicate checks and persistence")
	return cmd
}

func runImport(parent context.Context, cfg *config.Config, proposalsPath string) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	logger, err := logging.NewFromConfig(cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	isTerminal := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	styles := style.NewTable(cfg.ColorEnabled(isTerminal), cfg.UI.Colors, logger)
	width := layout.TerminalWidth(cfg.UI.TerminalWidth)

	prompter := prompt.New(os.Stdin, os.Stdout, styles, cfg.UI.PromptWidth)
	renderer := render.New(os.Stdout, styles, cfg, width)

	var store *library.Store
	if cfg.Library.Path != "" {
		store, err = library.Open(cfg.Library.Path)
		if err != nil {
			if errors.Is(err, library.ErrLocked) {
				return fmt.Errorf("open library %s: %w", cfg.Library.Path, err)
			}
			return fmt.Errorf("open library: %w", err)
		}
		defer store.Close()
	}

	proposals, err := pipeline.LoadProposals(proposalsPath)
	if err != nil {
		return fmt.Errorf("load proposals: %w", err)
	}
	if len(proposals) == 0 {
		fmt.Println("Nothing to import.")
		return nil
	}

	runner := pipeline.NewRunner(cfg, prompter, renderer, store, logger)
	stats, err := runner.Run(ctx, proposals)
	if err != nil {
		return err
	}

	fmt.Printf("Done: %d applied, %d as-is, %d skipped.\n", stats.Applied, stats.AsIs, stats.Skipped)
	return nil
}
