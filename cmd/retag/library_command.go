package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"retag/internal/library"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Duplicate-detection library utilities",
	}

	libraryCmd.AddCommand(newLibraryListCommand(ctx))
	libraryCmd.AddCommand(newLibraryRemoveCommand(ctx))

	return libraryCmd
}

func newLibraryListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored albums",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Library.Path == "" {
				return fmt.Errorf("no library path configured")
			}

			store, err := library.Open(cfg.Library.Path)
			if err != nil {
				return fmt.Errorf("open library: %w", err)
			}
			defer store.Close()

			albums, err := store.ListAlbums(cmd.Context())
			if err != nil {
				return fmt.Errorf("list albums: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(albums) == 0 {
				fmt.Fprintln(out, "Library is empty")
				return nil
			}

			rows := make([][]string, 0, len(albums))
			for _, album := range albums {
				rows = append(rows, []string{
					strconv.FormatInt(album.ID, 10),
					album.Artist,
					album.Album,
					strconv.Itoa(album.Items),
					album.AddedAt,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Artist", "Album", "Items", "Added"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func newLibraryRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <artist> <album>",
		Short: "Remove stored albums matching an identity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Library.Path == "" {
				return fmt.Errorf("no library path configured")
			}

			store, err := library.Open(cfg.Library.Path)
			if err != nil {
				return fmt.Errorf("open library: %w", err)
			}
			defer store.Close()

			count, err := store.RemoveAlbum(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("remove album: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d album(s)\n", count)
			return nil
		},
	}
}
