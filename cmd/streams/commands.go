//go:build windows

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/go-sw/streamfs/ads"
	"github.com/go-sw/streamfs/stream"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <path>",
		Short: "List alternate data streams of a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			streams, err := stream.ListAlternateStreams(args[0])
			if err != nil {
				return err
			}

			if len(streams) == 0 {
				logger.Info().Str("path", args[0]).Msg("no alternate data streams")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tTYPE\tATTRIBUTES")
			for _, s := range streams {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					s.Name, humanize.IBytes(uint64(s.Size)), s.Type, s.Attributes)
			}
			return w.Flush()
		},
	}
}

func newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path> <name>",
		Short: "Copy the content of a stream to stdout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ads.OpenStream(args[0], args[1], os.O_RDONLY)
			if err != nil {
				return err
			}
			defer f.Close()

			_, err = io.Copy(os.Stdout, f)
			return err
		},
	}
}

func newWriteCmd() *cobra.Command {
	var appendTo bool

	cmd := &cobra.Command{
		Use:   "write <path> <name>",
		Short: "Write stdin into a stream",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			if appendTo {
				flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
			}

			f, err := ads.OpenStream(args[0], args[1], flag)
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := io.Copy(f, os.Stdin)
			if err != nil {
				return err
			}

			logger.Info().
				Str("stream", f.Name()).
				Str("written", humanize.IBytes(uint64(n))).
				Msg("stream written")
			return nil
		},
	}
	cmd.Flags().BoolVar(&appendTo, "append", false, "Append instead of truncating")

	return cmd
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <path> <name>",
		Short: "Create an empty stream, failing if it already exists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ads.Open(args[0])
			if err != nil {
				return err
			}

			s, err := f.Create(args[1])
			if err != nil {
				return err
			}

			logger.Info().Str("stream", s.StreamPath).Msg("stream created")
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "rm <path> [name]",
		Short: "Delete one stream, or every stream with --all",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ads.Open(args[0])
			if err != nil {
				return err
			}

			if all {
				return f.RemoveAll()
			}
			if len(args) < 2 {
				return fmt.Errorf("stream name required unless --all is given")
			}
			return f.Remove(args[1])
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Delete every named stream")

	return cmd
}

func newRenameCmd() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "mv <path> <old> <new>",
		Short: "Rename a stream",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ads.Open(args[0])
			if err != nil {
				return err
			}
			return f.Rename(args[1], args[2], overwrite)
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing target stream")

	return cmd
}
