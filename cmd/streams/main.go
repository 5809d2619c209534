//go:build windows

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var logger zerolog.Logger

func main() {
	logger = zerolog.New(
		zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339},
	).With().Timestamp().Logger()

	var loglevel string

	root := &cobra.Command{
		Use:          "streams",
		Short:        "Inspect and manage NTFS alternate data streams",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := zerolog.ParseLevel(strings.ToLower(loglevel))
			if err != nil {
				return fmt.Errorf("invalid log level %q", loglevel)
			}
			logger = logger.Level(lvl)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&loglevel, "loglevel", "info", "Log level")

	root.AddCommand(newListCmd())
	root.AddCommand(newCatCmd())
	root.AddCommand(newWriteCmd())
	root.AddCommand(newCreateCmd())
	root.AddCommand(newRemoveCmd())
	root.AddCommand(newRenameCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
