// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-arcade/phrasetrie/internal/phrasetrie/bootstrap"
	"github.com/go-arcade/phrasetrie/internal/phrasetrie/config"
	"github.com/go-arcade/phrasetrie/pkg/version"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var confFile string

	rootCmd := &cobra.Command{
		Use:   "phrasetrie",
		Short: "Count shared word prefixes across sentences and print them as a tree",
		Long: "phrasetrie splits its inputs into sentences and words, inserts every sentence into a\n" +
			"prefix tree that counts how often each word sequence occurs, and prints the tree.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&confFile, "conf", "", "configuration file path, e.g. --conf ./conf.d/phrasetrie.toml")
	flags.StringSliceP("file", "f", nil, "input to read, repeatable")
	flags.Bool("counts", false, "append the occurrence count to every node")
	flags.Int("depth", 0, "print at most this many levels, 0 for all")
	flags.Uint64("min-count", 0, "hide nodes seen fewer times than this")
	flags.Bool("normalize", false, "normalize text to Unicode NFC before splitting")
	flags.Bool("fold-case", false, "case-fold every word")
	flags.String("log-level", "WARN", "log level: DEBUG, INFO, WARN or ERROR")

	setup := func(cmd *cobra.Command) (*bootstrap.App, func(), error) {
		appConf, err := config.Load(confFile, cmd.Flags())
		if err != nil {
			return nil, nil, err
		}
		return bootstrap.Bootstrap(appConf, initApp)
	}

	render := func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		return app.Render(cmd.Context(), cmd.OutOrStdout())
	}
	rootCmd.RunE = render

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Build the tree from the inputs and print it (default)",
		Args:  cobra.NoArgs,
		RunE:  render,
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the tree again every time a local input changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return app.Watch(cmd.Context(), cmd.OutOrStdout())
		},
	}

	rootCmd.AddCommand(renderCmd, watchCmd, version.VersionCmd)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
