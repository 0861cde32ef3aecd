// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/netzlab/ipdiff/internal/cfg"
	"github.com/netzlab/ipdiff/internal/webapi"
)

func newServeCommand() *cobra.Command {
	var (
		cfgPath string
		addr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Example: `  ipdiff serve
  ipdiff serve --config ipdiff.yaml --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := cfg.Load(cfgPath)
			if err != nil {
				return err
			}

			// flag and environment override the config file
			if env := os.Getenv("IPDIFF_ADDR"); env != "" {
				c.Addr = env
			}
			if cmd.Flags().Changed("addr") {
				c.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(),
				os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("starting server", "addr", c.Addr)
			return webapi.New(c).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "config file (.yaml, .yml, .json, .jsonc)")
	cmd.Flags().StringVar(&addr, "addr", cfg.Default().Addr, "listen address")

	return cmd
}
