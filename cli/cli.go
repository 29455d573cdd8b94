/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package main

import (
	"fmt"
	"os"

	"github.com/radondb/shardctx/cli/cmd"

	"github.com/spf13/cobra"
)

const (
	cliName        = "shardctl"
	cliDescription = "A command line client for the shard statement contexts"
)

var (
	rootCmd = &cobra.Command{
		Use:          cliName,
		Short:        cliDescription,
		SuggestFor:   []string{"shardctx"},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.AddCommand(cmd.NewVersionCommand())
	rootCmd.AddCommand(cmd.NewExplainCommand())
	rootCmd.AddCommand(cmd.NewSchemataCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
