/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package cmd

import (
	"fmt"

	"github.com/radondb/shardctx/proxy"

	"github.com/spf13/cobra"
)

var (
	explainSQL     string
	explainRoute   string
	explainDialect string
)

// NewExplainCommand creates new ExplainCommand.
func NewExplainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "explain the contexts built for a statement, including insert/orderby",
	}
	cmd.AddCommand(NewExplainInsertCommand())
	cmd.AddCommand(NewExplainOrderByCommand())
	cmd.PersistentFlags().StringVar(&explainSQL, "sql", "", "--sql=[statement]")
	return cmd
}

// NewExplainInsertCommand is used to show the insert values token.
func NewExplainInsertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert",
		Short: "show the insert values token of the statement with the route",
		RunE:  explainInsertCommand,
	}
	cmd.Flags().StringVar(&explainRoute, "route", "", "--route=[backend.table,...;...], one group per row")
	return cmd
}

func explainInsertCommand(cmd *cobra.Command, args []string) error {
	token, err := proxy.ExplainInsert(explainSQL, explainRoute)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token.JSON())
	return nil
}

// NewExplainOrderByCommand is used to show the order by context.
func NewExplainOrderByCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orderby",
		Short: "show the order by context of the select",
		RunE:  explainOrderByCommand,
	}
	cmd.Flags().StringVar(&explainDialect, "dialect", "MySQL", "--dialect=[database engine]")
	return cmd
}

func explainOrderByCommand(cmd *cobra.Command, args []string) error {
	orderBy, err := proxy.ExplainOrderBy(explainSQL, explainDialect)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), orderBy.JSON())
	return nil
}
