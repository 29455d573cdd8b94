/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/radondb/shardctx/backend"
	"github.com/radondb/shardctx/config"
	"github.com/radondb/shardctx/plugins"
	"github.com/radondb/shardctx/proxy"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/xelabs/go-mysqlstack/xlog"
)

var (
	schemataConfig  string
	schemataUser    string
	schemataSchema  string
	schemataSQL     string
	schemataExplain bool
)

// session is the principal the command runs as.
type session struct {
	user   string
	schema string
}

func (s *session) User() string {
	return s.user
}

func (s *session) Schema() string {
	return s.schema
}

// NewSchemataCommand creates new SchemataCommand.
func NewSchemataCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemata",
		Short: "run an information_schema.SCHEMATA select over the configured backends",
		RunE:  schemataCommand,
	}
	cmd.Flags().StringVar(&schemataConfig, "config", "", "--config=[path of the json config]")
	cmd.Flags().StringVar(&schemataUser, "user", "root", "--user=[user name]")
	cmd.Flags().StringVar(&schemataSchema, "schema", "", "--schema=[current database of the user]")
	cmd.Flags().StringVar(&schemataSQL, "sql", "select * from information_schema.SCHEMATA", "--sql=[select statement]")
	cmd.Flags().BoolVar(&schemataExplain, "explain", false, "--explain, print the physical queries instead of the rows")
	return cmd
}

func schemataCommand(cmd *cobra.Command, args []string) error {
	conf, err := config.LoadConfig(schemataConfig)
	if err != nil {
		return err
	}
	log.SetLevel(conf.Log.Level)

	spanner, cleanup, err := newSpanner(log, conf)
	if err != nil {
		return err
	}
	defer cleanup()

	qr, err := spanner.Schemata(context.Background(), &session{user: schemataUser, schema: schemataSchema}, schemataSQL)
	if err != nil {
		return err
	}
	if schemataExplain {
		printQuerys(cmd.OutOrStdout(), qr)
		return nil
	}
	printRows(cmd.OutOrStdout(), qr)
	return nil
}

func newSpanner(log *xlog.Log, conf *config.Config) (*proxy.Spanner, func(), error) {
	scatter := backend.NewScatter(log)
	if err := scatter.LoadConfig(conf.Backends); err != nil {
		return nil, nil, err
	}
	plugins := plugins.NewPlugin(log, conf)
	if err := plugins.Init(); err != nil {
		scatter.Close()
		return nil, nil, err
	}

	spanner := proxy.NewSpanner(log, conf, scatter, plugins)
	return spanner, func() {
		spanner.Close()
		plugins.Close()
		scatter.Close()
	}, nil
}

func printRows(w io.Writer, qr *proxy.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(qr.Columns())
	table.SetAutoFormatHeaders(false)
	for _, row := range qr.Rows {
		values := make([]string, 0, len(row))
		for _, v := range row {
			values = append(values, v.ToString())
		}
		table.Append(values)
	}
	table.Render()
	fmt.Fprintf(w, "%d rows in set\n", len(qr.Rows))
}

func printQuerys(w io.Writer, qr *proxy.Result) {
	req := qr.Request
	fmt.Fprintf(w, "mode: %s\n", req.Mode)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Backend", "Database", "Catalog", "Query"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, tuple := range req.Querys {
		table.Append([]string{tuple.Backend, tuple.Database, tuple.Catalog, tuple.Query})
	}
	table.Render()
}
