/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package proxy

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/radondb/shardctx/backend"
	"github.com/radondb/shardctx/config"
	"github.com/radondb/shardctx/monitor"
	"github.com/radondb/shardctx/xbase"
	"github.com/radondb/shardctx/xcontext"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/sqlparser/depends/common"
	querypb "github.com/xelabs/go-mysqlstack/sqlparser/depends/query"
	"github.com/xelabs/go-mysqlstack/sqlparser/depends/sqltypes"
	"github.com/xelabs/go-mysqlstack/xlog"
	"golang.org/x/sync/errgroup"
)

const (
	schemataTable    = "SCHEMATA"
	schemaNameColumn = "SCHEMA_NAME"

	// hiddenSchemaColumn is projected when the select list has no SCHEMA_NAME,
	// the rows are matched on it and it is stripped from the result.
	hiddenSchemaColumn = "shardctx_schema_name"
)

var (
	// schemataColumns are the columns of information_schema.SCHEMATA.
	schemataColumns = []string{
		"CATALOG_NAME",
		"SCHEMA_NAME",
		"DEFAULT_CHARACTER_SET_NAME",
		"DEFAULT_COLLATION_NAME",
		"SQL_PATH",
		"DEFAULT_ENCRYPTION",
	}
)

// Principal is the client a pass runs for.
// *driver.Session implements it.
type Principal interface {
	User() string
	Schema() string
}

// Authorizer checks whether the user can see the logical database.
type Authorizer interface {
	IsAuthorized(db string, user string) bool
}

// Result is the row set of one federation pass.
type Result struct {
	Fields []*querypb.Field
	Rows   [][]sqltypes.Value

	// schemas[i] is the logical database of Rows[i].
	schemas []string

	// schemaIndex is the SCHEMA_NAME position in Fields, -1 if not projected.
	schemaIndex int

	// Request holds the physical queries of the pass, sorted by backend.
	Request *xcontext.RequestContext
}

// Columns returns the column names.
func (r *Result) Columns() []string {
	columns := make([]string, 0, len(r.Fields))
	for _, field := range r.Fields {
		columns = append(columns, field.Name)
	}
	return columns
}

// Schemas returns the logical database of every row.
func (r *Result) Schemas() []string {
	return r.schemas
}

// Strings returns the values of the column as strings, nil if there is no such column.
func (r *Result) Strings(column string) []string {
	idx := -1
	for i, field := range r.Fields {
		if strings.EqualFold(field.Name, column) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	values := make([]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		values = append(values, row[idx].ToString())
	}
	return values
}

// ToSQLResult returns the client-facing result set.
func (r *Result) ToSQLResult() *sqltypes.Result {
	return &sqltypes.Result{
		Fields:       r.Fields,
		Rows:         r.Rows,
		RowsAffected: uint64(len(r.Rows)),
	}
}

// dedup keeps the first row of every logical database.
func (r *Result) dedup() {
	seen := make(map[string]struct{}, len(r.Rows))
	rows := r.Rows[:0]
	schemas := r.schemas[:0]
	for i, row := range r.Rows {
		schema := r.schemas[i]
		if _, ok := seen[schema]; ok {
			continue
		}
		seen[schema] = struct{}{}
		rows = append(rows, row)
		schemas = append(schemas, schema)
	}
	r.Rows = rows
	r.schemas = schemas
}

// schemaFilter is a 'SCHEMA_NAME = x' conjunct of the where clause.
type schemaFilter struct {
	expr *sqlparser.ComparisonExpr

	// columnOnLeft is false for 'x = SCHEMA_NAME'.
	columnOnLeft bool

	// name is the pinned literal, empty for DATABASE().
	name string

	// current is true for 'SCHEMA_NAME = DATABASE()'.
	current bool
}

// rowTemplate is the column set of a synthesized row.
type rowTemplate struct {
	columns []string

	// schema is the SCHEMA_NAME position in columns, -1 if not projected.
	schema int
}

// SchemataExecutor answers 'select ... from information_schema.SCHEMATA' over
// all the logical databases.
// The statement parts are resolved once, every Execute is an independent pass.
type SchemataExecutor struct {
	log      *xlog.Log
	conf     *config.FederationConfig
	meta     MetaData
	auth     Authorizer
	node     *sqlparser.Select
	filter   *schemaFilter
	template *rowTemplate

	// alias is the label of SCHEMA_NAME in the select list.
	alias string

	// hidden is true if SCHEMA_NAME must be added to the physical query.
	hidden bool
}

// NewSchemataExecutor creates the new SchemataExecutor.
func NewSchemataExecutor(log *xlog.Log, conf *config.FederationConfig, meta MetaData, auth Authorizer, node *sqlparser.Select) *SchemataExecutor {
	template, alias, found := buildRowTemplate(node.SelectExprs)
	return &SchemataExecutor{
		log:      log,
		conf:     conf,
		meta:     meta,
		auth:     auth,
		node:     node,
		filter:   findSchemaFilter(node.Where),
		template: template,
		alias:    alias,
		hidden:   !found,
	}
}

// schemataPass is the state of one Execute.
type schemataPass struct {
	// queryDatabase is true if the statement pins one schema.
	queryDatabase bool
	pin           string

	withStorage []target

	// withoutStorage gets one synthesized row each and dies with the pass.
	withoutStorage []string
}

// target is a logical database and the storage unit it is read from.
type target struct {
	db   string
	unit string
}

// Execute runs one federation pass.
// Any connection, catalog or query failure fails the whole pass without rows.
func (e *SchemataExecutor) Execute(ctx context.Context, principal Principal) (*Result, error) {
	log := e.log
	if e.conf.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(e.conf.QueryTimeout)*time.Millisecond)
		defer cancel()
	}

	pass := e.newPass(principal)
	log.Debug("schemata.pass.user[%s].storage:%v.nostorage:%v.pin[%v:%s]", principal.User(), pass.withStorage, pass.withoutStorage, pass.queryDatabase, pass.pin)

	results, err := e.collect(ctx, pass)
	if err != nil {
		monitor.FederationPassInc("Error")
		return nil, err
	}

	qr := e.merge(results)
	qr.Request = e.request(pass, results)
	if pass.queryDatabase {
		qr.dedup()
	}
	e.synthesize(qr, pass.withoutStorage)
	monitor.FederationPassInc("OK")
	return qr, nil
}

func (e *SchemataExecutor) newPass(principal Principal) *schemataPass {
	pass := &schemataPass{}
	if e.filter != nil {
		pass.queryDatabase = true
		pass.pin = e.filter.name
		if e.filter.current {
			pass.pin = principal.Schema()
		}
	}

	user := principal.User()
	for _, db := range e.meta.AllDatabaseNames() {
		if !e.auth.IsAuthorized(db, user) {
			continue
		}
		if pass.queryDatabase && !strings.EqualFold(db, pass.pin) {
			continue
		}
		units := e.meta.StorageUnits(db)
		if len(units) == 0 {
			pass.withoutStorage = append(pass.withoutStorage, db)
			continue
		}
		pass.withStorage = append(pass.withStorage, target{db: db, unit: units[0]})
	}
	return pass
}

// request records the physical queries of the pass.
func (e *SchemataExecutor) request(pass *schemataPass, results []*physical) *xcontext.RequestContext {
	req := xcontext.NewRequestContext(sqlparser.String(e.node))
	if pass.queryDatabase {
		req.Mode = xcontext.ReqSingle
	}
	for _, r := range results {
		if r != nil {
			req.Querys = append(req.Querys, r.tuple)
		}
	}
	sort.Sort(xcontext.QueryTuples(req.Querys))
	return req
}

// physical is the pre-processed rows of one logical database.
type physical struct {
	tuple       xcontext.QueryTuple
	fields      []*querypb.Field
	rows        [][]sqltypes.Value
	schemas     []string
	schemaIndex int
}

// collect reads the databases in parallel and waits for all of them.
func (e *SchemataExecutor) collect(ctx context.Context, pass *schemataPass) ([]*physical, error) {
	results := make([]*physical, len(pass.withStorage))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxParallel())
	for i, t := range pass.withStorage {
		i, t := i, t
		g.Go(func() error {
			r, err := e.readDatabase(gctx, t.db, t.unit)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *SchemataExecutor) maxParallel() int {
	if e.conf.MaxParallel > 0 {
		return e.conf.MaxParallel
	}
	return -1
}

// readDatabase reads the catalog of the storage unit, runs the physical
// query there and keeps the rows of that catalog.
func (e *SchemataExecutor) readDatabase(ctx context.Context, db string, unit string) (*physical, error) {
	log := e.log
	pool, err := e.meta.Pool(unit)
	if err != nil {
		return nil, errors.Wrapf(err, "schemata.database[%s]", db)
	}

	var result *physical
	err = pool.WithConnection(ctx, func(conn backend.Connection) error {
		catalog, err := conn.Catalog(ctx)
		if err != nil {
			return err
		}
		if catalog == "" {
			log.Warning("schemata.database[%s].backend[%s].has.no.default.database", db, unit)
		}
		query := e.physicalQuery(catalog)
		log.Debug("schemata.database[%s].backend[%s].catalog[%s].query:%s", db, unit, catalog, xbase.TruncateQuery(query, maxLogQueryLen))
		qr, err := conn.ExecuteWithLimits(ctx, query, e.conf.MaxResultSize)
		if err != nil {
			return err
		}
		if result, err = e.preprocess(db, catalog, qr); err != nil {
			return err
		}
		result.tuple = xcontext.QueryTuple{
			Query:    query,
			Backend:  unit,
			Database: db,
			Catalog:  catalog,
		}
		return nil
	})
	if err != nil {
		log.Error("schemata.database[%s].backend[%s].error:%+v", db, unit, err)
		return nil, errors.Wrapf(err, "schemata.database[%s].backend[%s]", db, unit)
	}
	return result, nil
}

// physicalQuery renders the statement for one storage unit.
// The pinned schema becomes the catalog and the hidden SCHEMA_NAME is added if needed.
func (e *SchemataExecutor) physicalQuery(catalog string) string {
	filter := e.filter
	buf := sqlparser.NewTrackedBuffer(func(buf *sqlparser.TrackedBuffer, node sqlparser.SQLNode) {
		switch node := node.(type) {
		case sqlparser.SelectExprs:
			node.Format(buf)
			if e.hidden {
				buf.Myprintf(", %s as %s", schemaNameColumn, hiddenSchemaColumn)
			}
			return
		case *sqlparser.ComparisonExpr:
			if filter != nil && node == filter.expr {
				value := sqlparser.NewStrVal([]byte(catalog))
				if filter.columnOnLeft {
					buf.Myprintf("%v %s %v", node.Left, node.Operator, value)
				} else {
					buf.Myprintf("%v %s %v", value, node.Operator, node.Right)
				}
				return
			}
		}
		node.Format(buf)
	})
	buf.Myprintf("%v", e.node)
	return buf.String()
}

// preprocess renames the rows of the catalog to the logical database and drops the others.
// An empty catalog matches no row.
func (e *SchemataExecutor) preprocess(db string, catalog string, qr *sqltypes.Result) (*physical, error) {
	idx := e.schemaIndex(qr.Fields)
	if idx < 0 {
		return nil, errors.Errorf("schemata.database[%s].result.column[%s].can.not.be.found", db, schemaNameColumn)
	}

	result := &physical{
		fields:      qr.Fields,
		schemaIndex: idx,
	}
	for _, row := range qr.Rows {
		if catalog == "" || idx >= len(row) || row[idx].IsNull() || row[idx].ToString() != catalog {
			continue
		}
		renamed := make([]sqltypes.Value, len(row))
		copy(renamed, row)
		renamed[idx] = sqltypes.MakeTrusted(row[idx].Type(), []byte(db))
		result.rows = append(result.rows, renamed)
		result.schemas = append(result.schemas, db)
	}

	if e.hidden {
		result.fields = removeField(result.fields, idx)
		for i, row := range result.rows {
			result.rows[i] = removeValue(row, idx)
		}
		result.schemaIndex = -1
	}
	return result, nil
}

// schemaIndex finds the schema column: a field whose original name is
// SCHEMA_NAME, else the label resolved from the select list.
func (e *SchemataExecutor) schemaIndex(fields []*querypb.Field) int {
	label := e.alias
	if e.hidden {
		label = hiddenSchemaColumn
	}
	if !e.hidden {
		for i, field := range fields {
			if strings.EqualFold(field.OrgName, schemaNameColumn) {
				return i
			}
		}
	}
	for i, field := range fields {
		if strings.EqualFold(field.Name, label) {
			return i
		}
	}
	return -1
}

// merge concatenates the rows in database order.
func (e *SchemataExecutor) merge(results []*physical) *Result {
	qr := &Result{schemaIndex: -1}
	for _, r := range results {
		if r == nil {
			continue
		}
		if qr.Fields == nil {
			qr.Fields = r.fields
			qr.schemaIndex = r.schemaIndex
		}
		qr.Rows = append(qr.Rows, r.rows...)
		qr.schemas = append(qr.schemas, r.schemas...)
	}

	if qr.Fields == nil {
		qr.Fields = make([]*querypb.Field, 0, len(e.template.columns))
		for _, column := range e.template.columns {
			qr.Fields = append(qr.Fields, &querypb.Field{
				Name: column,
				Type: querypb.Type_VARCHAR,
			})
		}
		qr.schemaIndex = e.template.schema
	}
	return qr
}

// synthesize appends one row per database without storage, every column empty but SCHEMA_NAME.
func (e *SchemataExecutor) synthesize(qr *Result, names []string) {
	for _, name := range names {
		row := make([]sqltypes.Value, len(qr.Fields))
		for i := range row {
			row[i] = sqltypes.NewVarChar("")
		}
		if qr.schemaIndex >= 0 {
			row[qr.schemaIndex] = sqltypes.NewVarChar(name)
		}
		qr.Rows = append(qr.Rows, row)
		qr.schemas = append(qr.schemas, name)
	}
}

// buildRowTemplate returns the synthesized row columns, the SCHEMA_NAME label
// and whether SCHEMA_NAME is in the select list.
// A wildcard is the full SCHEMATA column set, a column is its alias or its
// upper-cased name, other expressions are skipped.
func buildRowTemplate(exprs sqlparser.SelectExprs) (*rowTemplate, string, bool) {
	for _, expr := range exprs {
		if _, ok := expr.(*sqlparser.StarExpr); ok {
			return &rowTemplate{columns: schemataColumns, schema: 1}, schemaNameColumn, true
		}
	}

	alias := schemaNameColumn
	found := false
	template := &rowTemplate{schema: -1}
	for _, expr := range exprs {
		aliased, ok := expr.(*sqlparser.AliasedExpr)
		if !ok {
			continue
		}

		col, ok := aliased.Expr.(*sqlparser.ColName)
		if !ok {
			continue
		}
		name := aliased.As.String()
		if name == "" {
			name = strings.ToUpper(col.Name.String())
		}
		if strings.EqualFold(col.Name.String(), schemaNameColumn) && !found {
			found = true
			alias = name
			template.schema = len(template.columns)
		}
		template.columns = append(template.columns, name)
	}
	return template, alias, found
}

// findSchemaFilter looks for 'SCHEMA_NAME = literal' or 'SCHEMA_NAME = DATABASE()'
// in the conjuncts of the where clause.
func findSchemaFilter(where *sqlparser.Where) *schemaFilter {
	if where == nil {
		return nil
	}

	var filter *schemaFilter
	_ = sqlparser.Walk(func(node sqlparser.SQLNode) (kontinue bool, err error) {
		if filter != nil {
			return false, nil
		}
		switch node := node.(type) {
		case *sqlparser.OrExpr, *sqlparser.NotExpr, *sqlparser.Subquery, *sqlparser.ExistsExpr:
			return false, nil
		case *sqlparser.ComparisonExpr:
			if node.Operator == sqlparser.EqualStr {
				if f := schemaComparison(node.Left, node.Right); f != nil {
					f.expr, f.columnOnLeft = node, true
					filter = f
				} else if f := schemaComparison(node.Right, node.Left); f != nil {
					f.expr = node
					filter = f
				}
			}
			return false, nil
		}
		return true, nil
	}, where)
	return filter
}

func schemaComparison(column sqlparser.Expr, value sqlparser.Expr) *schemaFilter {
	col, ok := column.(*sqlparser.ColName)
	if !ok || !strings.EqualFold(col.Name.String(), schemaNameColumn) {
		return nil
	}

	switch value := value.(type) {
	case *sqlparser.SQLVal:
		if value.Type == sqlparser.StrVal {
			return &schemaFilter{name: common.BytesToString(value.Val)}
		}
	case *sqlparser.FuncExpr:
		if value.Qualifier.IsEmpty() && strings.EqualFold(value.Name.String(), "database") && len(value.Exprs) == 0 {
			return &schemaFilter{current: true}
		}
	}
	return nil
}

func removeField(fields []*querypb.Field, idx int) []*querypb.Field {
	out := make([]*querypb.Field, 0, len(fields)-1)
	out = append(out, fields[:idx]...)
	return append(out, fields[idx+1:]...)
}

func removeValue(row []sqltypes.Value, idx int) []sqltypes.Value {
	out := make([]sqltypes.Value, 0, len(row)-1)
	out = append(out, row[:idx]...)
	return append(out, row[idx+1:]...)
}
