/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package binder

import (
	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
)

// BindInsert binds the insert ast with the raw query it was parsed from.
// An 'insert ... select' has no rows and no values segments, an
// 'insert ... set' has its row but no values segments.
func BindInsert(query string, node *sqlparser.Insert) (*InsertStatement, error) {
	stmt := &InsertStatement{
		Query:   query,
		Table:   node.Table,
		Columns: node.Columns,
	}

	values, ok := node.Rows.(sqlparser.Values)
	if !ok {
		return stmt, nil
	}
	for _, tuple := range values {
		stmt.Rows = append(stmt.Rows, &InsertValueContext{Expressions: sqlparser.Exprs(tuple)})
	}

	segments, found, err := scanValuesSegments(query)
	if err != nil {
		return nil, err
	}
	if !found {
		return stmt, nil
	}
	if len(segments) != len(stmt.Rows) {
		return nil, errors.Errorf("binder.insert.values.segments[%d].rows[%d].mismatch", len(segments), len(stmt.Rows))
	}
	stmt.ValuesSegments = segments
	return stmt, nil
}

// scanValuesSegments finds the span of every '(...)' tuple after the VALUES keyword,
// found is false if the query has no VALUES keyword.
// The tokenizer Position is one past the lookahead char, so the char just
// scanned is at Position-2.
func scanValuesSegments(query string) (segments []Segment, found bool, err error) {
	tkn := sqlparser.NewStringTokenizer(query)
	inValues := false
	depth := 0
	start := 0
	for {
		typ, _ := tkn.Scan()
		switch {
		case typ == 0:
			if depth != 0 {
				return nil, false, errors.Errorf("binder.insert.values.unbalanced.parentheses:%s", query)
			}
			return segments, inValues, nil
		case typ == sqlparser.LEX_ERROR:
			return nil, false, errors.Errorf("binder.insert.values.scan.error[%s]:%s", tkn.LastError, query)
		case typ == sqlparser.COMMENT:
			continue
		case !inValues:
			if typ == sqlparser.VALUES || typ == sqlparser.VALUE {
				inValues = true
			}
		case typ == '(':
			if depth == 0 {
				start = tkn.Position - 2
			}
			depth++
		case typ == ')':
			depth--
			if depth == 0 {
				segments = append(segments, Segment{Start: start, Stop: tkn.Position - 2})
			}
		case depth == 0 && typ != ',':
			// 'on duplicate key update' and the rest.
			return segments, true, nil
		}
	}
}
