/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package xcontext

// RequestMode type.
type RequestMode int

const (
	// ReqScatter mode sends the query to every authorized database with storage.
	// This is the default mode.
	ReqScatter RequestMode = iota

	// ReqSingle mode sends the query to the pinned database only.
	ReqSingle
)

// String returns the mode name.
func (m RequestMode) String() string {
	switch m {
	case ReqScatter:
		return "scatter"
	case ReqSingle:
		return "single"
	}
	return "unknown"
}

// RequestContext tuple.
type RequestContext struct {
	RawQuery string
	Mode     RequestMode
	Querys   []QueryTuple
}

// NewRequestContext creates RequestContext
// The default Mode is ReqScatter
func NewRequestContext(rawQuery string) *RequestContext {
	return &RequestContext{
		RawQuery: rawQuery,
	}
}

// QueryTuple tuple.
type QueryTuple struct {
	// Query string.
	Query string

	// Backend name.
	Backend string

	// Database is the logical database the query reads.
	Database string

	// Catalog is the physical database on the backend.
	Catalog string
}

// QueryTuples represents the query tuple slice.
type QueryTuples []QueryTuple

// Len impl.
func (q QueryTuples) Len() int { return len(q) }

// Swap impl.
func (q QueryTuples) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

// Less impl.
func (q QueryTuples) Less(i, j int) bool {
	if q[i].Backend != q[j].Backend {
		return q[i].Backend < q[j].Backend
	}
	return q[i].Database < q[j].Database
}
