/*
 * Radon
 *
 * Copyright 2018-2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package privilege

// PrivilegeHandler interface.
type PrivilegeHandler interface {
	Init() error
	IsAuthorized(db string, user string) bool
	Check(db string, user string) error
	Close() error
}
