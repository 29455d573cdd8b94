/*
 * Radon
 *
 * Copyright 2018-2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package privilege

import (
	"strings"
	"sync"

	"github.com/radondb/shardctx/config"

	"github.com/xelabs/go-mysqlstack/sqldb"
	"github.com/xelabs/go-mysqlstack/xlog"
)

var (
	systemDatabases = []string{"SYS", "MYSQL", "INFORMATION_SCHEMA", "PERFORMANCE_SCHEMA"}
)

type userPriv struct {
	user      string
	superPriv bool
	allDBs    bool
	dbPrivs   map[string]struct{}
}

// Privilege struct.
type Privilege struct {
	mu        sync.RWMutex
	log       *xlog.Log
	conf      *config.Config
	userPrivs map[string]userPriv
}

// NewPrivilege -- creates new Privilege.
func NewPrivilege(log *xlog.Log, conf *config.Config) PrivilegeHandler {
	return &Privilege{
		log:       log,
		conf:      conf,
		userPrivs: make(map[string]userPriv),
	}
}

// Init -- init the privilege plugin.
func (p *Privilege) Init() error {
	log := p.log
	p.UpdatePrivileges(p.conf.Users)
	log.Info("plugin.privileges.init.done")
	return nil
}

// IsSystemDatabase returns true if the db is a system database of the backends.
func IsSystemDatabase(db string) bool {
	db = strings.ToUpper(db)
	for _, sys := range systemDatabases {
		if sys == db {
			return true
		}
	}
	return false
}

// IsAuthorized returns true if the user can see the logical database.
// Unknown users see nothing.
func (p *Privilege) IsAuthorized(db string, user string) bool {
	p.mu.RLock()
	userpriv, ok := p.userPrivs[user]
	p.mu.RUnlock()

	if !ok {
		return false
	}
	if userpriv.superPriv || userpriv.allDBs {
		return true
	}
	_, ok = userpriv.dbPrivs[strings.ToLower(db)]
	return ok
}

// Check -- checks the session privilege on the database.
func (p *Privilege) Check(db string, user string) error {
	if !p.IsAuthorized(db, user) {
		return sqldb.NewSQLErrorf(sqldb.ER_DBACCESS_DENIED_ERROR, "Access denied for user '%v' to database '%v'", user, db)
	}
	return nil
}

// Close -- close the privilege plugin.
func (p *Privilege) Close() error {
	return nil
}

// UpdatePrivileges -- used to update the privileges map to latest.
func (p *Privilege) UpdatePrivileges(users []*config.UserConfig) {
	privis := make(map[string]userPriv, len(users))
	for _, u := range users {
		userpriv := userPriv{
			user:      u.User,
			superPriv: u.Super,
			dbPrivs:   make(map[string]struct{}, len(u.Databases)),
		}
		for _, db := range u.Databases {
			if db == config.AllDatabases {
				userpriv.allDBs = true
				continue
			}
			userpriv.dbPrivs[strings.ToLower(db)] = struct{}{}
		}
		privis[u.User] = userpriv
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.userPrivs = privis
	p.log.Info("privilege.update.users:%d", len(privis))
}
