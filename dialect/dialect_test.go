/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package dialect

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultNullsOrder(t *testing.T) {
	tests := []struct {
		name string
		want NullsOrder
	}{
		{"MySQL", NullsFirst},
		{"mysql", NullsFirst},
		{"MariaDB", NullsFirst},
		{"SQLServer", NullsFirst},
		{"PostgreSQL", NullsLast},
		{"openGauss", NullsLast},
		{"Oracle", NullsLast},
	}
	for _, test := range tests {
		got, err := DefaultNullsOrder(test.name)
		assert.Nil(t, err)
		assert.Equal(t, test.want, got, test.name)
	}
}

func TestDefaultNullsOrderError(t *testing.T) {
	_, err := DefaultNullsOrder("xx")
	assert.Equal(t, "dialect[xx].can.not.be.found", err.Error())
}

func TestRegister(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Register("TiDB", NullsFirst)
			_, err := DefaultNullsOrder("tidb")
			assert.Nil(t, err)
		}()
	}
	wg.Wait()
	assert.Contains(t, Engines(), "TIDB")
}
