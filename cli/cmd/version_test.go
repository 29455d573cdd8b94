/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCmdVersion(t *testing.T) {
	cmd := NewVersionCommand()
	got, err := executeCommand(cmd)
	assert.Nil(t, err)
	assert.Contains(t, got, "shardctl:[")
	assert.Contains(t, got, "ShardCtx-")
}
