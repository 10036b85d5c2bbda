package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-eventdesk/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestUsersCreate(t *testing.T) {
	t.Setenv("SECRET_KEY", "cli-test-secret")
	t.Setenv("HASH_COST", "4")
	t.Setenv("DATABASE_URL", "file:"+filepath.Join(t.TempDir(), "cli.db"))

	out, err := runCmd(t, "users", "create",
		"--username", "root",
		"--email", "root@example.com",
		"--password", "changeme",
		"--role", auth.RoleAdmin,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "root@example.com")
	assert.Contains(t, out, auth.RoleAdmin)
	assert.NotContains(t, out, "changeme")

	_, err = runCmd(t, "users", "create",
		"--username", "root",
		"--email", "other@example.com",
		"--password", "changeme",
	)
	require.Error(t, err)
	assert.True(t, auth.IsUserExists(err))
}

func TestUsersCreate_RequiresFlags(t *testing.T) {
	t.Setenv("SECRET_KEY", "cli-test-secret")

	_, err := runCmd(t, "users", "create", "--username", "root")
	require.Error(t, err)
}

func TestMigrate(t *testing.T) {
	t.Setenv("SECRET_KEY", "cli-test-secret")
	t.Setenv("DATABASE_URL", "file:"+filepath.Join(t.TempDir(), "cli.db"))

	_, err := runCmd(t, "migrate")
	require.NoError(t, err)
}

func TestMissingSecretFails(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := runCmd(t, "migrate")
	require.Error(t, err)
}
