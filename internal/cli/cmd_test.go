package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenban/internal/api"
	"zenban/internal/domain"
)

func TestParseID(t *testing.T) {
	id, err := parseID("42", "board")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := parseID(bad, "board")
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"owner", "editor", "viewer"} {
		role, err := parseRole(s)
		require.NoError(t, err)
		assert.Equal(t, domain.Role(s), role)
	}

	_, err := parseRole("admin")
	assert.Error(t, err)
}

func TestCommandError(t *testing.T) {
	err := commandError(api.ErrSessionExpired)
	assert.Contains(t, err.Error(), "zenban login")

	err = commandError(api.ErrNotLoggedIn)
	assert.Contains(t, err.Error(), "zenban login")

	plain := &api.APIError{Status: 500, Detail: "oops"}
	assert.Equal(t, plain, commandError(plain))
}

func TestBoardListCommand(t *testing.T) {
	fake := kanbanFixture()
	root := NewRootCmd(newTestApp(fake))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"board", "list"})

	require.NoError(t, root.Execute())
}

func TestMemberInviteRejectsBadRole(t *testing.T) {
	fake := kanbanFixture()
	root := NewRootCmd(newTestApp(fake))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"member", "invite", "1", "--username", "bob", "--role", "admin"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role")
}
