package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLabelName(t *testing.T) {
	tests := map[string]string{
		"Cat":             "cat",
		"  Big Dog ":      "big_dog",
		"hello_world":     "hello_world",
		"Hello World":     "hello_world",
		"a  b":            "a__b",
		"   ":             "",
		"":                "",
		"Mixed\tTab Case": "mixed\ttab_case",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeLabelName(in), "input %q", in)
	}
}

func TestLabelRename_AllowsEmpty(t *testing.T) {
	l := NewLabel("l1", "Cat")
	assert.Equal(t, "cat", l.Name)
	l.Rename("  ")
	assert.Equal(t, "", l.Name)
}

func TestDeactivate(t *testing.T) {
	g := NewGroup("g1", "n", "d")
	require.True(t, g.State.IsActive())
	require.NoError(t, g.Deactivate())
	assert.Equal(t, "inactive", g.State.String())
	assert.ErrorIs(t, g.Deactivate(), ErrAlreadyInactive)

	u := &User{State: Active}
	require.NoError(t, u.Deactivate())
	assert.ErrorIs(t, u.Deactivate(), ErrAlreadyInactive)
}

func TestStateFromActive(t *testing.T) {
	assert.Equal(t, Active, StateFromActive(true))
	assert.Equal(t, Inactive, StateFromActive(false))
}

func TestGroupMembership(t *testing.T) {
	g := NewGroup("g1", "n", "")
	assert.Equal(t, []string{}, g.Samples)

	assert.True(t, g.AddReviewer("u1"))
	assert.True(t, g.AddReviewer("u2"))
	assert.False(t, g.AddReviewer("u1"))
	assert.Equal(t, []string{"u1", "u2"}, g.Reviewers)
	assert.True(t, g.HasReviewer("u2"))

	assert.True(t, g.RemoveReviewer("u1"))
	assert.False(t, g.RemoveReviewer("u1"))
	assert.Equal(t, []string{"u2"}, g.Reviewers)

	assert.True(t, g.AddSample("s1"))
	assert.False(t, g.AddSample("s1"))
	assert.True(t, g.RemoveSample("s1"))
	assert.False(t, g.RemoveSample("s1"))
	assert.Empty(t, g.Samples)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("ROOT").Valid())
}
