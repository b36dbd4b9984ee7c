package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "plain", path: "teams/t1/users", want: []string{"teams", "t1", "users"}},
		{name: "leading and trailing separators", path: "/teams/t1/", want: []string{"teams", "t1"}},
		{name: "root", path: "/", want: nil},
		{name: "empty", path: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitPath(tt.path))
		})
	}
}

func TestCompileTemplate(t *testing.T) {
	tpl, err := compileTemplate("teams/{team_id}/images/{image_id}")
	require.NoError(t, err)
	assert.Equal(t, 2, tpl.literals)
	require.Len(t, tpl.segments, 4)
	assert.False(t, tpl.segments[0].param)
	assert.True(t, tpl.segments[1].param)
	assert.False(t, tpl.segments[2].param)
	assert.True(t, tpl.segments[3].param)

	_, err = compileTemplate("teams//users")
	assert.Error(t, err)

	_, err = compileTemplate("teams/{}")
	assert.Error(t, err)
}

func TestTemplateMatch(t *testing.T) {
	tpl, err := compileTemplate("teams/{team_id}/images/{image_id}")
	require.NoError(t, err)

	assert.True(t, tpl.match([]string{"teams", "t1", "images", "i1"}))
	assert.False(t, tpl.match([]string{"teams", "t1", "users", "u1"}))
	assert.False(t, tpl.match([]string{"teams", "t1", "images"}))
	assert.False(t, tpl.match(nil))
}

func TestTemplateOverlaps(t *testing.T) {
	users, err := compileTemplate("teams/{team_id}/users")
	require.NoError(t, err)
	images, err := compileTemplate("teams/{team_id}/images")
	require.NoError(t, err)
	wild, err := compileTemplate("{collection}/{id}/users")
	require.NoError(t, err)
	short, err := compileTemplate("teams/{team_id}")
	require.NoError(t, err)

	assert.False(t, users.overlaps(images), "distinct literals never overlap")
	assert.True(t, users.overlaps(wild), "parameter segments overlap any literal")
	assert.True(t, users.overlaps(users))
	assert.False(t, users.overlaps(short), "different lengths never overlap")
}
