package authz

import (
	"net/http"
	"testing"

	"imagehub/internal/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRulesCompile(t *testing.T) {
	rules := DefaultRules()
	assert.Len(t, rules, 28)

	table, err := NewTable(rules)
	require.NoError(t, err)
	require.NotNil(t, table)
}

func TestResolve(t *testing.T) {
	table := MustNewTable(DefaultRules())

	tests := []struct {
		name    string
		method  string
		path    string
		want    rbac.Role
		covered bool
	}{
		{name: "create team is root only", method: http.MethodPost, path: "/teams", want: rbac.RoleRoot, covered: true},
		{name: "read image within team", method: http.MethodGet, path: "/teams/t1/images/i1", want: rbac.RoleUser, covered: true},
		{name: "issue key needs admin", method: http.MethodPost, path: "/teams/t1/api-keys", want: rbac.RoleAdmin, covered: true},
		{name: "audit trail is root only", method: http.MethodGet, path: "/audit-logs", want: rbac.RoleRoot, covered: true},
		{name: "delete own image route", method: http.MethodDelete, path: "/teams/t1/users/u1/images/i1", want: rbac.RoleUser, covered: true},
		{name: "delete team image needs admin", method: http.MethodDelete, path: "/teams/t1/images/i1", want: rbac.RoleAdmin, covered: true},
		{name: "unknown collection", method: http.MethodGet, path: "/projects/p1", covered: false},
		{name: "unknown method", method: http.MethodPatch, path: "/teams/t1", covered: false},
		{name: "depth mismatch", method: http.MethodGet, path: "/teams/t1/images/i1/extra", covered: false},
		{name: "empty path", method: http.MethodGet, path: "/", covered: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Resolve(tt.method, tt.path)
			require.Equal(t, tt.covered, ok)
			if tt.covered {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolvePrefersMoreLiterals(t *testing.T) {
	rules := RuleSet{}
	rules[Rule{Method: http.MethodGet, Pattern: "teams/{team_id}"}] = rbac.RoleUser
	rules[Rule{Method: http.MethodGet, Pattern: "teams/current"}] = rbac.RoleAdmin

	table, err := NewTable(rules)
	require.NoError(t, err)

	role, ok := table.Resolve(http.MethodGet, "/teams/current")
	require.True(t, ok)
	assert.Equal(t, rbac.RoleAdmin, role)

	role, ok = table.Resolve(http.MethodGet, "/teams/t1")
	require.True(t, ok)
	assert.Equal(t, rbac.RoleUser, role)
}

func TestNewTableRejectsInvalidRules(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		pattern string
		minRole rbac.Role
	}{
		{name: "empty method", method: "", pattern: "teams", minRole: rbac.RoleUser},
		{name: "unknown method", method: "FETCH", pattern: "teams", minRole: rbac.RoleUser},
		{name: "empty pattern", method: http.MethodGet, pattern: "", minRole: rbac.RoleUser},
		{name: "separator only pattern", method: http.MethodGet, pattern: "///", minRole: rbac.RoleUser},
		{name: "empty segment", method: http.MethodGet, pattern: "teams//users", minRole: rbac.RoleUser},
		{name: "unnamed parameter", method: http.MethodGet, pattern: "teams/{}", minRole: rbac.RoleUser},
		{name: "invalid minimum role", method: http.MethodGet, pattern: "teams", minRole: rbac.Role(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := RuleSet{}
			rules[Rule{Method: tt.method, Pattern: tt.pattern}] = tt.minRole

			_, err := NewTable(rules)
			assert.Error(t, err)
		})
	}
}

func TestNewTableRejectsIndistinctPatterns(t *testing.T) {
	rules := RuleSet{}
	rules[Rule{Method: http.MethodGet, Pattern: "teams/{team_id}"}] = rbac.RoleUser
	rules[Rule{Method: http.MethodGet, Pattern: "teams/{id}"}] = rbac.RoleAdmin

	_, err := NewTable(rules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "equal specificity")

	// Same shape under different methods is fine.
	rules = RuleSet{}
	rules[Rule{Method: http.MethodGet, Pattern: "teams/{team_id}"}] = rbac.RoleUser
	rules[Rule{Method: http.MethodDelete, Pattern: "teams/{id}"}] = rbac.RoleRoot

	_, err = NewTable(rules)
	assert.NoError(t, err)

	// Equal length with diverging literals is distinguishable.
	rules = RuleSet{}
	rules[Rule{Method: http.MethodGet, Pattern: "teams/{team_id}/users"}] = rbac.RoleUser
	rules[Rule{Method: http.MethodGet, Pattern: "teams/{team_id}/images"}] = rbac.RoleUser

	_, err = NewTable(rules)
	assert.NoError(t, err)
}

func TestMustNewTable(t *testing.T) {
	assert.NotPanics(t, func() { MustNewTable(DefaultRules()) })

	rules := RuleSet{}
	rules[Rule{Method: "FETCH", Pattern: "teams"}] = rbac.RoleUser
	assert.Panics(t, func() { MustNewTable(rules) })
}
