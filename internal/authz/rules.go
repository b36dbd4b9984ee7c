package authz

import (
	"fmt"
	"net/http"

	"imagehub/internal/rbac"
)

// Rule keys the permission table by HTTP method and route pattern. Pattern
// segments wrapped in braces are parameters; every other segment is a
// literal.
type Rule struct {
	Method  string
	Pattern string
}

// RuleSet maps each rule to the minimum role allowed to perform it.
type RuleSet map[Rule]rbac.Role

// DefaultRules returns the permission table for the resource API.
func DefaultRules() RuleSet {
	rules := make(RuleSet, 28)
	add := func(method, pattern string, minRole rbac.Role) {
		rules[Rule{Method: method, Pattern: pattern}] = minRole
	}

	add(http.MethodPost, "teams", rbac.RoleRoot)
	add(http.MethodPost, "teams/{team_id}/api-keys", rbac.RoleAdmin)
	add(http.MethodPost, "teams/{team_id}/users", rbac.RoleAdmin)
	add(http.MethodPost, "teams/{team_id}/images", rbac.RoleUser)

	add(http.MethodPut, "teams/{team_id}", rbac.RoleAdmin)
	add(http.MethodPut, "teams/{team_id}/api-keys/{api_key_id}", rbac.RoleAdmin)
	add(http.MethodPut, "teams/{team_id}/users/{user_id}", rbac.RoleAdmin)
	add(http.MethodPut, "teams/{team_id}/images/{image_id}", rbac.RoleAdmin)
	add(http.MethodPut, "teams/{team_id}/users/{user_id}/images/{image_id}", rbac.RoleUser)

	add(http.MethodGet, "teams", rbac.RoleRoot)
	add(http.MethodGet, "teams/{team_id}", rbac.RoleUser)
	add(http.MethodGet, "teams/{team_id}/api-keys", rbac.RoleAdmin)
	add(http.MethodGet, "teams/{team_id}/api-keys/{api_key_id}", rbac.RoleAdmin)
	add(http.MethodGet, "teams/{team_id}/users", rbac.RoleUser)
	add(http.MethodGet, "teams/{team_id}/users/{user_id}", rbac.RoleUser)
	add(http.MethodGet, "teams/{team_id}/images", rbac.RoleUser)
	add(http.MethodGet, "teams/{team_id}/images/{image_id}", rbac.RoleUser)
	add(http.MethodGet, "teams/{team_id}/users/{user_id}/api-keys", rbac.RoleUser)
	add(http.MethodGet, "teams/{team_id}/users/{user_id}/api-keys/{api_key_id}", rbac.RoleUser)
	add(http.MethodGet, "teams/{team_id}/users/{user_id}/images", rbac.RoleUser)
	add(http.MethodGet, "teams/{team_id}/users/{user_id}/images/{image_id}", rbac.RoleUser)
	add(http.MethodGet, "audit-logs", rbac.RoleRoot)

	add(http.MethodDelete, "teams/{team_id}", rbac.RoleRoot)
	add(http.MethodDelete, "teams/{team_id}/api-keys/{api_key_id}", rbac.RoleAdmin)
	add(http.MethodDelete, "teams/{team_id}/users/{user_id}", rbac.RoleAdmin)
	add(http.MethodDelete, "teams/{team_id}/images/{image_id}", rbac.RoleAdmin)
	add(http.MethodDelete, "teams/{team_id}/users/{user_id}/api-keys/{api_key_id}", rbac.RoleUser)
	add(http.MethodDelete, "teams/{team_id}/users/{user_id}/images/{image_id}", rbac.RoleUser)

	return rules
}

type compiledRule struct {
	template template
	minRole  rbac.Role
}

// Table is a permission rule table compiled for request matching.
type Table struct {
	byMethod map[string][]compiledRule
}

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// NewTable compiles the rule set. It rejects malformed rules and any pair of
// same-method patterns that would match the same path with equal specificity,
// since resolution between such a pair would depend on iteration order.
func NewTable(rules RuleSet) (*Table, error) {
	t := &Table{byMethod: make(map[string][]compiledRule, 4)}
	for rule, minRole := range rules {
		if rule.Method == "" {
			return nil, fmt.Errorf(errRuleMethodEmptyFmt, rule.Pattern)
		}
		if !knownMethods[rule.Method] {
			return nil, fmt.Errorf(errRuleMethodUnknownFmt, rule.Method, rule.Pattern)
		}
		if len(splitPath(rule.Pattern)) == 0 {
			return nil, fmt.Errorf(errRulePatternEmptyFmt, rule.Method)
		}
		if !minRole.Valid() {
			return nil, fmt.Errorf(errRuleMinRoleInvalidFmt, rule.Method, rule.Pattern)
		}
		tpl, err := compileTemplate(rule.Pattern)
		if err != nil {
			return nil, err
		}
		t.byMethod[rule.Method] = append(t.byMethod[rule.Method], compiledRule{template: tpl, minRole: minRole})
	}

	for method, compiled := range t.byMethod {
		for i := 0; i < len(compiled); i++ {
			for j := i + 1; j < len(compiled); j++ {
				a, b := compiled[i].template, compiled[j].template
				if a.literals == b.literals && a.overlaps(b) {
					return nil, fmt.Errorf(errRuleIndistinctFmt, method, a.raw, b.raw)
				}
			}
		}
	}
	return t, nil
}

// MustNewTable compiles the rule set and panics on error.
func MustNewTable(rules RuleSet) *Table {
	t, err := NewTable(rules)
	if err != nil {
		panic(fmt.Sprintf(errMustNewTablePanicFmt, err))
	}
	return t
}

// Resolve returns the minimum role required for the request, selecting the
// most specific matching pattern by literal segment count. The second return
// is false when no rule covers the request.
func (t *Table) Resolve(method, path string) (rbac.Role, bool) {
	parts := splitPath(path)

	best := -1
	var minRole rbac.Role
	for _, cr := range t.byMethod[method] {
		if !cr.template.match(parts) {
			continue
		}
		if cr.template.literals > best {
			best = cr.template.literals
			minRole = cr.minRole
		}
	}
	if best < 0 {
		return 0, false
	}
	return minRole, true
}
