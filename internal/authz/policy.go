// Package authz holds the route → role allow-list evaluated by the role
// gate. A route absent from the table is denied.
package authz

import (
	"fmt"

	"bookstore/internal/domain/model"
)

// Route is "METHOD pattern", pattern as registered in echo (e.g. "/api/libros/:id").
type Route string

func NewRoute(method, pattern string) Route {
	return Route(fmt.Sprintf("%s %s", method, pattern))
}

type Policy struct {
	rules map[Route]map[model.Role]struct{}
}

func NewPolicy() *Policy {
	return &Policy{rules: map[Route]map[model.Role]struct{}{}}
}

// Allowを重ねて呼んだ場合はロールが追加される
func (p *Policy) Allow(method, pattern string, roles ...model.Role) *Policy {
	r := NewRoute(method, pattern)
	set, ok := p.rules[r]
	if !ok {
		set = map[model.Role]struct{}{}
		p.rules[r] = set
	}
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return p
}

// Permits is a plain membership test. No hierarchy between roles.
func (p *Policy) Permits(method, pattern string, role model.Role) bool {
	set, ok := p.rules[NewRoute(method, pattern)]
	if !ok {
		return false
	}
	_, ok = set[role]
	return ok
}

func (p *Policy) Has(method, pattern string) bool {
	_, ok := p.rules[NewRoute(method, pattern)]
	return ok
}

func (p *Policy) Routes() []Route {
	out := make([]Route, 0, len(p.rules))
	for r := range p.rules {
		out = append(out, r)
	}
	return out
}
