package word

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Filter narrows and pages a word listing. The zero value lists the first
// default-sized page of everything.
type Filter struct {
	// Search matches case-insensitively against the word text or the
	// primary definition.
	Search string
	Limit  int
	Offset int
}

func (f Filter) normalized() Filter {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	f.Search = strings.TrimSpace(f.Search)
	return f
}

func (f Filter) apply(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"word": pattern},
			squirrel.Expr("definitions->>'primary' ILIKE ?", pattern),
		})
	}
	return q.
		OrderBy("created_at DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))
}
