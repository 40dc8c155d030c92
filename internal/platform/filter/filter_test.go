package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	name     string
	category string
}

func (r record) fields() map[string]string {
	return map[string]string{"name": r.name, "category": r.category}
}

var records = []record{
	{name: "Website Redesign", category: "Design"},
	{name: "Backend API", category: "Development"},
}

func apply(s *Set) []string {
	var out []string
	for _, r := range records {
		if s.Match(r.fields()) {
			out = append(out, r.name)
		}
	}
	return out
}

func ptr(s string) *string { return &s }

func TestSet_Scenario(t *testing.T) {
	t.Run("category partial lowercase", func(t *testing.T) {
		s := (&Set{}).Contains("category", ptr("dev"))
		assert.Equal(t, []string{"Backend API"}, apply(s))
	})

	t.Run("name substring", func(t *testing.T) {
		s := (&Set{}).Contains("name", ptr("site"))
		assert.Equal(t, []string{"Website Redesign"}, apply(s))
	})

	t.Run("no parameters", func(t *testing.T) {
		s := (&Set{}).Contains("name", nil).Contains("category", nil)
		clause, _ := s.SQL(1)
		assert.Empty(t, clause)
		assert.Equal(t, []string{"Website Redesign", "Backend API"}, apply(s))
	})
}

func TestSet_CaseInsensitive(t *testing.T) {
	upper := (&Set{}).Contains("name", ptr("API"))
	lower := (&Set{}).Contains("name", ptr("api"))
	assert.Equal(t, apply(upper), apply(lower))
	assert.Equal(t, []string{"Backend API"}, apply(lower))
}

func TestSet_NonMatchingExcludes(t *testing.T) {
	s := (&Set{}).Contains("name", ptr("mobile"))
	assert.Empty(t, apply(s))
}

func TestSet_ConjunctionIsIntersection(t *testing.T) {
	cases := []struct{ name, category string }{
		{"e", "de"},
		{"api", "design"},
		{"re", "des"},
		{"", "dev"},
	}
	for _, tc := range cases {
		both := apply((&Set{}).Contains("name", ptr(tc.name)).Contains("category", ptr(tc.category)))
		byName := apply((&Set{}).Contains("name", ptr(tc.name)))
		byCategory := apply((&Set{}).Contains("category", ptr(tc.category)))

		var want []string
		for _, n := range byName {
			for _, c := range byCategory {
				if n == c {
					want = append(want, n)
				}
			}
		}
		assert.Equal(t, want, both, "name=%q category=%q", tc.name, tc.category)
	}
}

func TestSet_EmptyValueMatchesEverything(t *testing.T) {
	s := (&Set{}).Contains("name", ptr(""))
	clause, args := s.SQL(1)
	assert.NotEmpty(t, clause)
	assert.Equal(t, []any{""}, args)
	assert.Len(t, apply(s), len(records))
}

func TestSet_SQL(t *testing.T) {
	t.Run("empty set renders nothing", func(t *testing.T) {
		clause, args := (&Set{}).SQL(1)
		assert.Empty(t, clause)
		assert.Nil(t, args)
	})

	t.Run("renders conjunction with numbered placeholders", func(t *testing.T) {
		s := (&Set{}).Contains("p.name", ptr("Site")).Contains("c.name", ptr("50%_off"))
		clause, args := s.SQL(3)
		assert.Equal(t, "strpos(lower(p.name), lower($3)) > 0 AND strpos(lower(c.name), lower($4)) > 0", clause)
		require.Len(t, args, 2)
		assert.Equal(t, "Site", args[0])
		assert.Equal(t, "50%_off", args[1], "wildcards are passed through literally")
	})
}

func TestParam(t *testing.T) {
	assert.Nil(t, Param(""))
	require.NotNil(t, Param("foo"))
	assert.Equal(t, "foo", *Param("foo"))
}
