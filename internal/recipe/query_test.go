package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/errors"
)

func seeded(t *testing.T) *Collection {
	t.Helper()
	c, err := Seed()
	require.NoError(t, err)
	return c
}

func TestSearch(t *testing.T) {
	c := seeded(t)

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "name substring ignores case",
			query: Query{Name: "PESTO"},
			want:  []string{"Pesto", "Gnocchi al Pesto", "Pasta al Pesto di Rucola"},
		},
		{
			name:  "ingredient substring on any token",
			query: Query{Ingredient: "gruy"},
			want:  []string{"Zuppa di Cipolle", "Quiche Lorraine"},
		},
		{
			name:  "duration is exact",
			query: Query{DurationMinutes: 120},
			want:  []string{"Boeuf Bourguignon"},
		},
		{
			name:  "criteria are AND-combined",
			query: Query{Name: "pa", Ingredient: "pomodor"},
			want:  []string{"Zuppa di Legumi"},
		},
		{
			name:  "no match is an empty result",
			query: Query{Name: "sushi"},
			want:  []string{},
		},
		{
			name:  "empty query returns everything",
			query: Query{},
			want:  names(c.All()),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Search(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestSearchRejectsNegativeDuration(t *testing.T) {
	_, err := seeded(t).Search(Query{DurationMinutes: -1})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDuration)
}

func TestSearchAddingFilterNeverGrowsResult(t *testing.T) {
	c := seeded(t)
	for _, name := range []string{"", "a", "pasta", "zuppa", "x"} {
		base, err := c.Search(Query{Name: name})
		require.NoError(t, err)
		for _, ing := range []string{"o", "uova", "cipolla", "nothing"} {
			narrowed, err := c.Search(Query{Name: name, Ingredient: ing})
			require.NoError(t, err)
			assert.LessOrEqual(t, len(narrowed), len(base), "name=%q ingredient=%q", name, ing)
		}
	}
}

func TestFilterByDurationAndIngredient(t *testing.T) {
	c := seeded(t)

	got, err := c.FilterByDurationAndIngredient(20, "AGLIO")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pesto", "Spaghetti Aglio e Olio", "Pasta al Pesto di Rucola", "Crostini al Pomodoro"}, names(got))

	got, err = c.FilterByDurationAndIngredient(20, "agl")
	require.NoError(t, err)
	assert.Empty(t, got, "ingredient match is exact, not substring")

	_, err = c.FilterByDurationAndIngredient(0, "aglio")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDuration)
}

func TestFilterByTwoIngredients(t *testing.T) {
	c := newTestCollection(t,
		Recipe{Name: "Carbonara", Ingredients: []string{"Pasta", "Uova", "Pecorino"}, DurationMinutes: 30},
		Recipe{Name: "Cacio e Pepe", Ingredients: []string{"Pasta", "Pecorino", "Pepe"}, DurationMinutes: 15},
	)

	assert.Equal(t, []string{"Carbonara"}, names(c.FilterByTwoIngredients("pasta", "uova")))
	assert.Equal(t, []string{"Carbonara"}, names(c.FilterByTwoIngredients("uova", "pasta")), "argument order does not matter")
	assert.Empty(t, c.FilterByTwoIngredients("pasta", "farina"))
	assert.Equal(t, []string{"Carbonara", "Cacio e Pepe"}, names(c.FilterByTwoIngredients("Pecorino", "PASTA")))
}

func TestQueryIsEmpty(t *testing.T) {
	assert.True(t, Query{}.IsEmpty())
	assert.False(t, Query{DurationMinutes: 10}.IsEmpty())
}

func BenchmarkSearchSeed(b *testing.B) {
	c, err := Seed()
	if err != nil {
		b.Fatal(err)
	}
	q := Query{Name: "a", Ingredient: "olio"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Search(q); err != nil {
			b.Fatal(err)
		}
	}
}
