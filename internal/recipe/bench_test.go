package recipe

import (
	"fmt"
	"testing"
)

var benchIngredients = []string{
	"Pasta", "Uova", "Pecorino", "Parmigiano", "Pepe Nero", "Guanciale",
	"Sugo di Pomodoro", "Basilico", "Olio d'Oliva", "Sale", "Aglio", "Cipolla",
}

// benchCollection builds n recipes with six rotating ingredients each.
func benchCollection(b *testing.B, n int) *Collection {
	b.Helper()
	c := NewCollection()
	for i := 0; i < n; i++ {
		ingredients := make([]string, 6)
		for j := range ingredients {
			ingredients[j] = benchIngredients[(i+j)%len(benchIngredients)]
		}
		if _, err := c.Add(fmt.Sprintf("Recipe %d", i), ingredients, 10+i%110); err != nil {
			b.Fatal(err)
		}
	}
	return c
}

var benchSizes = []int{100, 1000, 10000}

func BenchmarkSearch(b *testing.B) {
	queries := []struct {
		name string
		q    Query
	}{
		{"name", Query{Name: "recipe 9"}},
		{"ingredient", Query{Ingredient: "pomodoro"}},
		{"duration", Query{DurationMinutes: 30}},
		{"combined", Query{Name: "recipe", Ingredient: "uova", DurationMinutes: 45}},
	}
	for _, n := range benchSizes {
		c := benchCollection(b, n)
		for _, q := range queries {
			b.Run(fmt.Sprintf("recipes_%d/%s", n, q.name), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := c.Search(q.q); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkFilters(b *testing.B) {
	for _, n := range benchSizes {
		c := benchCollection(b, n)
		b.Run(fmt.Sprintf("duration_ingredient/recipes_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := c.FilterByDurationAndIngredient(40, "parmigiano"); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(fmt.Sprintf("two_ingredients/recipes_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = c.FilterByTwoIngredients("Uova", "guanciale")
			}
		})
	}
}

func BenchmarkStatistics(b *testing.B) {
	for _, n := range benchSizes {
		c := benchCollection(b, n)
		b.Run(fmt.Sprintf("ingredients/recipes_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := c.IngredientStatistics(DefaultTopIngredients); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(fmt.Sprintf("duration/recipes_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := c.DurationStatistics(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSplitIngredients(b *testing.B) {
	inputs := map[string]string{
		"short": "Pasta, Uova",
		"long":  "Pasta, Uova, Pecorino, Parmigiano, Pepe Nero, Guanciale, Sale, Aglio, Cipolla, Basilico",
		"blank": " , ,Pasta,, , Uova ,",
	}
	for name, raw := range inputs {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = SplitIngredients(raw)
			}
		})
	}
}
