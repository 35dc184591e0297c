package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/recipe"
)

func BenchmarkKeys(b *testing.B) {
	b.Run("search", func(b *testing.B) {
		q := recipe.Query{Name: "Carbonara", Ingredient: "Uova", DurationMinutes: 30}
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = SearchKey(gen(uint64(i)), q)
		}
	})
	b.Run("two_ingredients", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = TwoIngredientKey(gen(uint64(i)), "Pecorino", " guanciale ")
		}
	})
}

func BenchmarkGetOrCompute(b *testing.B) {
	ctx := context.Background()
	results := []recipe.Recipe{
		{Name: "Carbonara", Ingredients: []string{"Pasta", "Uova", "Pecorino", "Guanciale"}, DurationMinutes: 30},
		{Name: "Frittata di Patate", Ingredients: []string{"Uova", "Patate", "Cipolla"}, DurationMinutes: 30},
	}
	compute := func() ([]recipe.Recipe, error) { return results, nil }

	b.Run("hit", func(b *testing.B) {
		c := New(newMemBackend(), time.Minute, nil)
		key := SearchKey(gen(1), recipe.Query{Ingredient: "uova"})
		if _, _, err := c.GetOrCompute(ctx, key, compute); err != nil {
			b.Fatal(err)
		}
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, _, err := c.GetOrCompute(ctx, key, compute); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("miss", func(b *testing.B) {
		c := New(newMemBackend(), time.Minute, nil)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			key := SearchKey(gen(uint64(i)), recipe.Query{Ingredient: "uova"})
			if _, _, err := c.GetOrCompute(ctx, key, compute); err != nil {
				b.Fatal(err)
			}
		}
	})
}
