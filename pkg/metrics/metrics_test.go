package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecipeOperations.WithLabelValues("add", "ok").Inc()
	m.CollectionSize.Set(3)

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]float64)
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				byName[f.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				byName[f.GetName()] += metric.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, byName["recipe_operations_total"])
	assert.Equal(t, 3.0, byName["recipe_collection_size"])

	assert.NotPanics(t, func() { New(prometheus.NewRegistry()) }, "separate registries do not collide")
}
