package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandLayout(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands))
	for _, c := range root.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"demo", "list", "search", "filter", "pair", "frequency", "stats"}, names)
}

func TestPairRequiresTwoArgs(t *testing.T) {
	err := newRootCommand().Run(context.Background(), []string{"recipes", "pair", "aglio"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly two ingredients")
}

func TestUnknownFormatRejected(t *testing.T) {
	err := newRootCommand().Run(context.Background(), []string{"recipes", "--format", "xml", "list"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
