// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{DigestDir: t.TempDir(), MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecords() []types.Record {
	return []types.Record{
		{
			Identifier: "2301.00001",
			URL:        "https://arxiv.org/abs/2301.00001",
			Title:      "a study of x",
			Abstract:   "a diffusion model.",
			Categories: "cs.lg",
			Created:    "2026-08-27",
			Authors:    []string{"jane smith"},
		},
		{
			Identifier:   "2301.00002",
			URL:          "https://arxiv.org/abs/2301.00002",
			Title:        "a study of y",
			Created:      "2026-08-28",
			Authors:      []string{"joe bloggs", "jane smith"},
			Affiliations: []string{"mit", "mit"},
		},
	}
}

func TestUpsertAndList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	n, err := s.Upsert(ctx, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest created date first.
	assert.Equal(t, "2301.00002", records[0].Identifier)
	assert.Equal(t, []string{"joe bloggs", "jane smith"}, records[0].Authors)
	assert.Equal(t, []string{"mit", "mit"}, records[0].Affiliations)
	assert.Equal(t, "a study of x", records[1].Title)
}

func TestUpsertIdempotentByIdentifier(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Upsert(ctx, sampleRecords())
	require.NoError(t, err)

	// Re-harvesting the same day updates in place.
	updated := sampleRecords()
	updated[0].Title = "a study of x (v2)"
	_, err = s.Upsert(ctx, updated)
	require.NoError(t, err)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	records, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a study of x (v2)", records[1].Title)
}

func TestUpsertSkipsEmptyIdentifier(t *testing.T) {
	s := testStore(t)

	n, err := s.Upsert(context.Background(), []types.Record{{Title: "no id"}})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListHonorsLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Upsert(ctx, sampleRecords())
	require.NoError(t, err)

	records, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestExportYAML(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Upsert(ctx, sampleRecords())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "records.yaml")
	require.NoError(t, s.ExportYAML(ctx, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []types.Record
	require.NoError(t, yaml.Unmarshal(data, &records))
	assert.Len(t, records, 2)
	assert.Equal(t, "2301.00002", records[0].Identifier)
}
