package solutionbuilder

import (
	"context"
	"testing"

	"github.com/joeycumines/go-solutioncache/asset"
	"github.com/joeycumines/go-solutioncache/solution"
	"github.com/stretchr/testify/require"
)

func manifestOf(b byte, projects ...solution.ManifestProject) solution.Manifest {
	var cs solution.Checksum
	cs[0] = b
	return solution.Manifest{
		Checksum:        cs,
		ID:              "sln",
		PrimaryFilePath: "sln.sln",
		Projects:        projects,
	}
}

func TestBuilder_CreateSolution_FullThenIncremental(t *testing.T) {
	assets := asset.NewMemoryProvider()
	m1 := manifestOf('A', solution.ManifestProject{Name: "Core", FilePath: "core.csproj"})
	m2 := manifestOf('B', solution.ManifestProject{Name: "Core", FilePath: "core.csproj"}, solution.ManifestProject{Name: "Tests", FilePath: "tests.csproj"})
	assets.Put(m1)
	assets.Put(m2)

	b := New(assets)

	incremental, err := b.IsIncrementalUpdate(context.Background(), m1.Checksum)
	require.NoError(t, err)
	require.False(t, incremental, "nothing built yet, so nothing to rebase from")

	snap, err := b.CreateSolution(context.Background(), m1.Checksum)
	require.NoError(t, err)
	require.Equal(t, m1.Checksum, snap.Checksum)
	require.Len(t, snap.Projects, 1)

	incremental, err = b.IsIncrementalUpdate(context.Background(), m2.Checksum)
	require.NoError(t, err)
	require.True(t, incremental, "Core is shared, unchanged, between m1 and m2")

	snap, err = b.CreateSolution(context.Background(), m2.Checksum)
	require.NoError(t, err)
	require.Equal(t, m2.Checksum, snap.Checksum)
	require.Len(t, snap.Projects, 2)
}

func TestBuilder_IsIncrementalUpdate_NoSharedProjects(t *testing.T) {
	assets := asset.NewMemoryProvider()
	m1 := manifestOf('A', solution.ManifestProject{Name: "Core", FilePath: "core.csproj"})
	m2 := manifestOf('B', solution.ManifestProject{Name: "Other", FilePath: "other.csproj"})
	assets.Put(m1)
	assets.Put(m2)

	b := New(assets)
	_, err := b.CreateSolution(context.Background(), m1.Checksum)
	require.NoError(t, err)

	incremental, err := b.IsIncrementalUpdate(context.Background(), m2.Checksum)
	require.NoError(t, err)
	require.False(t, incremental)
}

func TestBuilder_CreateSolution_UnknownChecksum(t *testing.T) {
	assets := asset.NewMemoryProvider()
	b := New(assets)

	var unknown solution.Checksum
	unknown[0] = 0xff

	_, err := b.CreateSolution(context.Background(), unknown)
	require.Error(t, err)

	var buildErr *solution.BuildError
	require.ErrorAs(t, err, &buildErr)
}

func TestBuilder_MinSharedProjects(t *testing.T) {
	assets := asset.NewMemoryProvider()
	m1 := manifestOf('A',
		solution.ManifestProject{Name: "Core", FilePath: "core.csproj"},
		solution.ManifestProject{Name: "Api", FilePath: "api.csproj"},
	)
	m2 := manifestOf('B',
		solution.ManifestProject{Name: "Core", FilePath: "core.csproj"},
		solution.ManifestProject{Name: "Other", FilePath: "other.csproj"},
	)
	assets.Put(m1)
	assets.Put(m2)

	b := New(assets)
	b.MinSharedProjects = 2
	_, err := b.CreateSolution(context.Background(), m1.Checksum)
	require.NoError(t, err)

	incremental, err := b.IsIncrementalUpdate(context.Background(), m2.Checksum)
	require.NoError(t, err)
	require.False(t, incremental, "only one project is shared, below the configured threshold")
}
