package csvstore

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beka-birhanu/vinom-maze/generator"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firstSource struct{}

func (firstSource) Intn(int) int { return 0 }

func TestEncode(t *testing.T) {
	g, _, err := generator.Generate(3, 3, &generator.Options{Source: firstSource{}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, g))

	golden, err := os.ReadFile(filepath.Join("testdata", "maze_3x3.csv"))
	require.NoError(t, err)
	assert.Equal(t, string(golden), buf.String())
}

func TestDecode(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		g, _, err := generator.Generate(7, 4, &generator.Options{Seed: 11})
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, g))

		loaded, err := Decode(&buf)
		require.NoError(t, err)
		assert.True(t, g.Equal(loaded))
	})

	t.Run("Table dump with index column", func(t *testing.T) {
		f, err := os.Open(filepath.Join("testdata", "table_dump_2x1.csv"))
		require.NoError(t, err)
		defer f.Close()

		g, err := Decode(f)
		require.NoError(t, err)
		assert.Equal(t, 2, g.Width())
		assert.Equal(t, 1, g.Height())

		left, _ := g.At(0, 0)
		right, _ := g.At(1, 0)
		assert.False(t, left.RightWall)
		assert.False(t, right.LeftWall)
		assert.True(t, g.AllVisited())
	})

	errorCases := []struct {
		name     string
		input    string
		expected error
	}{
		{
			name:     "empty input",
			input:    "",
			expected: ErrIncomplete,
		},
		{
			name:     "header only",
			input:    "x,y,left,up,right,down,visited\n",
			expected: ErrIncomplete,
		},
		{
			name:     "missing column",
			input:    "x,y,left,up,right,down\n0,0,true,true,true,false\n",
			expected: ErrMissingColumn,
		},
		{
			name:     "bad boolean",
			input:    "x,y,left,up,right,down,visited\n0,0,yes,true,false,false,true\n",
			expected: ErrBadRecord,
		},
		{
			name:     "negative coordinate",
			input:    "x,y,left,up,right,down,visited\n-1,0,true,true,false,false,true\n",
			expected: ErrBadRecord,
		},
		{
			name: "missing cell",
			input: "x,y,left,up,right,down,visited\n" +
				"0,0,true,true,true,false,true\n" +
				"1,1,true,true,false,true,true\n",
			expected: ErrIncomplete,
		},
		{
			name: "duplicate cell",
			input: "x,y,left,up,right,down,visited\n" +
				"0,0,true,true,true,false,true\n" +
				"0,0,true,true,true,false,true\n" +
				"1,0,true,true,true,true,true\n" +
				"1,1,true,true,false,true,true\n",
			expected: ErrBadRecord,
		},
		{
			name: "walled entrance and exit",
			input: "x,y,left,up,right,down,visited\n" +
				"0,0,true,true,false,true,true\n" +
				"1,0,false,true,true,true,true\n",
			expected: maze.ErrClosedBoundary,
		},
		{
			name: "unvisited cells",
			input: "x,y,left,up,right,down,visited\n" +
				"0,0,true,true,false,false,false\n" +
				"1,0,false,true,false,true,false\n",
			expected: maze.ErrUnvisited,
		},
		{
			name: "one-sided wall",
			input: "x,y,left,up,right,down,visited\n" +
				"0,0,true,true,false,false,true\n" +
				"1,0,true,true,false,true,true\n",
			expected: maze.ErrWallMismatch,
		},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.input))
			assert.ErrorIs(t, err, tc.expected)
		})
	}

	t.Run("grid check failures are bad records", func(t *testing.T) {
		_, err := Decode(strings.NewReader("x,y,left,up,right,down,visited\n" +
			"0,0,true,true,false,true,true\n" +
			"1,0,false,true,true,true,true\n"))
		assert.ErrorIs(t, err, ErrBadRecord)
	})
}

func TestSaveLoad(t *testing.T) {
	g, _, err := generator.Generate(5, 5, &generator.Options{Seed: 5})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "maze.csv")
	require.NoError(t, Save(path, g))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, g.Equal(loaded))

	_, err = Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
