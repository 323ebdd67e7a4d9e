package maze

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseYAML(t *testing.T) {
	t.Run("Strict file with both sides authored", func(t *testing.T) {
		data := []byte(`
size: 3
walls:
  - {row: 0, col: 0, side: down}
  - {row: 1, col: 0, side: up}
`)
		m, err := ParseYAML(data)
		require.NoError(t, err)
		assert.True(t, m.HasWall(Position{0, 0}, Down))
		assert.Len(t, m.InteriorWalls(), 1)
	})

	t.Run("Strict file with one side missing", func(t *testing.T) {
		data := []byte(`
size: 3
walls:
  - {row: 0, col: 0, side: down}
`)
		_, err := ParseYAML(data)
		assert.ErrorIs(t, err, ErrAsymmetricWall)
	})

	t.Run("Mirrored file", func(t *testing.T) {
		data := []byte(`
size: 3
mirrored: true
walls:
  - {row: 0, col: 0, side: east}
`)
		m, err := ParseYAML(data)
		require.NoError(t, err)
		assert.True(t, m.HasWall(Position{0, 1}, Left))
	})

	t.Run("Bad input", func(t *testing.T) {
		_, err := ParseYAML([]byte("size: ["))
		assert.ErrorIs(t, err, ErrMalformedLayout)
		_, err = ParseYAML([]byte("size: 0"))
		assert.ErrorIs(t, err, ErrInvalidSize)
		_, err = ParseYAML([]byte("size: 2\nwalls:\n  - {row: 5, col: 0, side: up}\n"))
		assert.ErrorIs(t, err, ErrOutOfBounds)
		_, err = ParseYAML([]byte("size: 2\nwalls:\n  - {row: 0, col: 0, side: diagonal}\n"))
		assert.ErrorIs(t, err, ErrInvalidDirection)
	})

	t.Run("Wall without a side", func(t *testing.T) {
		_, err := ParseYAML([]byte("size: 3\nmirrored: true\nwalls:\n  - {row: 1, col: 1}\n"))
		assert.ErrorIs(t, err, ErrMissingSide)
		assert.ErrorIs(t, err, ErrMalformedLayout)
	})

	t.Run("Round trip keeps the layout", func(t *testing.T) {
		original := Classic()
		data, err := yaml.Marshal(original)
		require.NoError(t, err)
		decoded, err := ParseYAML(data)
		require.NoError(t, err)
		assert.Equal(t, original.Digest(), decoded.Digest())
	})
}

func TestWall_UnmarshalJSON(t *testing.T) {
	var w Wall
	require.NoError(t, json.Unmarshal([]byte(`{"row": 1, "col": 2, "side": "left"}`), &w))
	assert.Equal(t, Wall{Row: 1, Col: 2, Side: Left}, w)

	err := json.Unmarshal([]byte(`{"row": 1, "col": 2}`), &w)
	assert.ErrorIs(t, err, ErrMissingSide)
}
