package patricia

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstRunes(c *children[int]) []rune {
	runes := make([]rune, 0, c.len())
	for _, n := range c.list {
		runes = append(runes, n.prefix[0])
	}
	return runes
}

func TestChildren_Order(t *testing.T) {
	t.Parallel()

	for _, tcase := range []*struct {
		Ins []rune
		Exp []rune
	}{
		{[]rune{'c', 'a', 'b'}, []rune{'a', 'b', 'c'}},
		{[]rune{0, 255, 63, 64, 127, 128}, []rune{0, 63, 64, 127, 128, 255}},
		{[]rune{'日', 'a', 'Б', 256, 'z'}, []rune{'a', 'z', 256, 'Б', '日'}},
		{[]rune{0x10FFFF, 'x', 0x100}, []rune{'x', 0x100, 0x10FFFF}},
	} {
		var (
			tcase = tcase
			name  = fmt.Sprintf("%q", tcase.Ins)
		)

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var c children[int]

			for _, r := range tcase.Ins {
				require.True(t, c.add(newLeaf([]rune{r}, int(r))))
			}
			for _, r := range tcase.Ins {
				assert.False(t, c.add(newLeaf([]rune{r, r}, 0)), "duplicate %q", r)
			}

			assert.Equal(t, tcase.Exp, firstRunes(&c))

			for i, r := range tcase.Exp {
				idx, ok := c.index(r)

				assert.True(t, ok)
				assert.Equal(t, i, idx)
				assert.Equal(t, int(r), c.get(r).val)
			}
		})
	}
}

func TestChildren_IndexMissing(t *testing.T) {
	t.Parallel()

	var c children[int]

	for _, r := range []rune{'b', 'd', 'Б', '日'} {
		c.add(newLeaf([]rune{r}, 0))
	}

	for _, tcase := range []*struct {
		Rune   rune
		ExpIdx int
	}{
		{'a', 0},
		{'c', 1},
		{'e', 2},
		{0xFF, 2},
		{'А', 2}, // Cyrillic capital A sorts before Б
		{'В', 3},
		{'本', 4},
	} {
		idx, ok := c.index(tcase.Rune)

		assert.False(t, ok, "%q", tcase.Rune)
		assert.Equal(t, tcase.ExpIdx, idx, "%q", tcase.Rune)
		assert.Nil(t, c.get(tcase.Rune))
	}
}

func TestChildren_RemoveAt(t *testing.T) {
	t.Parallel()

	var c children[int]

	for _, r := range []rune{'a', 'b', 'Ж', 'c'} {
		c.add(newLeaf([]rune{r}, 0))
	}

	idx, ok := c.index('b')
	require.True(t, ok)
	c.removeAt(idx)

	assert.Equal(t, []rune{'a', 'c', 'Ж'}, firstRunes(&c))
	assert.Equal(t, 2, c.lowCount())
	assert.Nil(t, c.get('b'))

	idx, ok = c.index('Ж')
	require.True(t, ok)
	c.removeAt(idx)

	assert.Equal(t, []rune{'a', 'c'}, firstRunes(&c))
	assert.Equal(t, 2, c.lowCount())
}
