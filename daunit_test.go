package datrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnitLeafValueRoundTrip(t *testing.T) {
	u := newLeafUnit(42)
	require.True(t, u.HasValue())
	require.Equal(t, int32(42), u.Value())
}

func TestUnitEncodeOffsetDirectLayout(t *testing.T) {
	u, err := encodeOffset(12345, true, 'a')
	require.NoError(t, err)
	require.False(t, u.HasValue())
	require.True(t, u.HasLeaf())
	require.Equal(t, byte('a'), u.Label())
	require.Equal(t, uint32(12345), u.Offset())
}

func TestUnitEncodeOffsetExtendedLayout(t *testing.T) {
	offset := uint32(1<<21) + (1 << 8) // clears low 8 bits, exceeds 21-bit direct range
	u, err := encodeOffset(offset, false, 'z')
	require.NoError(t, err)
	require.Equal(t, offset, u.Offset())
	require.Equal(t, byte('z'), u.Label())
}

func TestUnitEncodeOffsetTooLarge(t *testing.T) {
	_, err := encodeOffset(1<<29, false, 0)
	require.Error(t, err)
	var be *BuildError
	require.ErrorAs(t, err, &be)
	require.Equal(t, OffsetTooLarge, be.Kind)
}

func TestUnitEncodeOffsetRejectsUnalignedLargeOffset(t *testing.T) {
	_, err := encodeOffset(1<<21+1, false, 0)
	require.Error(t, err)
}

func TestFitsOffsetEncoding(t *testing.T) {
	require.True(t, fitsOffsetEncoding(0))
	require.True(t, fitsOffsetEncoding((1<<21)-1))
	require.True(t, fitsOffsetEncoding(1<<21)) // low 8 bits zero
	require.False(t, fitsOffsetEncoding((1<<21)+1))
}

func TestWithLabelPreservesOtherFields(t *testing.T) {
	u, err := encodeOffset(99, true, 'a')
	require.NoError(t, err)
	u2 := withLabel(u, 'b')
	require.Equal(t, byte('b'), u2.Label())
	require.Equal(t, uint32(99), u2.Offset())
	require.True(t, u2.HasLeaf())
}

func TestWithOffsetPreservesLabel(t *testing.T) {
	u, err := encodeOffset(99, false, 'q')
	require.NoError(t, err)
	u2, err := withOffset(u, 500, true)
	require.NoError(t, err)
	require.Equal(t, byte('q'), u2.Label())
	require.Equal(t, uint32(500), u2.Offset())
	require.True(t, u2.HasLeaf())
}
