package fat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(name byte, rest [10]byte, attr byte) []byte {
	rec := make([]byte, dirEntrySize)
	rec[0] = name
	copy(rec[1:11], rest[:])
	rec[11] = attr
	return rec
}

func TestDecodeDirectoryRecordsFilterLaw(t *testing.T) {
	var buf []byte
	buf = append(buf, record(0xE5, [10]byte{'X'}, attrArchive)...)     // deleted: skipped
	buf = append(buf, record('A', [10]byte{}, attrLongName)...)        // LFN: skipped
	bEntry := [10]byte{'B', 'B', 'B', 'B', 'B', 'B', 'B', 'T', 'X', 'T'}
	buf = append(buf, record('B', bEntry, attrDirectory)...) // kept

	got, err := decodeDirectoryRecords(buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsDirectory())
	assert.Equal(t, byte(attrDirectory), got[0].Attributes)
	assert.Equal(t, "BBBBBBBB.TXT", got[0].Name())
}

func TestDecodeDirectoryRecordsStopsAtEndMarker(t *testing.T) {
	var buf []byte
	buf = append(buf, record('C', [10]byte{' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '}, attrArchive)...)
	buf = append(buf, record(0x00, [10]byte{}, 0)...) // end of directory
	buf = append(buf, record('D', [10]byte{}, attrArchive)...)

	got, err := decodeDirectoryRecords(buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "C", got[0].Name())
}

func TestDecodeDirectoryRecordsCount(t *testing.T) {
	buf := make([]byte, 3*dirEntrySize)
	for i := 0; i < 3; i++ {
		copy(buf[i*dirEntrySize:], record(byte('A'+i), [10]byte{}, attrArchive))
	}
	got, err := decodeDirectoryRecords(buf)
	require.NoError(t, err)
	assert.Len(t, got, len(buf)/dirEntrySize)
}
