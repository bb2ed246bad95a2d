package fat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadFileLengthLaw builds a tiny FAT16 image with a two-cluster chain
// (clusters 5 and 6, each one sector of 512 bytes) and checks the
// file-read length law: bytes written = chain_length * sectors_per_cluster
// * bytes_per_sector, regardless of any declared file_size.
func TestReadFileLengthLaw(t *testing.T) {
	const (
		bytesPerSector    = 512
		sectorsPerCluster = 1
		reserved          = 1
		fatCount          = 1
		fatSizeSectors    = 1
		rootEntryCount    = 16
	)

	boot := buildBootSector(bootSectorFields{
		bytesPerSector:    bytesPerSector,
		sectorsPerCluster: sectorsPerCluster,
		reservedSectors:   reserved,
		numFATs:           fatCount,
		rootEntryCount:    rootEntryCount,
		fatSize16:         fatSizeSectors,
		totalSectors16:    8192, // N = 8192/1, within the FAT16 classification range
	})

	fatRegion := make([]byte, fatSizeSectors*bytesPerSector)
	putFAT16 := func(c uint32, v uint16) {
		fatRegion[c*2] = byte(v)
		fatRegion[c*2+1] = byte(v >> 8)
	}
	putFAT16(5, 6)
	putFAT16(6, 0xFFFF)

	rootDirSectors := (32*rootEntryCount + bytesPerSector - 1) / bytesPerSector
	dataStart := reserved + fatSizeSectors*fatCount + rootDirSectors

	image := make([]byte, (dataStart+8)*bytesPerSector)
	copy(image[0:], boot)
	copy(image[reserved*bytesPerSector:], fatRegion)

	cluster5Sector := dataStart + (5-2)*sectorsPerCluster
	cluster6Sector := dataStart + (6-2)*sectorsPerCluster
	for i := 0; i < bytesPerSector; i++ {
		image[cluster5Sector*bytesPerSector+i] = 'A'
		image[cluster6Sector*bytesPerSector+i] = 'B'
	}

	vol, err := Open(newMemBlockDevice(image, bytesPerSector))
	require.NoError(t, err)

	buf := make([]byte, 4096)
	n, err := vol.ReadFile(5, buf)
	require.NoError(t, err)
	assert.Equal(t, 1024, n)
	assert.Equal(t, byte('A'), buf[0])
	assert.Equal(t, byte('B'), buf[bytesPerSector])
}
