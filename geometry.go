package fat

import (
	"encoding/binary"
	"math/bits"

	"github.com/hashicorp/go-multierror"
)

// Variant identifies which of the three FAT encodings a volume uses.
type Variant uint8

const (
	FAT12 Variant = iota + 1
	FAT16
	FAT32
)

func (v Variant) String() string {
	switch v {
	case FAT12:
		return "FAT12"
	case FAT16:
		return "FAT16"
	case FAT32:
		return "FAT32"
	default:
		return "unknown"
	}
}

// Byte offsets of the fields read out of the boot sector (sector 0). All
// multi-byte fields are little-endian. See the Microsoft FAT filesystem
// specification for the full BIOS Parameter Block layout.
const (
	bpbBytesPerSector     = 0x0B
	bpbSectorsPerCluster  = 0x0D
	bpbReservedSectors    = 0x0E
	bpbNumFATs            = 0x10
	bpbRootEntryCount     = 0x11
	bpbTotalSectors16     = 0x13
	bpbFATSize16          = 0x16
	bpbTotalSectors32     = 0x20
	bpbFATSize32          = 0x24
	bpbRootCluster32      = 0x2C
	bootSectorSize        = 512 // default sector size used to read sector 0 itself
	bootSectorSignatureAt = 510
	bootSectorSignature   = 0xAA55 // little-endian 0x55, 0xAA at bootSectorSignatureAt
)

// Classification thresholds on N = total_sectors / sectors_per_cluster
// (the whole-volume cluster count, not the data-region cluster count):
// below fat12Max is FAT12, below fat16Max is FAT16, otherwise FAT32.
const (
	fat12Max = 4085
	fat16Max = 65525
)

// BootGeometry is the immutable result of parsing a volume's boot sector.
type BootGeometry struct {
	BytesPerSector      uint16
	SectorsPerCluster   uint8
	ReservedSectorCount uint16
	FATCount            uint8
	RootEntryCount      uint16
	FATSizeSectors      uint32
	TotalSectors        uint32
	RootCluster         uint32 // meaningful only when Variant == FAT32
	Variant             Variant
}

// RegionLayout is derived arithmetically from BootGeometry and never
// re-read from disk.
type RegionLayout struct {
	FATStartSector      uint32
	FATRegionSectors    uint32
	RootDirStartSector  uint32
	RootDirSectors      uint32
	DataStartSector     uint32
}

// decodeBootSector parses a 512-byte boot sector into a BootGeometry. It
// aggregates every violated invariant into a single error instead of
// stopping at the first one, so a caller inspecting a suspect image sees
// everything wrong with it at once.
func decodeBootSector(sector []byte) (BootGeometry, error) {
	if len(sector) < bootSectorSize {
		return BootGeometry{}, ErrShortRead
	}

	var g BootGeometry
	g.BytesPerSector = binary.LittleEndian.Uint16(sector[bpbBytesPerSector:])
	g.SectorsPerCluster = sector[bpbSectorsPerCluster]
	g.ReservedSectorCount = binary.LittleEndian.Uint16(sector[bpbReservedSectors:])
	g.FATCount = sector[bpbNumFATs]
	g.RootEntryCount = binary.LittleEndian.Uint16(sector[bpbRootEntryCount:])

	g.TotalSectors = uint32(binary.LittleEndian.Uint16(sector[bpbTotalSectors16:]))
	if g.TotalSectors == 0 {
		g.TotalSectors = binary.LittleEndian.Uint32(sector[bpbTotalSectors32:])
	}

	g.FATSizeSectors = uint32(binary.LittleEndian.Uint16(sector[bpbFATSize16:]))
	if g.FATSizeSectors == 0 {
		g.FATSizeSectors = binary.LittleEndian.Uint32(sector[bpbFATSize32:])
	}

	var merr *multierror.Error
	if g.BytesPerSector == 0 {
		merr = multierror.Append(merr, errBootSector("bytes_per_sector is zero"))
	} else if bits.OnesCount16(g.BytesPerSector) != 1 {
		merr = multierror.Append(merr, errBootSector("bytes_per_sector is not a power of two"))
	}
	if g.SectorsPerCluster == 0 {
		merr = multierror.Append(merr, errBootSector("sectors_per_cluster is zero"))
	}
	if g.TotalSectors == 0 {
		merr = multierror.Append(merr, errBootSector("total_sectors is zero"))
	}
	if g.FATCount == 0 {
		merr = multierror.Append(merr, errBootSector("fat_count is zero"))
	}
	if binary.LittleEndian.Uint16(sector[bootSectorSignatureAt:]) != bootSectorSignature {
		merr = multierror.Append(merr, errBootSector("boot sector signature 0x55AA is missing"))
	}
	if merr.ErrorOrNil() != nil {
		merr = multierror.Append(merr, ErrBadBootSector)
		return BootGeometry{}, merr
	}

	if g.SectorsPerCluster != 0 {
		n := g.TotalSectors / uint32(g.SectorsPerCluster)
		switch {
		case n < fat12Max:
			g.Variant = FAT12
		case n < fat16Max:
			g.Variant = FAT16
		default:
			g.Variant = FAT32
		}
	}
	if g.Variant == FAT32 {
		g.RootCluster = binary.LittleEndian.Uint32(sector[bpbRootCluster32:])
	}
	return g, nil
}

func errBootSector(msg string) error { return bootSectorDetail(msg) }

// bootSectorDetail carries one violated-invariant message; it participates
// in the multierror chain and in errors.Is(err, ErrBadBootSector) via that
// chain's Unwrap.
type bootSectorDetail string

func (d bootSectorDetail) Error() string { return string(d) }

// Layout computes RegionLayout from g. Sectors-per-cluster of zero would
// divide by zero in data-region arithmetic elsewhere, but decodeBootSector
// already rejects that case before a BootGeometry is handed to callers.
func (g BootGeometry) Layout() RegionLayout {
	var l RegionLayout
	l.FATStartSector = uint32(g.ReservedSectorCount)
	l.FATRegionSectors = g.FATSizeSectors * uint32(g.FATCount)
	l.RootDirStartSector = l.FATStartSector + l.FATRegionSectors
	const dirEntrySize = 32
	l.RootDirSectors = (dirEntrySize*uint32(g.RootEntryCount) + uint32(g.BytesPerSector) - 1) / uint32(g.BytesPerSector)
	l.DataStartSector = l.RootDirStartSector + l.RootDirSectors
	return l
}

// DataSector returns the absolute sector number of the first sector of
// cluster clust. Cluster numbers below 2 are not valid data clusters.
func (l RegionLayout) DataSector(clust uint32, sectorsPerCluster uint8) uint32 {
	return l.DataStartSector + (clust-2)*uint32(sectorsPerCluster)
}
