package fat

import (
	"errors"
	"log/slog"

	"github.com/Cong82221/FilesAllocationTable/internal/sectorio"
)

// Volume is a read-only handle onto a FAT12, FAT16 or FAT32 image. It ties
// together boot-sector geometry, region layout, the in-memory FAT table,
// and the sector reader, and exposes the reader's external interface:
// geometry, layout, variant, directory listing, and file reads.
//
// A Volume is not safe for concurrent use: callers needing concurrent
// access should open one Volume per goroutine, or serialize their own
// calls, matching the reference engine's single-handle-per-goroutine model.
type Volume struct {
	io     *sectorio.Reader
	geom   BootGeometry
	layout RegionLayout
	table  fatTable

	dataClusterCount uint32

	log *slog.Logger
}

// Option configures a Volume at Open time.
type Option func(*Volume)

// WithLogger attaches a structured logger. Without one, a Volume logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(v *Volume) { v.log = l }
}

// Open parses bd's boot sector, derives the region layout, and loads the
// full FAT region into memory. It performs no writes and holds no lock on
// bd beyond the calls made during Open.
func Open(bd BlockDevice, opts ...Option) (*Volume, error) {
	v := &Volume{io: sectorio.NewReader(bd, bootSectorSize)}
	for _, opt := range opts {
		opt(v)
	}

	boot, err := v.io.Window(0)
	if err != nil {
		return nil, translateIOErr(err)
	}

	geom, err := decodeBootSector(boot)
	if err != nil {
		return nil, err
	}
	v.geom = geom
	v.io.SetSectorSize(int(geom.BytesPerSector))
	v.layout = geom.Layout()

	if geom.TotalSectors > v.layout.DataStartSector {
		v.dataClusterCount = (geom.TotalSectors - v.layout.DataStartSector) / uint32(geom.SectorsPerCluster)
	}

	v.debug("region layout computed", slog.Uint64("fat_start", uint64(v.layout.FATStartSector)),
		slog.Uint64("root_dir_start", uint64(v.layout.RootDirStartSector)),
		slog.Uint64("data_start", uint64(v.layout.DataStartSector)))

	fatBuf := make([]byte, int(v.layout.FATRegionSectors)*int(geom.BytesPerSector))
	if err := v.io.ReadSectors(fatBuf, int64(v.layout.FATStartSector), int(v.layout.FATRegionSectors)); err != nil {
		return nil, translateIOErr(err)
	}
	v.table = fatTable{variant: geom.Variant, data: fatBuf}

	v.info("opened volume", slog.String("variant", geom.Variant.String()),
		slog.Uint64("total_sectors", uint64(geom.TotalSectors)),
		slog.Uint64("data_clusters", uint64(v.dataClusterCount)))
	return v, nil
}

// Geometry returns the boot-sector fields parsed at Open.
func (v *Volume) Geometry() BootGeometry { return v.geom }

// Layout returns the derived region layout.
func (v *Volume) Layout() RegionLayout { return v.layout }

// Variant returns the volume's FAT encoding.
func (v *Volume) Variant() Variant { return v.geom.Variant }

// List returns the directory records of the directory starting at
// startCluster, in on-disk order, with deleted entries, the end-of-directory
// marker, and records outside the accepted attribute set already filtered
// out. A startCluster of 0 means the root directory: on FAT12/FAT16 that is
// the fixed root region below the data area; on FAT32 it is the chain
// rooted at the boot sector's root_cluster.
func (v *Volume) List(startCluster uint32) ([]DirectoryRecord, error) {
	if startCluster == 0 && v.geom.Variant != FAT32 {
		return v.listFixedRoot()
	}
	if startCluster == 0 {
		startCluster = v.geom.RootCluster
	}
	return v.listChain(startCluster)
}

func (v *Volume) listFixedRoot() ([]DirectoryRecord, error) {
	buf := make([]byte, int(v.layout.RootDirSectors)*v.io.SectorSize())
	if err := v.io.ReadSectors(buf, int64(v.layout.RootDirStartSector), int(v.layout.RootDirSectors)); err != nil {
		return nil, translateIOErr(err)
	}
	v.trace("listed fixed root directory", slog.Int("sectors", int(v.layout.RootDirSectors)))
	return decodeDirectoryRecords(buf)
}

func (v *Volume) listChain(startCluster uint32) ([]DirectoryRecord, error) {
	chain := newClusterChain(v.table, startCluster, v.dataClusterCount)
	clusters, err := chain.collect()
	if err != nil {
		if errors.Is(err, ErrCorruptChain) {
			v.warn("corrupt cluster chain", slog.Uint64("start_cluster", uint64(startCluster)))
		}
		return nil, err
	}

	clusterBytes := int(v.geom.SectorsPerCluster) * v.io.SectorSize()
	buf := make([]byte, len(clusters)*clusterBytes)
	for i, cl := range clusters {
		sector := int64(v.layout.DataSector(cl, v.geom.SectorsPerCluster))
		if err := v.io.ReadSectors(buf[i*clusterBytes:(i+1)*clusterBytes], sector, int(v.geom.SectorsPerCluster)); err != nil {
			return nil, translateIOErr(err)
		}
	}
	v.trace("listed directory chain", slog.Int("clusters", len(clusters)), slog.Uint64("start_cluster", uint64(startCluster)))
	return decodeDirectoryRecords(buf)
}

// translateIOErr maps a sectorio error onto the package's sentinel errors.
func translateIOErr(err error) error {
	if errors.Is(err, sectorio.ErrShortRead) {
		return ErrShortRead
	}
	if err != nil {
		return ErrIO
	}
	return nil
}
