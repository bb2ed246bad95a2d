package fat

import (
	"errors"
	"io"
	"log/slog"

	"github.com/noxer/bytewriter"
)

// ReadFile fills dst with the data clusters of the chain starting at
// startCluster, concatenated in chain order, and returns the number of
// bytes written. It does not consult any directory record's file_size: the
// caller's buffer length is the sole bound, matching the component design's
// instruction to leave size accounting to the caller. If dst is shorter
// than the chain's data, ReadFile fills dst and returns without error; if
// the chain is corrupt, it returns as many leading bytes as were written
// before the error along with that error.
func (v *Volume) ReadFile(startCluster uint32, dst []byte) (int, error) {
	w := bytewriter.New(dst)

	clusterBytes := int(v.geom.SectorsPerCluster) * int(v.geom.BytesPerSector)
	buf := make([]byte, clusterBytes)

	written := 0
	chain := newClusterChain(v.table, startCluster, v.dataClusterCount)
	for {
		cl, err := chain.Next()
		if err == io.EOF {
			return written, nil
		}
		if err != nil {
			if errors.Is(err, ErrCorruptChain) {
				v.warn("corrupt cluster chain", slog.Uint64("start_cluster", uint64(startCluster)))
			}
			return written, err
		}

		sector := int64(v.layout.DataSector(cl, v.geom.SectorsPerCluster))
		if err := v.io.ReadSectors(buf, sector, int(v.geom.SectorsPerCluster)); err != nil {
			return written, translateIOErr(err)
		}

		n, werr := w.Write(buf)
		written += n
		if werr != nil {
			return written, nil // Destination buffer is full; stop, not an error.
		}
	}
}
