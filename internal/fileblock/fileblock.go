// Package fileblock adapts an *os.File holding a raw disk image to the
// fat package's BlockDevice interface, for command-line tools that open
// images by path rather than supplying their own storage abstraction.
package fileblock

import "io"

// Device reads fixed-size blocks from an underlying ReaderAt. It assumes
// 512-byte blocks, the near-universal case for FAT disk images; a volume
// whose boot sector reports a different bytes_per_sector is out of scope
// for this adapter.
type Device struct {
	r io.ReaderAt
}

const blockSize = 512

// New wraps r as a 512-byte-block BlockDevice.
func New(r io.ReaderAt) *Device { return &Device{r: r} }

// ReadBlocks implements fat.BlockDevice.
func (d *Device) ReadBlocks(dst []byte, startBlock int64) (int, error) {
	return d.r.ReadAt(dst, startBlock*blockSize)
}
