package fat

import "encoding/binary"

// buildBootSector assembles a 512-byte boot sector with the given BPB
// field values at their specified offsets and the 0x55 0xAA signature at
// offset 510; all other bytes are zero. Only the fields this package reads
// are filled in — jump instruction, OEM
// name, and volume label are irrelevant to decoding and left blank, as
// this package never validates them.
type bootSectorFields struct {
	bytesPerSector    uint16
	sectorsPerCluster uint8
	reservedSectors   uint16
	numFATs           uint8
	rootEntryCount    uint16
	totalSectors16    uint16
	fatSize16         uint16
	totalSectors32    uint32
	fatSize32         uint32
	rootCluster32     uint32
}

func buildBootSector(f bootSectorFields) []byte {
	b := make([]byte, bootSectorSize)
	binary.LittleEndian.PutUint16(b[bpbBytesPerSector:], f.bytesPerSector)
	b[bpbSectorsPerCluster] = f.sectorsPerCluster
	binary.LittleEndian.PutUint16(b[bpbReservedSectors:], f.reservedSectors)
	b[bpbNumFATs] = f.numFATs
	binary.LittleEndian.PutUint16(b[bpbRootEntryCount:], f.rootEntryCount)
	binary.LittleEndian.PutUint16(b[bpbTotalSectors16:], f.totalSectors16)
	binary.LittleEndian.PutUint16(b[bpbFATSize16:], f.fatSize16)
	binary.LittleEndian.PutUint32(b[bpbTotalSectors32:], f.totalSectors32)
	binary.LittleEndian.PutUint32(b[bpbFATSize32:], f.fatSize32)
	binary.LittleEndian.PutUint32(b[bpbRootCluster32:], f.rootCluster32)
	binary.LittleEndian.PutUint16(b[bootSectorSignatureAt:], bootSectorSignature)
	return b
}

// memBlockDevice is a trivial BlockDevice over an in-memory image, sliced
// into fixed-size blocks. Grounded on the reference engine's in-memory
// test device (DefaultFATByteBlocks), simplified to read-only.
type memBlockDevice struct {
	image     []byte
	blockSize int
}

func newMemBlockDevice(image []byte, blockSize int) *memBlockDevice {
	return &memBlockDevice{image: image, blockSize: blockSize}
}

func (d *memBlockDevice) ReadBlocks(dst []byte, startBlock int64) (int, error) {
	off := startBlock * int64(d.blockSize)
	n := copy(dst, d.image[off:])
	return n, nil
}
