package fat

import (
	"encoding/binary"
	"time"

	"github.com/go-restruct/restruct"

	"github.com/Cong82221/FilesAllocationTable/internal/oemtext"
)

// Directory-record attribute bits (spec.md §3's accepted set plus the
// rejected ones the filter law excludes).
const (
	attrReadOnly  = 0x01
	attrHidden    = 0x02
	attrSystem    = 0x04
	attrVolumeID  = 0x08
	attrDirectory = 0x10
	attrArchive   = 0x20
	attrLongName  = 0x0F

	dirEntrySize = 32
)

// DirectoryRecord is a parsed 32-byte short-name directory entry.
type DirectoryRecord struct {
	RawName      [11]byte // 8-byte name + 3-byte extension, space-padded, unnormalized
	Attributes   uint8
	WriteTime    uint16 // packed DOS time
	WriteDate    uint16 // packed DOS date
	StartCluster uint32 // high word is zero on FAT12/16
	FileSize     uint32
}

// rawDirEntry is the on-disk layout of a 32-byte directory entry, decoded
// with go-restruct instead of hand-rolled binary.LittleEndian offsets: the
// field order and field sizes are the source of truth for the byte layout.
type rawDirEntry struct {
	Name            [11]byte
	Attr            uint8
	NTReserved      uint8
	CreateTimeTenth uint8
	CreateTime      uint16
	CreateDate      uint16
	LastAccessDate  uint16
	FirstClusterHi  uint16
	WriteTime       uint16
	WriteDate       uint16
	FirstClusterLo  uint16
	FileSize        uint32
}

// Name returns the display name "NAME.EXT" (or "NAME" with no extension),
// decoded from the 8.3 OEM-codepage raw bytes.
func (d DirectoryRecord) Name() string {
	return oemtext.DecodeShortName(d.RawName)
}

// IsDirectory reports whether this record's cluster chain should be
// interpreted as a subdirectory rather than a file's data.
func (d DirectoryRecord) IsDirectory() bool {
	return d.Attributes&attrDirectory != 0
}

// ModTime decodes the packed write_date/write_time fields into a time.Time,
// following the same bit layout as the reference engine's FileInfo.ModTime
// and the original C implementation's date/time decomposition.
func (d DirectoryRecord) ModTime() time.Time {
	hour := int(d.WriteTime >> 11)
	min := int((d.WriteTime >> 5) & 0x3F)
	sec := 2 * int(d.WriteTime&0x1F)
	year := int(d.WriteDate>>9) + 1980
	month := time.Month((d.WriteDate >> 5) & 0x0F)
	day := int(d.WriteDate & 0x1F)
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC)
}

// decodeDirectoryRecords scans a buffer of whole 32-byte directory records
// and returns the accepted ones, in source order. It implements the
// filtering law from spec.md §3/§4.5: records are rejected for a first
// name byte of 0x00 (end-of-directory; scanning stops, matching the
// specification's recommended behavior rather than the reference source's
// scan-to-end-of-buffer behavior) or 0xE5 (deleted), or for an attribute
// byte outside {0x00, 0x01, 0x10, 0x20}.
func decodeDirectoryRecords(buf []byte) ([]DirectoryRecord, error) {
	var out []DirectoryRecord
	for off := 0; off+dirEntrySize <= len(buf); off += dirEntrySize {
		rec := buf[off : off+dirEntrySize]
		first := rec[0]
		if first == 0x00 {
			break
		}
		if first == 0xE5 {
			continue
		}

		var raw rawDirEntry
		if err := restruct.Unpack(rec, binary.LittleEndian, &raw); err != nil {
			return nil, ErrAllocationFailure
		}
		switch raw.Attr {
		case 0x00, attrReadOnly, attrDirectory, attrArchive:
		default:
			continue // LFN (0x0F), volume label (0x08), hidden (0x02), system (0x04), or combinations thereof.
		}

		out = append(out, DirectoryRecord{
			RawName:      raw.Name,
			Attributes:   raw.Attr,
			WriteTime:    raw.WriteTime,
			WriteDate:    raw.WriteDate,
			StartCluster: uint32(raw.FirstClusterHi)<<16 | uint32(raw.FirstClusterLo),
			FileSize:     raw.FileSize,
		})
	}
	return out, nil
}
