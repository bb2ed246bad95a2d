// Package fat reads FAT12, FAT16 and FAT32 disk images without writing to
// them. It parses the boot sector, derives the sector-region geometry,
// decodes File Allocation Table entries of all three on-disk encodings,
// walks cluster chains, and enumerates short-name directory records.
//
// The package never mounts, writes, reconstructs long file names, parses
// volume labels, or interprets exFAT. Recursing into subdirectories,
// formatting names for display, and presenting results interactively are
// left to callers.
package fat
