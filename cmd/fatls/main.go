// Command fatls lists the contents of a directory inside a FAT12, FAT16 or
// FAT32 disk image, or writes a single file's cluster data to the path given
// by --extract. It is a thin,
// non-interactive front end over the fat package: no menu, no prompts,
// one invocation does one thing and exits.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	flags "github.com/jessevdk/go-flags"

	"github.com/Cong82221/FilesAllocationTable/internal/fileblock"

	fatpkg "github.com/Cong82221/FilesAllocationTable"
)

type options struct {
	Cluster uint32 `long:"cluster" description:"starting cluster to list (0 = root directory)" default:"0"`
	Extract string `long:"extract" description:"if set, read the file starting at --cluster and write its bytes here instead of listing"`
	Size    int    `long:"size" description:"buffer size in bytes for --extract" default:"67108864"`
	Args    struct {
		Image string `positional-arg-name:"image" description:"path to the disk image"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}

	f, err := os.Open(opts.Args.Image)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatls:", err)
		os.Exit(1)
	}
	defer f.Close()

	vol, err := fatpkg.Open(fileblock.New(f))
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatls: open volume:", err)
		os.Exit(1)
	}

	if opts.Extract != "" {
		extract(vol, opts)
		return
	}
	list(vol, opts)
}

func list(vol *fatpkg.Volume, opts options) {
	records, err := vol.List(opts.Cluster)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatls: list:", err)
		os.Exit(1)
	}
	for _, r := range records {
		kind := "-"
		if r.IsDirectory() {
			kind = "d"
		}
		fmt.Printf("%s %10s %s %s\n", kind, humanize.Bytes(uint64(r.FileSize)), r.ModTime().Format("2006-01-02 15:04:05"), r.Name())
	}
}

func extract(vol *fatpkg.Volume, opts options) {
	buf := make([]byte, opts.Size)
	n, err := vol.ReadFile(opts.Cluster, buf)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatls: extract:", err)
		os.Exit(1)
	}
	if err := os.WriteFile(opts.Extract, buf[:n], 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "fatls: write:", err)
		os.Exit(1)
	}
}
