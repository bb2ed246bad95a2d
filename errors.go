package fat

// result is the closed set of error kinds the core surfaces to callers,
// following the reference FAT engine's fileResult enum-as-error pattern.
// Unlike that engine, a result is never printed or swallowed internally:
// every core operation returns it as a normal Go error.
type result int

const (
	resultOK result = iota
	resultIO
	resultShortRead
	resultBadBootSector
	resultCorruptChain
	resultAllocationFailure
)

func (r result) Error() string {
	switch r {
	case resultOK:
		return "fat: ok"
	case resultIO:
		return "fat: i/o error"
	case resultShortRead:
		return "fat: short read"
	case resultBadBootSector:
		return "fat: bad boot sector"
	case resultCorruptChain:
		return "fat: corrupt cluster chain"
	case resultAllocationFailure:
		return "fat: allocation failure"
	default:
		return "fat: unknown error"
	}
}

// Sentinel errors a caller can compare against with errors.Is.
var (
	// ErrIO reports that the underlying block device failed to open, seek, or read.
	ErrIO error = resultIO
	// ErrShortRead reports that the block device returned fewer bytes than requested.
	ErrShortRead error = resultShortRead
	// ErrBadBootSector reports that the boot sector's fields are impossible
	// (zero or non-power-of-two sector size, zero sectors per cluster, zero
	// total sectors, zero FAT count) or that its 0x55 0xAA signature is missing.
	ErrBadBootSector error = resultBadBootSector
	// ErrCorruptChain reports a free or bad-cluster FAT entry found mid-chain,
	// or a cluster that appears twice in one chain.
	ErrCorruptChain error = resultCorruptChain
	// ErrAllocationFailure reports that a transient internal buffer could not be sized.
	ErrAllocationFailure error = resultAllocationFailure
)
