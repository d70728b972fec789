package simplefs

import (
	"io"

	"github.com/gocarina/gocsv"
)

// InodeReportRow is one machine-readable row of WriteInodeReport's CSV
// output, the sibling of the human-readable stanza Debug prints for the
// same inode.
type InodeReportRow struct {
	InodeNumber    uint32 `csv:"inode"`
	SizeBytes      uint32 `csv:"size_bytes"`
	DirectBlocks   int    `csv:"direct_blocks"`
	HasIndirect    bool   `csv:"has_indirect"`
	IndirectBlocks int    `csv:"indirect_blocks"`
}

// WriteInodeReport writes one CSV row per valid inode of the mounted
// filesystem to w, in the same ascending (block, slot) order Debug uses.
// Each row holds the inode's size and its counts of direct and indirect
// data blocks, not the block numbers Debug lists.
func (fs *FileSystem) WriteInodeReport(w io.Writer) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}

	var rows []*InodeReportRow

	block := zeroedBlock()
	for ib := uint32(0); ib < fs.superblock.InodeBlocks; ib++ {
		if err := fs.disk.Read(uint(1+ib), block); err != nil {
			return ErrIOFailure.WithMessage(err.Error())
		}

		for slot, raw := range decodeInodeBlock(block) {
			if !raw.isValid() {
				continue
			}

			row := &InodeReportRow{
				InodeNumber: ib*InodesPerBlock + uint32(slot),
				SizeBytes:   raw.Size,
				HasIndirect: raw.Indirect != 0,
			}
			for _, d := range raw.Direct {
				if d != 0 {
					row.DirectBlocks++
				}
			}
			if raw.Indirect != 0 {
				indirectBlock := zeroedBlock()
				if err := fs.disk.Read(uint(raw.Indirect), indirectBlock); err != nil {
					return ErrIOFailure.WithMessage(err.Error())
				}
				for _, p := range decodePointerBlock(indirectBlock) {
					if p != 0 {
						row.IndirectBlocks++
					}
				}
			}
			rows = append(rows, row)
		}
	}

	return gocsv.Marshal(rows, w)
}
