package simplefs

import (
	"fmt"
	"io"
)

// Debug is a standalone inspector that does not require a mount. It reads
// the superblock directly off disk and prints the literal stanza format
// specified in spec §6, then one stanza per valid inode, in ascending
// (block, slot) order. Malformed structures are best-effort: Debug never
// returns an error and silently stops describing an inode it cannot
// decode.
func Debug(disk Disk, w io.Writer) {
	block := zeroedBlock()
	if err := disk.Read(0, block); err != nil {
		return
	}
	sb := decodeSuperblock(block)

	fmt.Fprintln(w, "SuperBlock:")
	if sb.Valid() {
		fmt.Fprintln(w, "    magic number is valid")
	} else {
		fmt.Fprintln(w, "    magic number is not valid")
	}
	fmt.Fprintf(w, "    %d blocks\n", sb.Blocks)
	fmt.Fprintf(w, "    %d inode blocks\n", sb.InodeBlocks)
	fmt.Fprintf(w, "    %d inodes\n", sb.Inodes)

	if !sb.Valid() {
		return
	}

	inodeBlock := zeroedBlock()
	for ib := uint32(0); ib < sb.InodeBlocks; ib++ {
		if err := disk.Read(uint(1+ib), inodeBlock); err != nil {
			return
		}
		inodes := decodeInodeBlock(inodeBlock)
		for slot, raw := range inodes {
			if !raw.isValid() {
				continue
			}
			n := ib*InodesPerBlock + uint32(slot)
			printInodeStanza(disk, w, n, raw)
		}
	}
}

func printInodeStanza(disk Disk, w io.Writer, n uint32, raw rawInode) {
	fmt.Fprintf(w, "Inode %d:\n", n)
	fmt.Fprintf(w, "    size: %d bytes\n", raw.Size)

	fmt.Fprint(w, "    direct blocks:")
	for _, d := range raw.Direct {
		if d != 0 {
			fmt.Fprintf(w, " %d", d)
		}
	}
	fmt.Fprintln(w)

	if raw.Indirect == 0 {
		return
	}

	indirectBlock := zeroedBlock()
	if err := disk.Read(uint(raw.Indirect), indirectBlock); err != nil {
		return
	}

	fmt.Fprintf(w, "    indirect block: %d\n", raw.Indirect)
	fmt.Fprint(w, "    indirect data blocks:")
	for _, p := range decodePointerBlock(indirectBlock) {
		if p != 0 {
			fmt.Fprintf(w, " %d", p)
		}
	}
	fmt.Fprintln(w)
}
