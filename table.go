package simplefs

// inodeLocation identifies where an inode lives in the on-disk table.
type inodeLocation struct {
	block uint // containing inode-table block, 1-based from the disk's perspective
	slot  int  // position within that block, [0, InodesPerBlock)
}

// locate maps a zero-based inode number to its containing block and slot
// per spec §3's "Inode numbering".
func locate(n uint32) inodeLocation {
	return inodeLocation{
		block: 1 + uint(n)/InodesPerBlock,
		slot:  int(n) % InodesPerBlock,
	}
}

// loadInode bounds-checks n, reads its containing block, and returns the
// block buffer (for writing back) along with the decoded inode record.
func (fs *FileSystem) loadInode(n uint32) ([]byte, rawInode, error) {
	if n >= fs.superblock.Inodes {
		return nil, rawInode{}, ErrInvalidArgument.WithMessage("inode number out of range")
	}

	loc := locate(n)
	block := zeroedBlock()
	if err := fs.disk.Read(loc.block, block); err != nil {
		return nil, rawInode{}, ErrIOFailure.WithMessage(err.Error())
	}

	inodes := decodeInodeBlock(block)
	return block, inodes[loc.slot], nil
}

// saveInode writes inode back into slot of the already-loaded block buffer
// and persists the block.
func (fs *FileSystem) saveInode(n uint32, block []byte, inode rawInode) error {
	loc := locate(n)
	encodeInodeIntoBlock(block, loc.slot, inode)
	if err := fs.disk.Write(loc.block, block); err != nil {
		return ErrIOFailure.WithMessage(err.Error())
	}
	return nil
}
