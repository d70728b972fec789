package simplefs

// allocateInode scans the inode table in ascending order (block, then
// slot) and claims the first free inode, per spec §4.E and §9's allocator
// fairness requirement.
func (fs *FileSystem) allocateInode() (uint32, error) {
	block := zeroedBlock()
	for ib := uint(0); ib < uint(fs.superblock.InodeBlocks); ib++ {
		if err := fs.disk.Read(1+ib, block); err != nil {
			return 0, ErrIOFailure.WithMessage(err.Error())
		}

		inodes := decodeInodeBlock(block)
		for slot, raw := range inodes {
			if raw.isValid() {
				continue
			}

			fresh := rawInode{Valid: 1}
			encodeInodeIntoBlock(block, slot, fresh)
			if err := fs.disk.Write(1+ib, block); err != nil {
				return 0, ErrIOFailure.WithMessage(err.Error())
			}

			return uint32(ib)*InodesPerBlock + uint32(slot), nil
		}
	}

	return 0, ErrNoSpace
}

// freeInodeBlocks releases every block reachable from inode back to the
// bitmap, per spec §4.E. It does not modify the inode record itself or the
// disk; the caller is responsible for persisting the now-invalid inode.
func (fs *FileSystem) freeInodeBlocks(inode rawInode) error {
	for _, d := range inode.Direct {
		if d != 0 {
			fs.bitmap.release(uint(d))
		}
	}

	if inode.Indirect == 0 {
		return nil
	}

	indirectBlock := zeroedBlock()
	if err := fs.disk.Read(uint(inode.Indirect), indirectBlock); err != nil {
		return ErrIOFailure.WithMessage(err.Error())
	}
	for _, p := range decodePointerBlock(indirectBlock) {
		if p != 0 {
			fs.bitmap.release(uint(p))
		}
	}
	fs.bitmap.release(uint(inode.Indirect))
	return nil
}
