package simplefs

// maxLogicalBlocks is the number of logical blocks addressable through the
// direct pointers plus the single indirect block (spec §4.F.1).
const maxLogicalBlocks = PointersPerInode + PointersPerBlock

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// resolveRead returns the physical block number referenced by logical
// block L of inode, or 0 if L names an unallocated (never-written) slot.
// It reads the indirect block from disk only when L falls in the indirect
// range.
func (fs *FileSystem) resolveRead(inode rawInode, logical uint32) (uint32, error) {
	if logical < PointersPerInode {
		return inode.Direct[logical], nil
	}
	if logical >= maxLogicalBlocks {
		return 0, ErrInvalidArgument.WithMessage("logical block out of range")
	}
	if inode.Indirect == 0 {
		return 0, nil
	}

	indirectBlock := zeroedBlock()
	if err := fs.disk.Read(uint(inode.Indirect), indirectBlock); err != nil {
		return 0, ErrIOFailure.WithMessage(err.Error())
	}
	pointers := decodePointerBlock(indirectBlock)
	return pointers[logical-PointersPerInode], nil
}

// Stat returns the size, in bytes, of inode n. It fails if n is out of
// range or not currently allocated.
func (fs *FileSystem) Stat(n uint32) (uint32, error) {
	if err := fs.requireMounted(); err != nil {
		return 0, err
	}

	_, inode, err := fs.loadInode(n)
	if err != nil {
		return 0, err
	}
	if !inode.isValid() {
		return 0, ErrInvalidArgument.WithMessage("inode is not allocated")
	}
	return inode.Size, nil
}

// Create allocates a fresh, empty inode and returns its number.
func (fs *FileSystem) Create() (uint32, error) {
	if err := fs.requireMounted(); err != nil {
		return 0, err
	}
	return fs.allocateInode()
}

// Remove releases every block reachable from inode n and marks it free.
// It fails if n is out of range or not currently allocated.
func (fs *FileSystem) Remove(n uint32) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}

	block, inode, err := fs.loadInode(n)
	if err != nil {
		return err
	}
	if !inode.isValid() {
		return ErrInvalidArgument.WithMessage("inode is not allocated")
	}

	if err := fs.freeInodeBlocks(inode); err != nil {
		return err
	}

	return fs.saveInode(n, block, rawInode{})
}

// Read copies up to length bytes of inode n's contents, starting at
// offset, into out. out must be at least length bytes long. It returns the
// number of bytes copied.
func (fs *FileSystem) Read(n uint32, out []byte, length uint32, offset uint32) (uint32, error) {
	if err := fs.requireMounted(); err != nil {
		return 0, err
	}

	_, inode, err := fs.loadInode(n)
	if err != nil {
		return 0, err
	}
	if !inode.isValid() {
		return 0, ErrInvalidArgument.WithMessage("inode is not allocated")
	}

	if offset >= inode.Size {
		return 0, nil
	}

	toRead := minU32(length, inode.Size-offset)
	if toRead == 0 {
		return 0, nil
	}

	var delivered uint32
	logical := offset / BlockSize
	intraOffset := offset % BlockSize

	for delivered < toRead {
		physical, err := fs.resolveRead(inode, logical)
		if err != nil {
			return delivered, err
		}

		chunk := minU32(BlockSize-intraOffset, toRead-delivered)

		if physical == 0 {
			// A logical block within the claimed size that was never
			// allocated reads back as zeros.
			for i := uint32(0); i < chunk; i++ {
				out[delivered+i] = 0
			}
		} else {
			block := zeroedBlock()
			if err := fs.disk.Read(uint(physical), block); err != nil {
				return delivered, ErrIOFailure.WithMessage(err.Error())
			}
			copy(out[delivered:delivered+chunk], block[intraOffset:intraOffset+chunk])
		}

		delivered += chunk
		logical++
		intraOffset = 0
	}

	return delivered, nil
}

// Write copies length bytes from in, starting at offset, into inode n,
// lazily allocating direct and indirect blocks as needed. It returns the
// number of bytes actually persisted, which is length unless the allocator
// is exhausted partway through, in which case it is the largest prefix
// that could be written; allocator exhaustion is not an error (spec §4.F.3,
// §7).
func (fs *FileSystem) Write(n uint32, in []byte, length uint32, offset uint32) (uint32, error) {
	if err := fs.requireMounted(); err != nil {
		return 0, err
	}

	block, inode, err := fs.loadInode(n)
	if err != nil {
		return 0, err
	}
	if !inode.isValid() {
		return 0, ErrInvalidArgument.WithMessage("inode is not allocated")
	}
	if uint64(offset)+uint64(length) > MaxFileSize {
		return 0, ErrInvalidArgument.WithMessage("write extends past maximum file size")
	}

	var (
		delivered     uint32
		indirectBlock []byte
		indirectDirty bool
		exhausted     bool
	)

	persist := func() error {
		if indirectDirty {
			if err := fs.disk.Write(uint(inode.Indirect), indirectBlock); err != nil {
				return ErrIOFailure.WithMessage(err.Error())
			}
			indirectDirty = false
		}
		if newSize := offset + delivered; newSize > inode.Size {
			inode.Size = newSize
		}
		return fs.saveInode(n, block, inode)
	}

	for delivered < length && !exhausted {
		logicalOffset := offset + delivered
		logical := logicalOffset / BlockSize
		intraOffset := logicalOffset % BlockSize
		if logical >= maxLogicalBlocks {
			return delivered, ErrInvalidArgument.WithMessage("write extends past maximum file size")
		}

		if logical >= PointersPerInode && inode.Indirect == 0 {
			claimed, cerr := fs.bitmap.claim(uint(fs.superblock.InodeBlocks))
			if cerr != nil {
				exhausted = true
				break
			}
			inode.Indirect = uint32(claimed)
			indirectBlock = zeroedBlock()
			if err := fs.disk.Write(uint(claimed), indirectBlock); err != nil {
				return delivered, ErrIOFailure.WithMessage(err.Error())
			}
			indirectDirty = false
		}

		if logical >= PointersPerInode && indirectBlock == nil {
			indirectBlock = zeroedBlock()
			if err := fs.disk.Read(uint(inode.Indirect), indirectBlock); err != nil {
				return delivered, ErrIOFailure.WithMessage(err.Error())
			}
		}

		var physical uint32
		if logical < PointersPerInode {
			physical = inode.Direct[logical]
		} else {
			pointers := decodePointerBlock(indirectBlock)
			physical = pointers[logical-PointersPerInode]
		}

		if physical == 0 {
			claimed, cerr := fs.bitmap.claim(uint(fs.superblock.InodeBlocks))
			if cerr != nil {
				exhausted = true
				break
			}
			physical = uint32(claimed)
			if logical < PointersPerInode {
				inode.Direct[logical] = physical
			} else {
				encodePointerIntoBlock(indirectBlock, int(logical-PointersPerInode), physical)
				indirectDirty = true
			}
		}

		chunk := minU32(BlockSize-intraOffset, length-delivered)

		var dataBlock []byte
		if chunk < BlockSize {
			dataBlock = zeroedBlock()
			if err := fs.disk.Read(uint(physical), dataBlock); err != nil {
				return delivered, ErrIOFailure.WithMessage(err.Error())
			}
		} else {
			dataBlock = zeroedBlock()
		}
		copy(dataBlock[intraOffset:intraOffset+chunk], in[delivered:delivered+chunk])
		if err := fs.disk.Write(uint(physical), dataBlock); err != nil {
			return delivered, ErrIOFailure.WithMessage(err.Error())
		}

		delivered += chunk
	}

	if err := persist(); err != nil {
		return delivered, err
	}
	return delivered, nil
}
