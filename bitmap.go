package simplefs

import (
	bitmap "github.com/boljen/go-bitmap"
)

// freeMap tracks which data blocks are available for allocation. It exists
// only between Mount and Unmount and is private to the mounted file system
// (spec §5); the allocator and the write/remove paths are its only
// mutators.
type freeMap struct {
	bits bitmap.Bitmap
	size uint
}

// newFreeMap allocates a freeMap with every bit initially marked free.
// bitmap.New zero-fills its backing slice, and a zero bit reads as false
// under this package's isFree-means-Get convention, so every entry has to
// be flipped to true explicitly rather than relying on the zero value.
func newFreeMap(size uint) *freeMap {
	m := &freeMap{bits: bitmap.New(int(size)), size: size}
	for b := uint(0); b < size; b++ {
		m.markFree(b)
	}
	return m
}

func (m *freeMap) isFree(block uint) bool {
	return m.bits.Get(int(block))
}

func (m *freeMap) markUsed(block uint) {
	m.bits.Set(int(block), false)
}

func (m *freeMap) markFree(block uint) {
	m.bits.Set(int(block), true)
}

// claim returns the lowest-indexed free data block (index strictly greater
// than inodeBlocks, per spec §4.C) and marks it used. It returns
// ErrNoSpace if no block is free.
func (m *freeMap) claim(inodeBlocks uint) (uint, error) {
	for b := inodeBlocks + 1; b < m.size; b++ {
		if m.isFree(b) {
			m.markUsed(b)
			return b, nil
		}
	}
	return 0, ErrNoSpace
}

// release marks block free. Releasing an already-free block is a no-op.
func (m *freeMap) release(block uint) {
	if block == 0 || block >= m.size {
		return
	}
	m.markFree(block)
}

// freeCount returns the number of blocks currently marked free, for tests
// and diagnostics.
func (m *freeMap) freeCount() uint {
	count := uint(0)
	for b := uint(0); b < m.size; b++ {
		if m.isFree(b) {
			count++
		}
	}
	return count
}

// build reconstructs the free-block bitmap from the on-disk image per spec
// §4.C: every entry starts free, then the superblock, the inode table, and
// every block reachable from a valid inode are marked used.
func build(disk Disk, sb Superblock) (*freeMap, error) {
	m := newFreeMap(uint(sb.Blocks))

	m.markUsed(0)
	for b := uint(1); b <= uint(sb.InodeBlocks); b++ {
		m.markUsed(b)
	}

	block := zeroedBlock()
	for ib := uint(0); ib < uint(sb.InodeBlocks); ib++ {
		if err := disk.Read(1+ib, block); err != nil {
			return nil, ErrIOFailure.WithMessage(err.Error())
		}
		inodes := decodeInodeBlock(block)
		for _, raw := range inodes {
			if !raw.isValid() {
				continue
			}
			for _, d := range raw.Direct {
				if d != 0 {
					m.markUsed(uint(d))
				}
			}
			if raw.Indirect != 0 {
				m.markUsed(uint(raw.Indirect))
				indirectBlock := zeroedBlock()
				if err := disk.Read(uint(raw.Indirect), indirectBlock); err != nil {
					return nil, ErrIOFailure.WithMessage(err.Error())
				}
				for _, p := range decodePointerBlock(indirectBlock) {
					if p != 0 {
						m.markUsed(uint(p))
					}
				}
			}
		}
	}

	return m, nil
}
