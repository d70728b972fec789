package simplefs

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Check validates the three structural invariants spec §8 lists as
// testable properties (I1 bitmap consistency, I2 no aliasing, I3 size
// bound / pointer-count agreement) against the currently mounted
// filesystem. It is read-only: it never mutates the bitmap, an inode, or
// the disk. Every violation found is collected rather than stopping at the
// first, and returned together as a single aggregated error (nil if none
// were found).
func (fs *FileSystem) Check() error {
	if err := fs.requireMounted(); err != nil {
		return err
	}

	var result *multierror.Error

	reachable := make(map[uint32]uint32) // block -> owning inode
	expectedUsed := newFreeMap(uint(fs.superblock.Blocks))
	expectedUsed.markUsed(0)
	for b := uint32(1); b <= fs.superblock.InodeBlocks; b++ {
		expectedUsed.markUsed(uint(b))
	}

	block := zeroedBlock()
	for ib := uint32(0); ib < fs.superblock.InodeBlocks; ib++ {
		if err := fs.disk.Read(uint(1+ib), block); err != nil {
			result = multierror.Append(result, fmt.Errorf("reading inode block %d: %w", ib, err))
			continue
		}

		for slot, raw := range decodeInodeBlock(block) {
			if !raw.isValid() {
				continue
			}
			n := ib*InodesPerBlock + uint32(slot)

			if raw.Size > MaxFileSize {
				result = multierror.Append(result, fmt.Errorf(
					"inode %d: size %d exceeds maximum file size %d", n, raw.Size, MaxFileSize))
			}

			nonZeroPointers := 0
			for _, d := range raw.Direct {
				if d == 0 {
					continue
				}
				nonZeroPointers++
				result = fs.checkPointerRange(result, n, d)
				result = fs.checkAliasing(result, reachable, n, d)
				expectedUsed.markUsed(uint(d))
			}

			if raw.Indirect != 0 {
				result = fs.checkPointerRange(result, n, raw.Indirect)
				expectedUsed.markUsed(uint(raw.Indirect))

				indirectBlock := zeroedBlock()
				if err := fs.disk.Read(uint(raw.Indirect), indirectBlock); err != nil {
					result = multierror.Append(result, fmt.Errorf(
						"inode %d: reading indirect block %d: %w", n, raw.Indirect, err))
				} else {
					for _, p := range decodePointerBlock(indirectBlock) {
						if p == 0 {
							continue
						}
						nonZeroPointers++
						result = fs.checkPointerRange(result, n, p)
						result = fs.checkAliasing(result, reachable, n, p)
						expectedUsed.markUsed(uint(p))
					}
				}
			}

			expectedPointers := int(ceilDiv(raw.Size, BlockSize))
			if raw.Size == 0 {
				expectedPointers = 0
			}
			if nonZeroPointers != expectedPointers {
				result = multierror.Append(result, fmt.Errorf(
					"inode %d: size %d requires exactly %d allocated blocks, found %d",
					n, raw.Size, expectedPointers, nonZeroPointers))
			}
		}
	}

	for b := uint32(0); b < uint32(fs.superblock.Blocks); b++ {
		wantUsed := !expectedUsed.isFree(uint(b))
		gotUsed := !fs.bitmap.isFree(uint(b))
		if wantUsed != gotUsed {
			result = multierror.Append(result, fmt.Errorf(
				"bitmap mismatch at block %d: reachability says used=%v, bitmap says used=%v",
				b, wantUsed, gotUsed))
		}
	}

	return result.ErrorOrNil()
}

func (fs *FileSystem) checkPointerRange(result *multierror.Error, owner, block uint32) *multierror.Error {
	if block <= fs.superblock.InodeBlocks || block >= fs.superblock.Blocks {
		return multierror.Append(result, fmt.Errorf(
			"inode %d: pointer %d lies outside the data region", owner, block))
	}
	return result
}

func (fs *FileSystem) checkAliasing(result *multierror.Error, reachable map[uint32]uint32, owner, block uint32) *multierror.Error {
	if prior, ok := reachable[block]; ok && prior != owner {
		result = multierror.Append(result, fmt.Errorf(
			"block %d is reachable from both inode %d and inode %d", block, prior, owner))
		return result
	}
	reachable[block] = owner
	return result
}
