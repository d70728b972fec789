package simplefs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostep-projects/simplefs"
	"github.com/ostep-projects/simplefs/disks"
)

func TestFormatThenMountEmptyDisk(t *testing.T) {
	disk := disks.NewMemoryDisk(10)
	fs := simplefs.New(disk)

	require.NoError(t, fs.Format())
	require.NoError(t, fs.Mount())

	sb := fs.Superblock()
	assert.EqualValues(t, 10, sb.Blocks)
	assert.EqualValues(t, 1, sb.InodeBlocks)
	assert.EqualValues(t, 128, sb.Inodes)
}

func TestFormatRejectsMountedHandle(t *testing.T) {
	disk := disks.NewMemoryDisk(10)
	fs := simplefs.New(disk)
	require.NoError(t, fs.Format())
	require.NoError(t, fs.Mount())

	err := fs.Format()
	assert.ErrorIs(t, err, simplefs.ErrAlreadyMounted)
}

func TestMountRejectsAlreadyMounted(t *testing.T) {
	disk := disks.NewMemoryDisk(10)
	fs := simplefs.New(disk)
	require.NoError(t, fs.Format())
	require.NoError(t, fs.Mount())

	assert.ErrorIs(t, fs.Mount(), simplefs.ErrAlreadyMounted)
}

func TestMountFailsOnBadMagic(t *testing.T) {
	disk := disks.NewMemoryDisk(10)
	// Never formatted: block 0 is all zeros, so the magic number check fails.
	fs := simplefs.New(disk)

	err := fs.Mount()
	assert.ErrorIs(t, err, simplefs.ErrBadMagic)
	assert.False(t, fs.IsMounted())
}

func TestUnmountRequiresMount(t *testing.T) {
	disk := disks.NewMemoryDisk(10)
	fs := simplefs.New(disk)
	assert.ErrorIs(t, fs.Unmount(), simplefs.ErrNotMounted)
}

// TestFormatIdempotence covers spec invariant I7: formatting an
// already-formatted disk a second time produces an identical image.
func TestFormatIdempotence(t *testing.T) {
	disk := disks.NewMemoryDisk(20)
	fs := simplefs.New(disk)

	require.NoError(t, fs.Format())
	first := snapshotDisk(t, disk)

	require.NoError(t, fs.Format())
	second := snapshotDisk(t, disk)

	assert.Equal(t, first, second)
}

// TestMountUnmountCyclePreservesContents covers spec invariant I8.
func TestMountUnmountCyclePreservesContents(t *testing.T) {
	disk := disks.NewMemoryDisk(20)
	fs := simplefs.New(disk)
	require.NoError(t, fs.Format())
	require.NoError(t, fs.Mount())

	n, err := fs.Create()
	require.NoError(t, err)
	payload := []byte("round trip through a mount cycle")
	delivered, err := fs.Write(n, payload, uint32(len(payload)), 0)
	require.NoError(t, err)
	require.EqualValues(t, len(payload), delivered)

	require.NoError(t, fs.Unmount())
	require.NoError(t, fs.Mount())

	out := make([]byte, len(payload))
	read, err := fs.Read(n, out, uint32(len(payload)), 0)
	require.NoError(t, err)
	require.EqualValues(t, len(payload), read)
	assert.Equal(t, payload, out)
}

func snapshotDisk(t *testing.T, disk *disks.MemoryDisk) [][]byte {
	t.Helper()
	var blocks [][]byte
	buf := make([]byte, simplefs.BlockSize)
	for b := uint(0); b < disk.Blocks(); b++ {
		require.NoError(t, disk.Read(b, buf))
		cp := make([]byte, simplefs.BlockSize)
		copy(cp, buf)
		blocks = append(blocks, cp)
	}
	return blocks
}
