package simplefs_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostep-projects/simplefs"
	"github.com/ostep-projects/simplefs/disks"
)

// TestDebugEmptyFormat covers end-to-end scenario 1: the SuperBlock stanza
// only, no inode lines, for a freshly formatted, never-written disk.
func TestDebugEmptyFormat(t *testing.T) {
	disk := disks.NewMemoryDisk(10)
	fs := simplefs.New(disk)
	require.NoError(t, fs.Format())

	var out bytes.Buffer
	simplefs.Debug(disk, &out)

	expected := strings.Join([]string{
		"SuperBlock:",
		"    magic number is valid",
		"    10 blocks",
		"    1 inode blocks",
		"    128 inodes",
		"",
	}, "\n")
	assert.Equal(t, expected, out.String())
}

func TestDebugDoesNotRequireMount(t *testing.T) {
	disk := disks.NewMemoryDisk(10)
	fs := simplefs.New(disk)
	require.NoError(t, fs.Format())
	require.False(t, fs.IsMounted())

	var out bytes.Buffer
	assert.NotPanics(t, func() { simplefs.Debug(disk, &out) })
	assert.Contains(t, out.String(), "SuperBlock:")
}

func TestDebugReportsBadMagicWithoutPanicking(t *testing.T) {
	disk := disks.NewMemoryDisk(10) // never formatted

	var out bytes.Buffer
	simplefs.Debug(disk, &out)
	assert.Contains(t, out.String(), "magic number is not valid")
}

func TestDebugListsInodesAndIndirectBlocks(t *testing.T) {
	disk := disks.NewMemoryDisk(2048)
	fs := simplefs.New(disk)
	require.NoError(t, fs.Format())
	require.NoError(t, fs.Mount())

	n, err := fs.Create()
	require.NoError(t, err)

	length := (simplefs.PointersPerInode + 1) * simplefs.BlockSize
	payload := make([]byte, length)
	_, err = fs.Write(n, payload, uint32(length), 0)
	require.NoError(t, err)

	var out bytes.Buffer
	simplefs.Debug(disk, &out)

	text := out.String()
	assert.Contains(t, text, "Inode 0:")
	assert.Contains(t, text, "size: ")
	assert.Contains(t, text, "direct blocks:")
	assert.Contains(t, text, "indirect block:")
	assert.Contains(t, text, "indirect data blocks:")
}
