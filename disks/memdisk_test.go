package disks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostep-projects/simplefs"
	"github.com/ostep-projects/simplefs/disks"
)

func TestMemoryDiskRoundTrip(t *testing.T) {
	disk := disks.NewMemoryDisk(4)
	write := bytes(simplefs.BlockSize, 0xAB)

	require.NoError(t, disk.Write(2, write))

	read := make([]byte, simplefs.BlockSize)
	require.NoError(t, disk.Read(2, read))
	assert.Equal(t, write, read)

	assert.EqualValues(t, 1, disk.Reads())
	assert.EqualValues(t, 1, disk.Writes())
}

func TestMemoryDiskRejectsOutOfRangeBlock(t *testing.T) {
	disk := disks.NewMemoryDisk(2)
	buf := make([]byte, simplefs.BlockSize)
	assert.Error(t, disk.Read(5, buf))
	assert.Error(t, disk.Write(5, buf))
}

func TestMemoryDiskRejectsWrongSizedBuffer(t *testing.T) {
	disk := disks.NewMemoryDisk(2)
	assert.Error(t, disk.Read(0, make([]byte, 10)))
}

func bytes(n int, fill byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = fill
	}
	return b
}
