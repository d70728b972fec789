package simplefs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostep-projects/simplefs"
	"github.com/ostep-projects/simplefs/disks"
)

func TestCheckPassesOnFreshlyFormattedDisk(t *testing.T) {
	fs := mountedFixture(t, 20)
	assert.NoError(t, fs.Check())
}

func TestCheckPassesAfterWritesAndRemoves(t *testing.T) {
	fs := mountedFixture(t, 64)

	n, err := fs.Create()
	require.NoError(t, err)
	payload := make([]byte, (simplefs.PointersPerInode+1)*simplefs.BlockSize)
	_, err = fs.Write(n, payload, uint32(len(payload)), 0)
	require.NoError(t, err)

	m, err := fs.Create()
	require.NoError(t, err)
	_, err = fs.Write(m, []byte("small file"), 10, 0)
	require.NoError(t, err)

	require.NoError(t, fs.Remove(n))

	assert.NoError(t, fs.Check())
}

func TestCheckRequiresMount(t *testing.T) {
	disk := disks.NewMemoryDisk(10)
	fs := simplefs.New(disk)
	require.NoError(t, fs.Format())
	assert.ErrorIs(t, fs.Check(), simplefs.ErrNotMounted)
}
