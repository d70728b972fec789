package simplefs_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteInodeReportOneRowPerValidInode(t *testing.T) {
	fs := mountedFixture(t, 64)

	n, err := fs.Create()
	require.NoError(t, err)
	_, err = fs.Write(n, []byte("hello"), 5, 0)
	require.NoError(t, err)

	_, err = fs.Create() // second inode left empty

	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, fs.WriteInodeReport(&out))

	text := out.String()
	assert.Contains(t, text, "inode")
	assert.Contains(t, text, "size_bytes")
	// Two data rows plus one header row.
	lineCount := bytes.Count(out.Bytes(), []byte("\n"))
	assert.Equal(t, 3, lineCount)
}
