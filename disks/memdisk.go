// Package disks provides concrete simplefs.Disk implementations. Neither
// is part of the filesystem core: spec §1 scopes the disk emulator out as
// an external collaborator, so these live in their own package and only
// depend on simplefs for its BlockSize constant and Disk interface.
package disks

import (
	"fmt"
	"io"

	"github.com/xaionaro-go/bytesextra"

	"github.com/ostep-projects/simplefs"
)

// MemoryDisk is an in-memory simplefs.Disk backed by a byte slice. It is
// the disk double used throughout the core's tests; simplefsctl does not
// use it.
type MemoryDisk struct {
	stream io.ReadWriteSeeker
	blocks uint
	reads  uint64
	writes uint64
}

// NewMemoryDisk allocates a zero-filled in-memory disk with the given
// number of simplefs.BlockSize blocks.
func NewMemoryDisk(blocks uint) *MemoryDisk {
	data := make([]byte, blocks*simplefs.BlockSize)
	return &MemoryDisk{
		stream: bytesextra.NewReadWriteSeeker(data),
		blocks: blocks,
	}
}

func (d *MemoryDisk) checkBounds(block uint, bufLen int) error {
	if bufLen != simplefs.BlockSize {
		return fmt.Errorf("buffer must be exactly %d bytes, got %d", simplefs.BlockSize, bufLen)
	}
	if block >= d.blocks {
		return fmt.Errorf("block %d not in range [0, %d)", block, d.blocks)
	}
	return nil
}

func (d *MemoryDisk) seek(block uint) error {
	_, err := d.stream.Seek(int64(block)*simplefs.BlockSize, io.SeekStart)
	return err
}

// Read implements simplefs.Disk.
func (d *MemoryDisk) Read(block uint, buf []byte) error {
	if err := d.checkBounds(block, len(buf)); err != nil {
		return err
	}
	if err := d.seek(block); err != nil {
		return err
	}
	if _, err := io.ReadFull(d.stream, buf); err != nil {
		return err
	}
	d.reads++
	return nil
}

// Write implements simplefs.Disk.
func (d *MemoryDisk) Write(block uint, buf []byte) error {
	if err := d.checkBounds(block, len(buf)); err != nil {
		return err
	}
	if err := d.seek(block); err != nil {
		return err
	}
	if _, err := d.stream.Write(buf); err != nil {
		return err
	}
	d.writes++
	return nil
}

// Blocks implements simplefs.Disk.
func (d *MemoryDisk) Blocks() uint { return d.blocks }

// Reads implements simplefs.Disk.
func (d *MemoryDisk) Reads() uint64 { return d.reads }

// Writes implements simplefs.Disk.
func (d *MemoryDisk) Writes() uint64 { return d.writes }
