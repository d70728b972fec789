package disks

import (
	"fmt"
	"io"
	"os"

	"github.com/ostep-projects/simplefs"
)

// FileDisk is a simplefs.Disk backed by a regular file, for simplefsctl's
// mkfs/debug/report subcommands against a real image on disk.
type FileDisk struct {
	file   *os.File
	blocks uint
	reads  uint64
	writes uint64
}

// OpenFileDisk opens an existing image file of exactly blocks *
// simplefs.BlockSize bytes.
func OpenFileDisk(path string, blocks uint) (*FileDisk, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	wantSize := int64(blocks) * simplefs.BlockSize
	if info.Size() != wantSize {
		file.Close()
		return nil, fmt.Errorf(
			"image %s is %d bytes, expected %d for %d blocks", path, info.Size(), wantSize, blocks)
	}

	return &FileDisk{file: file, blocks: blocks}, nil
}

// CreateFileDisk creates a new zero-filled image file of blocks *
// simplefs.BlockSize bytes, truncating any existing file at path.
func CreateFileDisk(path string, blocks uint) (*FileDisk, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	if err := file.Truncate(int64(blocks) * simplefs.BlockSize); err != nil {
		file.Close()
		return nil, err
	}
	return &FileDisk{file: file, blocks: blocks}, nil
}

// Close flushes and closes the backing file.
func (d *FileDisk) Close() error {
	return d.file.Close()
}

func (d *FileDisk) checkBounds(block uint, bufLen int) error {
	if bufLen != simplefs.BlockSize {
		return fmt.Errorf("buffer must be exactly %d bytes, got %d", simplefs.BlockSize, bufLen)
	}
	if block >= d.blocks {
		return fmt.Errorf("block %d not in range [0, %d)", block, d.blocks)
	}
	return nil
}

// Read implements simplefs.Disk.
func (d *FileDisk) Read(block uint, buf []byte) error {
	if err := d.checkBounds(block, len(buf)); err != nil {
		return err
	}
	if _, err := d.file.ReadAt(buf, int64(block)*simplefs.BlockSize); err != nil && err != io.EOF {
		return err
	}
	d.reads++
	return nil
}

// Write implements simplefs.Disk.
func (d *FileDisk) Write(block uint, buf []byte) error {
	if err := d.checkBounds(block, len(buf)); err != nil {
		return err
	}
	if _, err := d.file.WriteAt(buf, int64(block)*simplefs.BlockSize); err != nil {
		return err
	}
	d.writes++
	return nil
}

// Blocks implements simplefs.Disk.
func (d *FileDisk) Blocks() uint { return d.blocks }

// Reads implements simplefs.Disk.
func (d *FileDisk) Reads() uint64 { return d.reads }

// Writes implements simplefs.Disk.
func (d *FileDisk) Writes() uint64 { return d.writes }
