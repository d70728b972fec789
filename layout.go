package simplefs

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/noxer/bytewriter"
)

// Superblock is the fixed-format metadata stored in block 0.
type Superblock struct {
	MagicNumber uint32
	Blocks      uint32
	InodeBlocks uint32
	Inodes      uint32
}

// Valid reports whether the superblock's magic number identifies a
// SimpleFS image.
func (sb Superblock) Valid() bool {
	return sb.MagicNumber == MagicNumber
}

// decodeSuperblock parses the first 16 bytes of a raw block buffer (which
// must be BlockSize bytes long) into a Superblock.
func decodeSuperblock(block []byte) Superblock {
	return Superblock{
		MagicNumber: binary.LittleEndian.Uint32(block[0:4]),
		Blocks:      binary.LittleEndian.Uint32(block[4:8]),
		InodeBlocks: binary.LittleEndian.Uint32(block[8:12]),
		Inodes:      binary.LittleEndian.Uint32(block[12:16]),
	}
}

// encodeSuperblock serializes sb into a fresh, zero-padded BlockSize buffer.
// The writes are against a bytewriter.New wrapper of a buffer sized
// upfront, so binary.Write can only fail if the fields above outgrow the
// fixed superblock layout; the panic on that mismatch is preferable to a
// silently truncated disk image.
func encodeSuperblock(sb Superblock) []byte {
	block := make([]byte, BlockSize)
	writer := bytewriter.New(block)
	for _, field := range []uint32{sb.MagicNumber, sb.Blocks, sb.InodeBlocks, sb.Inodes} {
		if err := binary.Write(writer, binary.LittleEndian, field); err != nil {
			panic(fmt.Sprintf("encodeSuperblock: %v", err))
		}
	}
	return block
}

// rawInode is the fixed 32-byte on-disk inode record.
type rawInode struct {
	Valid    uint32
	Size     uint32
	Direct   [PointersPerInode]uint32
	Indirect uint32
}

// isValid reports whether the inode record is currently in use.
func (ri rawInode) isValid() bool {
	return ri.Valid != 0
}

// decodeInodeBlock splits a raw inode-table block into InodesPerBlock
// records, in on-disk order. block is always exactly BlockSize bytes
// (zeroedBlock or a fresh disk.Read buffer), so a read running off the end
// of it would mean the caller passed a malformed buffer; that is a
// programmer error, not a condition callers should have to check for.
func decodeInodeBlock(block []byte) [InodesPerBlock]rawInode {
	var inodes [InodesPerBlock]rawInode
	reader := bytes.NewReader(block)
	for i := 0; i < InodesPerBlock; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &inodes[i]); err != nil {
			panic(fmt.Sprintf("decodeInodeBlock: %v", err))
		}
	}
	return inodes
}

// encodeInodeIntoBlock writes inode into position `slot` of block in place.
// block must already be BlockSize bytes long.
func encodeInodeIntoBlock(block []byte, slot int, inode rawInode) {
	offset := slot * InodeSize
	writer := bytewriter.New(block[offset : offset+InodeSize])
	fields := make([]uint32, 0, 2+PointersPerInode+1)
	fields = append(fields, inode.Valid, inode.Size)
	fields = append(fields, inode.Direct[:]...)
	fields = append(fields, inode.Indirect)
	for _, field := range fields {
		if err := binary.Write(writer, binary.LittleEndian, field); err != nil {
			panic(fmt.Sprintf("encodeInodeIntoBlock: %v", err))
		}
	}
}

// decodePointerBlock interprets block as an array of PointersPerBlock
// little-endian uint32 block numbers.
func decodePointerBlock(block []byte) [PointersPerBlock]uint32 {
	var pointers [PointersPerBlock]uint32
	for i := 0; i < PointersPerBlock; i++ {
		pointers[i] = binary.LittleEndian.Uint32(block[i*4 : i*4+4])
	}
	return pointers
}

// encodePointerIntoBlock writes a single pointer value into slot `index` of
// block in place. block must already be BlockSize bytes long.
func encodePointerIntoBlock(block []byte, index int, value uint32) {
	binary.LittleEndian.PutUint32(block[index*4:index*4+4], value)
}

// zeroedBlock returns a fresh, all-zero BlockSize buffer.
func zeroedBlock() []byte {
	return make([]byte, BlockSize)
}
