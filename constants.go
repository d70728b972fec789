package simplefs

// BlockSize is the fixed size of a block, in bytes. SimpleFS does not
// support any other block size.
const BlockSize = 4096

// MagicNumber identifies a block 0 as a valid SimpleFS superblock.
const MagicNumber uint32 = 0xF0F03410

// PointersPerInode is the number of direct block pointers stored in each
// inode.
const PointersPerInode = 5

// InodeSize is the on-disk size of a single inode record, in bytes.
const InodeSize = 32

// InodesPerBlock is the number of inode records packed into one block.
const InodesPerBlock = BlockSize / InodeSize

// PointersPerBlock is the number of 32-bit block pointers packed into one
// indirect block.
const PointersPerBlock = BlockSize / 4

// MaxFileSize is the largest file size representable with PointersPerInode
// direct pointers plus one single-indirect block.
const MaxFileSize = (PointersPerInode + PointersPerBlock) * BlockSize
