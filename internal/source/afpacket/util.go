package afpacket

import (
	"fmt"
)

// ringLayout is the TPACKET_V3 ring geometry handed to afpacket.NewTPacket.
type ringLayout struct {
	frameSize int
	blockSize int
	numBlocks int
}

// computeRingLayout derives frame, block and block-count sizes that satisfy
// PACKET_MMAP alignment within a memory budget of bufferSizeMB:
//
//  1. frameSize is a multiple of TPACKET_ALIGNMENT (16 bytes)
//  2. blockSize is a multiple of pageSize
//  3. blockSize is a multiple of frameSize
//  4. blockSize * numBlocks approximates the budget
func computeRingLayout(bufferSizeMB, snapLen, pageSize int) (ringLayout, error) {
	const tpacketAlignment = 16
	const tpacketHdrLen = 52 // TPACKET3_HDRLEN, approximate

	if bufferSizeMB <= 0 {
		return ringLayout{}, fmt.Errorf("buffer_size_mb must be positive, got %d", bufferSizeMB)
	}
	if snapLen <= 0 {
		return ringLayout{}, fmt.Errorf("snap_len must be positive, got %d", snapLen)
	}
	if pageSize <= 0 || pageSize%tpacketAlignment != 0 {
		return ringLayout{}, fmt.Errorf("page size must be a positive multiple of %d, got %d", tpacketAlignment, pageSize)
	}

	targetBytes := bufferSizeMB * 1024 * 1024
	frameSize := alignUp(tpacketHdrLen+snapLen, tpacketAlignment)

	blockSize := lcm(pageSize, frameSize)
	if blockSize < frameSize {
		blockSize = frameSize
	}
	const maxBlockSize = 4 * 1024 * 1024
	if blockSize > maxBlockSize {
		// Largest page multiple below the cap that still holds whole frames
		blockSize = (maxBlockSize / frameSize) * frameSize
		blockSize = (blockSize / pageSize) * pageSize
		if blockSize < frameSize || blockSize%frameSize != 0 {
			blockSize = lcm(pageSize, frameSize)
		}
	}

	numBlocks := targetBytes / blockSize
	if numBlocks < 1 {
		numBlocks = 1
	}

	return ringLayout{frameSize: frameSize, blockSize: blockSize, numBlocks: numBlocks}, nil
}

func alignUp(n, align int) int {
	return ((n + align - 1) / align) * align
}

// gcd computes the greatest common divisor of two integers
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// lcm computes the least common multiple of two integers
func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return (a / gcd(a, b)) * b
}
