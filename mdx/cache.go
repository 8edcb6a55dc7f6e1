package mdx

import "github.com/belugareader/mdict/internal/pool"

// BlockCache is the single-slot record-block cache the resolver uses to
// avoid redecoding a block when consecutive keywords share it, the common
// case. It bounds memory to one decompressed block by drawing its backing
// buffer from the package's block-buffer pool instead of allocating fresh
// on every miss, and returns that buffer to the pool on Release so the
// next Decoder opened in this process can reuse it.
type BlockCache struct {
	compOffset int64
	buf        *pool.ByteBuffer
	valid      bool
}

// Get returns the cached buffer if it was decoded from compOffset.
func (c *BlockCache) Get(compOffset int64) ([]byte, bool) {
	if c.valid && c.compOffset == compOffset {
		return c.buf.Bytes(), true
	}

	return nil, false
}

// Put installs a copy of decoded as the cache's sole entry, evicting
// whatever was there.
func (c *BlockCache) Put(compOffset int64, decoded []byte) {
	if c.buf == nil {
		c.buf = pool.GetBlockBuffer()
	}

	c.buf.SetFrom(decoded)
	c.compOffset = compOffset
	c.valid = true
}

// Release returns the cache's backing buffer to the pool, if it drew one,
// and clears the cache. Callers that are done resolving definitions from
// a given file should call this so the buffer can be recycled by the next
// Decoder instead of left for the garbage collector.
func (c *BlockCache) Release() {
	if c.buf != nil {
		pool.PutBlockBuffer(c.buf)
		c.buf = nil
	}

	c.valid = false
}
