package pool

import (
	"sync"

	"github.com/arloliu/squash/cursor"
)

const (
	CursorDefaultSize  = 1024 * 4   // 4KiB
	CursorMaxThreshold = 1024 * 256 // 256KiB
)

// CursorPool is a pool of cursors to minimize allocations when encoding
// many short messages.
//
// Cursors larger than maxThreshold are dropped on Put so that one oversized
// message does not pin its memory for the lifetime of the process.
type CursorPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewCursorPool creates a CursorPool whose cursors start with defaultSize capacity.
func NewCursorPool(defaultSize int, maxThreshold int) *CursorPool {
	return &CursorPool{
		pool: sync.Pool{
			New: func() any {
				return cursor.New(defaultSize, 0)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty cursor from the pool.
func (p *CursorPool) Get() *cursor.Cursor {
	c, _ := p.pool.Get().(*cursor.Cursor)
	return c
}

// Put resets c and returns it to the pool.
func (p *CursorPool) Put(c *cursor.Cursor) {
	if c == nil {
		return
	}

	if p.maxThreshold > 0 && c.Cap() > p.maxThreshold {
		return
	}

	c.Reset()
	p.pool.Put(c)
}

var defaultCursorPool = NewCursorPool(CursorDefaultSize, CursorMaxThreshold)

// GetCursor retrieves a cursor from the default pool.
func GetCursor() *cursor.Cursor {
	return defaultCursorPool.Get()
}

// PutCursor returns a cursor to the default pool.
func PutCursor(c *cursor.Cursor) {
	defaultCursorPool.Put(c)
}
