package sqlgen

import (
	"bytes"
	"sync"
)

// bufferPool hands out buffers for statement rendering. bytes.Buffer keeps its
// capacity across Reset, so pooled buffers skip regrowing.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(b *bytes.Buffer) {
	b.Reset()
	bufferPool.Put(b)
}
