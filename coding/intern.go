package coding

import "sync"

// internTable assigns dense int32 codes to strings in arrival order.
// It only ever grows, so codes stay valid for the life of the process.
type internTable struct {
	mu    sync.RWMutex
	codes map[string]int32
	names []string
}

func newInternTable() *internTable {
	return &internTable{codes: make(map[string]int32)}
}

func (t *internTable) code(s string) int32 {
	t.mu.RLock()
	c, ok := t.codes[s]
	t.mu.RUnlock()
	if ok {
		return c
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.codes[s]; ok {
		return c
	}
	c = int32(len(t.names))
	t.codes[s] = c
	t.names = append(t.names, s)
	return c
}

func (t *internTable) name(code int32) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if code < 0 || int(code) >= len(t.names) {
		return "", false
	}
	return t.names[code], true
}
