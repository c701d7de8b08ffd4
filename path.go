package yamlite

import (
	"errors"
	"fmt"
)

var errEmptyPath = errors.New("empty path")

// getPath retrieves the value at path. The boolean is false when the path
// does not exist, which is distinct from a stored null.
func getPath(root *Map, path []string) (any, bool) {
	var cur any = root
	for _, key := range path {
		m, ok := cur.(*Map)
		if !ok || m == nil {
			return nil, false
		}
		val, ok := m.Get(key)
		if !ok {
			return nil, false
		}
		cur = val
	}

	return cur, true
}

// setPath stores v at path, creating intermediate mappings as needed.
//
// A scalar standing where a mapping is needed is replaced by a new mapping
// and reported through replaced. A sequence is never replaced: the write is
// dropped and an error returned.
func setPath(root *Map, path []string, v any) (replaced bool, err error) {
	if len(path) == 0 {
		return false, errEmptyPath
	}

	// Navigate to parent.
	cur := root
	for _, key := range path[:len(path)-1] {
		next, ok := cur.Get(key)
		switch n := next.(type) {
		case *Map:
			if n != nil {
				cur = n
				continue
			}
		case []any:
			return replaced, fmt.Errorf("key %q holds a list, cannot nest under it", key)
		default:
			if ok {
				replaced = true
			}
		}

		// Create intermediate map.
		m := NewMap()
		cur.Set(key, m)
		cur = m
	}

	cur.Set(path[len(path)-1], v)
	return replaced, nil
}
