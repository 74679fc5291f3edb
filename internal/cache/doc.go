// Package cache provides the generic LRU cache used for memoized,
// per-owner derived data: the electrical layer lists of a technology's arc
// templates and the shrinkage tables of cells.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation
// (it contains a mutex).
package cache
