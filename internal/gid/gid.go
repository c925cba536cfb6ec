// Package gid gives the runtime a cheap, reliable goroutine identifier.
package gid

import "github.com/petermattis/goid"

// Get returns the id of the calling goroutine.
func Get() int64 {
	return goid.Get()
}
