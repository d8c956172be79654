// Package labels hands out the generated names that stand in for source
// identifiers in the emitted program.
package labels

import "strconv"

// DefaultPrefix namespaces every generated label away from Retro's own words.
const DefaultPrefix = "PL0:"

// Allocator produces labels of the form prefix + hint + "_" + n, where n
// grows by one on every call. n holds no '_', so the text after the last '_'
// always identifies the call and labels never collide whatever the hints are.
// It is not safe for concurrent use.
type Allocator struct {
	prefix  string
	counter int
}

func New(prefix string) *Allocator {
	return &Allocator{prefix: prefix}
}

// Next returns a fresh label. Equal hints still yield distinct labels.
func (a *Allocator) Next(hint string) string {
	a.counter++
	return a.prefix + hint + "_" + strconv.Itoa(a.counter)
}

// Variable returns a storage label for the source variable name.
func (a *Allocator) Variable(name string) string {
	return a.Next("v:" + name)
}

// Procedure returns an entry label for the source procedure name.
func (a *Allocator) Procedure(name string) string {
	return a.Next("p:" + name)
}

// Count reports how many labels have been issued.
func (a *Allocator) Count() int {
	return a.counter
}
