// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compositor

import "fmt"

// indirectTrees maps 64-bit tree IDs to the shadow roots of indirect
// subtrees. Inserts happen on the compositor goroutine only, during
// shadow-tree updates; reads happen only inside the scoped resolver
// within a composite, so compositor-goroutine serialization is the only
// synchronization needed.
var indirectTrees = map[uint64]*Layer{}

// RegisterIndirectTree publishes the root of an indirect subtree under
// the given ID. Reference layers carrying this ID resolve to it each
// frame. An ID collision is an internal invariant violation and panics.
func RegisterIndirectTree(id uint64, root *Layer) {
	if _, ok := indirectTrees[id]; ok {
		panic(fmt.Sprintf("compositor: indirect tree id %d already registered", id))
	}
	indirectTrees[id] = root
}

// UnregisterIndirectTree removes the subtree registered under the given
// ID.
func UnregisterIndirectTree(id uint64) {
	delete(indirectTrees, id)
}

// resolveRefLayers connects every reference layer under root to its
// referent subtree for the duration of one composite frame. It returns
// a release function that disconnects them again; callers defer it so
// the trees are disconnected on every exit path.
func resolveRefLayers(root *Layer) (release func()) {
	var connected []*Layer
	var walk func(l *Layer)
	walk = func(l *Layer) {
		if l.RefID != 0 {
			if ref := indirectTrees[l.RefID]; ref != nil {
				l.refChild = ref
				connected = append(connected, l)
			}
		}
		for _, child := range l.Children() {
			walk(child)
		}
	}
	walk(root)
	return func() {
		for _, l := range connected {
			l.refChild = nil
		}
	}
}
