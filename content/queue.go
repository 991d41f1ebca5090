// Copyright (c) 2026, Glide Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// based on golang.org/x/exp/shiny:
// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package content

import (
	"sync"
	"sync/atomic"
)

// item is one queued delivery: either a message for the observers or a
// closure to run on the observer goroutine.
type item struct {
	msg Message
	fn  func()
}

// queue is a lock-free FIFO freelist-based queue of pending deliveries.
// Producers on the input and compositor goroutines push concurrently;
// the observer goroutine is the only consumer.
type queue struct {
	head atomic.Pointer[queueNode]
	tail atomic.Pointer[queueNode]
	n    atomic.Uint64
}

type queueNode struct {
	next atomic.Pointer[queueNode]
	v    item
}

var queueNodePool = sync.Pool{
	New: func() any { return &queueNode{} },
}

func (q *queue) init() {
	head := &queueNode{}
	q.head.Store(head)
	q.tail.Store(head)
}

// push adds an item to the end of the queue.
func (q *queue) push(v item) {
	n := queueNodePool.Get().(*queueNode)
	n.next.Store(nil)
	n.v = v

	for {
		last := q.tail.Load()
		lastnext := last.next.Load()
		if q.tail.Load() != last {
			continue
		}
		if lastnext == nil {
			if last.next.CompareAndSwap(lastnext, n) {
				q.tail.CompareAndSwap(last, n)
				q.n.Add(1)
				return
			}
		} else {
			q.tail.CompareAndSwap(last, lastnext)
		}
	}
}

// pop removes and returns the item at the front of the queue, reporting
// whether the queue was non-empty.
func (q *queue) pop() (item, bool) {
	for {
		first := q.head.Load()
		last := q.tail.Load()
		firstnext := first.next.Load()
		if first != q.head.Load() {
			continue
		}
		if first == last {
			if firstnext == nil {
				return item{}, false
			}
			q.tail.CompareAndSwap(last, firstnext)
			continue
		}
		v := firstnext.v
		if q.head.CompareAndSwap(first, firstnext) {
			q.n.Add(^uint64(0))
			first.v = item{}
			queueNodePool.Put(first)
			return v, true
		}
	}
}

// len returns the number of queued items.
func (q *queue) len() uint64 {
	return q.n.Load()
}
