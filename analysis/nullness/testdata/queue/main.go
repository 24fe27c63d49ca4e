// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

type Node struct {
	next *Node
	val  int
}

type Queue struct {
	head *Node
}

func (q *Queue) isEmpty() bool { return q.head == nil }

func (q *Queue) peek() *Node { return q.head }

func (q *Queue) contains(n *Node) bool {
	for c := q.head; c != nil; c = c.next {
		if c == n {
			return true
		}
	}
	return false
}

func first(q *Queue) int {
	if !q.isEmpty() {
		return q.peek().val // @NonNull(q.peek())
	}
	return 0 // @Unproven(q.peek())
}

func member(q *Queue, n *Node) int {
	if q.contains(n) {
		return n.val // @NonNull(n)
	}
	return 0 // @Unproven(n)
}

func reassigned(q *Queue, other *Queue) int {
	if q.isEmpty() {
		return 0
	}
	p := q.peek() // @NonNull(q.peek())
	q = other
	return p.val // @NonNull(p) @Unproven(q.peek())
}

func field(n *Node) int {
	m := n.next
	if m != nil && m.next != nil {
		return m.next.val // @NonNull(m, m.next)
	}
	n.next = nil
	return 0 // @NonNull(n) @Unproven(n.next)
}

func (q *Queue) clear() { q.head = nil }

func cleared(q *Queue) int {
	if !q.isEmpty() {
		q.clear()
		return 0 // @Unproven(q.peek())
	}
	return 1
}

func main() {
	q := &Queue{}
	first(q)
}
