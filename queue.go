package asyncloop

// A queue is a FIFO queue of callbacks.
//
// It is backed by two slices sharing one backing array: head is the front
// run, flush against the end of the array once it stops growing, and tail
// reuses the cells that popping vacates at the front. When head empties,
// the slices swap. Pushing never moves elements that are already queued.
type queue[E any] struct {
	head, tail []E
}

func (q *queue[E]) Empty() bool {
	return len(q.head) == 0
}

func (q *queue[E]) Push(v E) {
	headsize, tailsize := len(q.head), len(q.tail)

	n := headsize + tailsize

	if n == cap(q.tail) {
		var zero E

		s := append(q.tail[:n], zero)[:0]
		s = append(s, q.head...)
		s = append(s, q.tail...)
		s = append(s, v)

		q.head, q.tail = s, s[:0]

		return
	}

	if tailsize == 0 && headsize < cap(q.head) {
		q.head = append(q.head, v)
		return
	}

	// head is flush against the end of the array; the front cells up to
	// the start of head are vacated, and n < cap keeps tail inside them.
	q.tail = append(q.tail, v)
}

func (q *queue[E]) Pop() (v E) {
	q.head[0], v = v, q.head[0]

	if len(q.head) > 1 {
		q.head = q.head[1:]
	} else {
		q.head, q.tail = q.tail, q.tail[:0]
	}

	return v
}
