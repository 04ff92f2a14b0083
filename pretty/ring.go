package pretty

// ring is a growable circular queue. Elements are addressed by their
// stream position: the first element ever pushed has position 0 and
// positions keep increasing as the head advances, so a position stays
// valid for as long as its element is queued.
type ring[T any] struct {
	data   []T
	head   int
	n      int
	offset int
}

func (r *ring[T]) Len() int { return r.n }

// FrontPos returns the position of the first element.
func (r *ring[T]) FrontPos() int { return r.offset }

// BackPos returns the position of the last element.
func (r *ring[T]) BackPos() int { return r.offset + r.n - 1 }

// PushBack appends v and returns its position.
func (r *ring[T]) PushBack(v T) int {
	if r.n == len(r.data) {
		r.grow()
	}
	r.data[(r.head+r.n)%len(r.data)] = v
	r.n++
	return r.BackPos()
}

func (r *ring[T]) PopFront() T {
	if r.n == 0 {
		panic("pretty: pop from empty ring")
	}
	var zero T
	v := r.data[r.head]
	r.data[r.head] = zero
	r.head = (r.head + 1) % len(r.data)
	r.n--
	r.offset++
	return v
}

func (r *ring[T]) PopBack() T {
	if r.n == 0 {
		panic("pretty: pop from empty ring")
	}
	var zero T
	i := (r.head + r.n - 1) % len(r.data)
	v := r.data[i]
	r.data[i] = zero
	r.n--
	return v
}

func (r *ring[T]) Front() T { return *r.At(r.FrontPos()) }

func (r *ring[T]) Back() T { return *r.At(r.BackPos()) }

// At returns a pointer to the element at position pos, for in-place
// updates. The pointer is invalidated by the next push.
func (r *ring[T]) At(pos int) *T {
	i := pos - r.offset
	if i < 0 || i >= r.n {
		panic("pretty: ring position out of range")
	}
	return &r.data[(r.head+i)%len(r.data)]
}

// Clear drops all elements. Positions are not reused.
func (r *ring[T]) Clear() {
	var zero T
	for r.n > 0 {
		r.data[r.head] = zero
		r.head = (r.head + 1) % len(r.data)
		r.n--
		r.offset++
	}
	r.head = 0
}

func (r *ring[T]) grow() {
	c := 2 * len(r.data)
	if c == 0 {
		c = 8
	}
	data := make([]T, c)
	for i := 0; i < r.n; i++ {
		data[i] = r.data[(r.head+i)%len(r.data)]
	}
	r.data = data
	r.head = 0
}
