package mrl

// Prev returns the previous node or nil.
func (m *MRL) Prev() *MRL { return m.prev }

// Next returns the next node or nil.
func (m *MRL) Next() *MRL { return m.next }

// First walks back to the head of m's chain.
func (m *MRL) First() *MRL {
	for m.prev != nil {
		m = m.prev
	}
	return m
}

// Last walks forward to the tail of m's chain.
func (m *MRL) Last() *MRL {
	for m.next != nil {
		m = m.next
	}
	return m
}

// Linked reports whether m has a neighbour.
func (m *MRL) Linked() bool {
	return m.prev != nil || m.next != nil
}

// Append links other, which must be a lone node, after the tail of m's chain.
func (m *MRL) Append(other *MRL) error {
	switch {
	case other == nil || other == m:
		return ErrLinked
	case other.freed || m.freed:
		return ErrFreed
	case other.Linked():
		return ErrLinked
	}

	last := m.Last()
	last.next = other
	other.prev = last
	return nil
}

// Replace puts other, which must be a lone node, in m's place. m ends up unlinked.
func (m *MRL) Replace(other *MRL) error {
	switch {
	case other == nil || other == m:
		return ErrLinked
	case other.freed || m.freed:
		return ErrFreed
	case other.Linked():
		return ErrLinked
	}

	other.prev, other.next = m.prev, m.next
	if m.prev != nil {
		m.prev.next = other
	}
	if m.next != nil {
		m.next.prev = other
	}
	m.prev, m.next = nil, nil
	return nil
}

// Unlink detaches m, joining its neighbours to each other.
func (m *MRL) Unlink() {
	if m.prev != nil {
		m.prev.next = m.next
	}
	if m.next != nil {
		m.next.prev = m.prev
	}
	m.prev, m.next = nil, nil
}

// Position returns m's zero-based index in its chain.
func (m *MRL) Position() int {
	n := 0
	for p := m.prev; p != nil; p = p.prev {
		n++
	}
	return n
}

// Count returns the number of nodes in m's chain.
func (m *MRL) Count() int {
	return m.Position() + 1 + m.remaining()
}

func (m *MRL) remaining() int {
	n := 0
	for p := m.next; p != nil; p = p.next {
		n++
	}
	return n
}

// At returns the node at index i of m's chain, or nil.
func (m *MRL) At(i int) *MRL {
	if i < 0 {
		return nil
	}
	n := m.First()
	for ; n != nil && i > 0; i-- {
		n = n.next
	}
	return n
}

// Chain returns every node of m's chain from the head.
func (m *MRL) Chain() []*MRL {
	var nodes []*MRL
	for n := m.First(); n != nil; n = n.next {
		nodes = append(nodes, n)
	}
	return nodes
}
