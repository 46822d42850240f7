package tree

// guides records which prefix columns carry an active vertical guide and
// in what color. It is a value type: with and without return a new map and
// never modify the receiver, so a subtree can never observe changes made
// while rendering one of its siblings.
type guides struct {
	cols map[int]string
}

func (g guides) color(col int) (string, bool) {
	c, ok := g.cols[col]
	return c, ok
}

func (g guides) with(col int, color string) guides {
	next := g.clone()
	next.cols[col] = color
	return next
}

func (g guides) without(col int) guides {
	if _, ok := g.cols[col]; !ok {
		return g
	}
	next := g.clone()
	delete(next.cols, col)
	return next
}

func (g guides) clone() guides {
	next := guides{cols: make(map[int]string, len(g.cols)+1)}
	for k, v := range g.cols {
		next.cols[k] = v
	}
	return next
}

func (g guides) len() int { return len(g.cols) }
