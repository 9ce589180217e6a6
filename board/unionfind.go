package board

// unionFind is a disjoint-set forest with union by size and path compression.
type unionFind[T comparable] struct {
	parent map[T]T
	size   map[T]int
}

func newUnionFind[T comparable](items []T) *unionFind[T] {
	uf := &unionFind[T]{
		parent: make(map[T]T, len(items)),
		size:   make(map[T]int, len(items)),
	}
	for _, item := range items {
		uf.parent[item] = item
		uf.size[item] = 1
	}
	return uf
}

func (uf *unionFind[T]) find(x T) T {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for x != root {
		next := uf.parent[x]
		uf.parent[x] = root
		x = next
	}
	return root
}

func (uf *unionFind[T]) union(a, b T) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
	delete(uf.size, rb)
}

func (uf *unionFind[T]) componentSizes() []int {
	sizes := make([]int, 0, len(uf.size))
	for _, s := range uf.size {
		sizes = append(sizes, s)
	}
	return sizes
}
