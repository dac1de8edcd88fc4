package hamt

// core is the container state shared by Set and Dict: one root
// reference, an item count, the mutation token and the index
// generation counter.
//
// A container value is freely shareable for reads. Mutating operations
// require exclusive access to the containers involved, as do the
// structure-sharing constructors (Clone, Union, Intersect, Subtract,
// Merge) since they retire mutation tokens.
type core struct {
	root  node
	count int
	gen   uint32
	owner *owner
}

func newCore() core {
	return core{owner: newOwner()}
}

// Len returns the number of stored items.
func (c *core) Len() int {
	return c.count
}

func (c *core) Empty() bool {
	return c.count == 0
}

// invalidate bumps the generation, rejecting every outstanding index.
// Called on entry to each mutating operation, effective or not.
func (c *core) invalidate() {
	c.gen++
}

// share retires the mutation token before the root escapes into
// another container. Previously owned nodes become plain shared nodes:
// neither container will edit them in place afterwards.
func (c *core) share() node {
	c.owner = newOwner()
	return c.root
}

// check validates an index against this container and its current
// generation. A stale or foreign index is a contract violation.
func (c *core) check(idx Index) {
	if idx.src != c || idx.gen != c.gen || len(idx.steps) == 0 {
		panic("hamt: invalid, stale or foreign index")
	}
}
