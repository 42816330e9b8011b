package bento

// Family is a live bucket of top-level objects sharing a family tag. The
// ObjectManager keeps it current as members are attached and removed, so a
// caller may hold on to it across frames.
type Family struct {
	name    string
	members []Component
}

func newFamily(name string) *Family {
	return &Family{name: name}
}

// Name returns the family tag.
func (f *Family) Name() string { return f.name }

// Len returns the number of members.
func (f *Family) Len() int { return len(f.members) }

// At returns the i-th member in registration order.
func (f *Family) At(i int) Component { return f.members[i] }

// All returns the live member slice. It MUST NOT be mutated and may change
// after the next attach or remove.
func (f *Family) All() []Component { return f.members }

// Contains reports whether c is a member.
func (f *Family) Contains(c Component) bool {
	return f.indexOf(c) >= 0
}

// Each calls fn for every member until fn returns false. Membership changes
// made by fn are visible to the remaining iteration.
func (f *Family) Each(fn func(c Component) bool) {
	for i := 0; i < len(f.members); i++ {
		if !fn(f.members[i]) {
			return
		}
	}
}

func (f *Family) add(c Component) {
	if f.Contains(c) {
		return
	}
	f.members = append(f.members, c)
}

func (f *Family) remove(c Component) {
	i := f.indexOf(c)
	if i < 0 {
		return
	}
	copy(f.members[i:], f.members[i+1:])
	f.members[len(f.members)-1] = nil
	f.members = f.members[:len(f.members)-1]
}

func (f *Family) indexOf(c Component) int {
	for i, m := range f.members {
		if m == c {
			return i
		}
	}
	return -1
}
