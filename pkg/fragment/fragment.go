// Package fragment records named anchor positions within rendered output.
package fragment

// Position locates a fragment: Block is the ordinal of the block that was
// current when it was recorded, Line the output line offset.
type Position struct {
	Block int `json:"block"`
	Line  int `json:"line"`
}

// Fragment is a recorded anchor.
type Fragment struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`
}

// Registry maps fragment names to positions. The first occurrence of a name
// is the addressable one; later duplicates are kept but only visible via All.
type Registry struct {
	byName map[string]int
	all    []Fragment
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Record registers name at pos. It reports whether name was new.
func (r *Registry) Record(name string, pos Position) bool {
	r.all = append(r.all, Fragment{Name: name, Position: pos})
	if _, exists := r.byName[name]; exists {
		return false
	}
	r.byName[name] = len(r.all) - 1
	return true
}

// Lookup returns the position of the first fragment recorded as name.
func (r *Registry) Lookup(name string) (Position, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Position{}, false
	}
	return r.all[i].Position, true
}

// All returns every recorded fragment, duplicates included, in record order.
func (r *Registry) All() []Fragment {
	return r.all
}

// Len returns the number of recorded fragments.
func (r *Registry) Len() int {
	return len(r.all)
}

// Merge records every fragment of other shifted by lineOffset. Fragments in
// other's root block land in host; other's block k > 0 becomes
// blockOffset+k. Names already present keep their original position.
func (r *Registry) Merge(other *Registry, host, blockOffset, lineOffset int) {
	if other == nil {
		return
	}
	for _, f := range other.all {
		pos := Position{Block: host, Line: f.Position.Line + lineOffset}
		if f.Position.Block > 0 {
			pos.Block = f.Position.Block + blockOffset
		}
		if pos.Line < 0 {
			pos.Line = 0
		}
		r.Record(f.Name, pos)
	}
}
