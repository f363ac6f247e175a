package symtab

// Table holds exactly two scopes: class scope (static, field) and
// subroutine scope (arg, var). There is no nested block scoping — Jack
// declares all locals at the top of a subroutine body (spec.md §4.2).
type Table struct {
	class      map[string]Entry
	subroutine map[string]Entry
	counters   map[Kind]int // per (scope-pair, kind) monotonic counters, keyed across both scopes
}

// New returns an empty table, ready for class-scope declarations.
func New() *Table {
	return &Table{
		class:      make(map[string]Entry),
		subroutine: make(map[string]Entry),
		counters:   make(map[Kind]int),
	}
}

// StartSubroutine clears subroutine scope and resets the arg/var counters.
// Class scope (and its static/field counters) is left untouched.
func (t *Table) StartSubroutine() {
	t.subroutine = make(map[string]Entry)
	t.counters[Arg] = 0
	t.counters[Var] = 0
}

// Define inserts name in the scope indicated by kind (class scope for
// Static/Field, subroutine scope for Arg/Var) and advances that kind's
// counter. Defining a name that already exists in its scope is undefined
// behaviour per spec.md §3 and is not guarded here.
func (t *Table) Define(name, typ string, kind Kind) Entry {
	entry := Entry{Name: name, Type: typ, Kind: kind, Index: t.counters[kind]}
	t.counters[kind]++

	switch kind {
	case Static, Field:
		t.class[name] = entry
	case Arg, Var:
		t.subroutine[name] = entry
	default:
		panic("symtab: Define of invalid kind")
	}
	return entry
}

// VarCount returns the number of slots defined for kind in its scope.
func (t *Table) VarCount(kind Kind) int {
	return t.counters[kind]
}

// Lookup consults subroutine scope first, then class scope. The bool
// result is false when name is unresolved — at that point the caller
// (the compiler) decides whether that means "this is a class name" or a
// resolution error (spec.md §3, §7).
func (t *Table) Lookup(name string) (Entry, bool) {
	if e, ok := t.subroutine[name]; ok {
		return e, true
	}
	if e, ok := t.class[name]; ok {
		return e, true
	}
	return Entry{}, false
}

// KindOf, TypeOf, IndexOf, SegmentOf are the contract's single-field
// lookup accessors (spec.md §4.2). Each returns its second result false
// when name is unresolved.
func (t *Table) KindOf(name string) (Kind, bool) {
	e, ok := t.Lookup(name)
	return e.Kind, ok
}

func (t *Table) TypeOf(name string) (string, bool) {
	e, ok := t.Lookup(name)
	return e.Type, ok
}

func (t *Table) IndexOf(name string) (int, bool) {
	e, ok := t.Lookup(name)
	return e.Index, ok
}

func (t *Table) SegmentOf(name string) (Segment, bool) {
	e, ok := t.Lookup(name)
	if !ok {
		return "", false
	}
	return SegmentOf(e.Kind), true
}
