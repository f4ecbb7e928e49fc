package lr

// === FIRST and FOLLOW ======================================================

// firstPass computes one approximation of the FIRST sets. Recursion on
// non-terminals is guarded by the set of symbols currently under
// computation. A guarded symbol contributes its approximation from the
// previous pass, which is empty at the beginning.
type firstPass struct {
	g        *Grammar
	previous map[Symbol]*SymbolSet
	done     map[Symbol]*SymbolSet
}

func (fp *firstPass) firstOf(A Symbol, active map[Symbol]bool) *SymbolSet {
	if A == Epsilon || !fp.g.IsNonTerminal(A) {
		return newSymbolSet(A)
	}
	if f, ok := fp.done[A]; ok {
		return f
	}
	if active[A] {
		return fp.previous[A].Copy()
	}
	active[A] = true
	defer delete(active, A)
	first := newSymbolSet()
	for _, r := range fp.g.rulesByLHS[A] {
		nullable := true
		for _, B := range r.rhs {
			f := fp.firstOf(B, active)
			for _, a := range f.Symbols() {
				if a != Epsilon {
					first.Add(a)
				}
			}
			if !f.Contains(Epsilon) {
				nullable = false
				break
			}
		}
		if nullable {
			first.Add(Epsilon)
		}
	}
	fp.done[A] = first
	return first
}

// computeFirstSets repeats passes until no FIRST set changes.
func (g *Grammar) computeFirstSets() {
	first := make(map[Symbol]*SymbolSet, len(g.nonterminals))
	N := g.NonTerminals()
	for pass := 1; ; pass++ {
		fp := &firstPass{g: g, previous: first, done: make(map[Symbol]*SymbolSet)}
		changed := false
		for _, A := range N {
			f := fp.firstOf(A, make(map[Symbol]bool))
			if !f.Equals(first[A]) {
				changed = true
			}
		}
		first = fp.done
		if !changed {
			tracer().Debugf("FIRST sets stable after %d passes", pass)
			break
		}
	}
	g.first = first
}

// First returns FIRST(A). For terminals and ε this is {A}. The returned set
// is a copy and may be modified by the caller. Unknown symbols have an empty
// FIRST set.
func (g *Grammar) First(A Symbol) *SymbolSet {
	if A == Epsilon || g.IsTerminal(A) {
		return newSymbolSet(A)
	}
	return g.first[A].Copy()
}

// FirstOfString returns FIRST(X₁ … Xₙ). The set contains ε if every symbol
// of the sequence is nullable, in particular for the empty sequence. The
// end-of-input symbol is never nullable.
func (g *Grammar) FirstOfString(syms []Symbol) *SymbolSet {
	result := newSymbolSet()
	for _, A := range syms {
		if A == EOF {
			result.Add(EOF)
			return result
		}
		f := g.First(A)
		for _, a := range f.Symbols() {
			if a != Epsilon {
				result.Add(a)
			}
		}
		if !f.Contains(Epsilon) {
			return result
		}
	}
	result.Add(Epsilon)
	return result
}

// Nullable is a predicate: does A derive the empty string?
func (g *Grammar) Nullable(A Symbol) bool {
	if A == Epsilon {
		return true
	}
	return g.first[A].Contains(Epsilon)
}

func (g *Grammar) computeFollowSets() {
	follow := make(map[Symbol]*SymbolSet, len(g.nonterminals))
	for A := range g.nonterminals {
		follow[A] = newSymbolSet()
	}
	follow[g.augmented].Add(EOF)
	follow[g.start].Add(EOF)
	for changed := true; changed; {
		changed = false
		for _, r := range g.rules {
			for i, B := range r.rhs {
				if !g.IsNonTerminal(B) {
					continue
				}
				f := g.FirstOfString(r.rhs[i+1:])
				if f.Contains(Epsilon) {
					f.Remove(Epsilon)
					if follow[B].Union(follow[r.LHS]) {
						changed = true
					}
				}
				if follow[B].Union(f) {
					changed = true
				}
			}
		}
	}
	g.follow = follow
}

// Follow returns FOLLOW(A) for a non-terminal A, as a copy. For other symbols
// the set is empty.
func (g *Grammar) Follow(A Symbol) *SymbolSet {
	return g.follow[A].Copy()
}
