package symbol

// WalkFunc is called for every declaration visited by Walk, with the depth of
// the declaration below the starting list. Returning false skips the nested
// declarations of d
type WalkFunc func(d Declaration, depth int) bool

// Walk visits the declarations depth-first, in source order, following both
// function bodies and class members
func Walk(decls []Declaration, fn WalkFunc) {
	walk(decls, 0, fn)
}

func walk(decls []Declaration, depth int, fn WalkFunc) {
	for _, decl := range decls {
		if !fn(decl, depth) {
			continue
		}
		switch d := decl.(type) {
		case *Function:
			walk(d.Body, depth+1, fn)
		case *ClassLike:
			walk(d.Members, depth+1, fn)
		}
	}
}

// ByName returns every declaration in the file with the given name, at any depth
func (f *SourceFile) ByName(name string) []Declaration {
	var found []Declaration
	Walk(f.Declarations, func(d Declaration, _ int) bool {
		if d.Header().Name == name {
			found = append(found, d)
		}
		return true
	})
	return found
}

// ByName returns the members of the class with the given name, without
// searching nested classes
func (c *ClassLike) ByName(name string) []Declaration {
	var found []Declaration
	for _, member := range c.Members {
		if member.Header().Name == name {
			found = append(found, member)
		}
	}
	return found
}

// Count returns the number of declarations in the file, at any depth
func (f *SourceFile) Count() int {
	var count int
	Walk(f.Declarations, func(Declaration, int) bool {
		count++
		return true
	})
	return count
}
