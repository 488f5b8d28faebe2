package diff

// Path is the chain of member names and formatted indices leading to a node.
type Path []string

func (p Path) String() string {
	out := ""
	for _, key := range p {
		if out != "" && key[0] != '[' {
			out += "."
		}

		out += key
	}

	return out
}

// Walk visits every node of d depth first, the root with an empty path.
// Returning false from fn skips the children of that node.
func Walk(d *ValueDiff, fn func(path Path, v *ValueDiff) bool) {
	if d == nil {
		return
	}

	walk(nil, d, fn)
}

func walk(path Path, d *ValueDiff, fn func(Path, *ValueDiff) bool) {
	if !fn(path, d) {
		return
	}

	for _, sub := range d.Diffs {
		walk(append(path[:len(path):len(path)], sub.Key()), sub.Value(), fn)
	}
}

// Leaves returns the path of every leaf difference.
func Leaves(d *ValueDiff) []Path {
	var out []Path

	Walk(d, func(path Path, v *ValueDiff) bool {
		if v.IsLeaf() {
			out = append(out, path)
		}

		return true
	})

	return out
}
