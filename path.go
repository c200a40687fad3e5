package liquid

// pathStep is one segment of a dotted/bracketed variable path (§6 "Path":
// `a.b[2].c`, `a["key"]`, `users[i].email`, `arr.first`).
type pathStep struct {
	bracket      bool
	name         string // for a dot segment: the literal identifier
	literal      *Value // for a bracket segment with a literal key: int or string
	dynamicName  string // for a bracket segment holding an identifier/path instead of a literal
}

// parsePathSteps tokenizes a path into its dot and bracket segments. The
// first step is always the root variable's name.
func parsePathSteps(s string) []pathStep {
	var steps []pathStep
	i, n := 0, len(s)
	for i < n {
		switch {
		case s[i] == '.':
			i++
		case s[i] == '[':
			depth := 1
			j := i + 1
			for j < n && depth > 0 {
				switch s[j] {
				case '[':
					depth++
				case ']':
					depth--
				}
				if depth == 0 {
					break
				}
				j++
			}
			inner := ""
			if j <= n {
				inner = s[i+1 : min(j, n)]
			}
			steps = append(steps, bracketStep(inner))
			if j < n {
				i = j + 1
			} else {
				i = n
			}
		default:
			j := i
			for j < n && s[j] != '.' && s[j] != '[' {
				j++
			}
			steps = append(steps, pathStep{name: s[i:j]})
			i = j
		}
	}
	return steps
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// bracketStep classifies the content of a `[...]` segment: a quoted string
// literal, an integer literal, or an identifier/path to resolve dynamically
// against the context at evaluation time.
func bracketStep(inner string) pathStep {
	trimmed := inner
	if len(trimmed) >= 2 && (trimmed[0] == '\'' || trimmed[0] == '"') && trimmed[len(trimmed)-1] == trimmed[0] {
		return pathStep{bracket: true, literal: StringValue(trimmed[1 : len(trimmed)-1])}
	}
	if isIntegerLiteral(trimmed) {
		return pathStep{bracket: true, literal: IntegerValue(parseIntLiteral(trimmed))}
	}
	return pathStep{bracket: true, dynamicName: trimmed}
}

// resolvePath resolves a path expression against ctx, returning Nil for any
// unbound root variable or any step that indexes past the end of its
// collection (§4.2 "Missing variables resolve to Nil").
func resolvePath(path string, ctx *Context) *Value {
	steps := parsePathSteps(path)
	if len(steps) == 0 {
		return Nil
	}
	var cur *Value
	if steps[0].bracket {
		cur = Nil
	} else {
		cur = ctx.Lookup(steps[0].name)
	}
	for _, st := range steps[1:] {
		var key *Value
		switch {
		case !st.bracket:
			key = StringValue(st.name)
		case st.literal != nil:
			key = st.literal
		default:
			key = resolvePath(st.dynamicName, ctx)
		}
		cur = indexValue(cur, key)
	}
	return cur
}

// indexValue implements the indexing rules for each collection kind,
// including the `.first` / `.last` / `.size` pseudo-properties (§4.2).
func indexValue(cur, key *Value) *Value {
	if cur == nil {
		return Nil
	}
	switch cur.Kind {
	case KindArray:
		return indexSequence(cur.arrVal, key)
	case KindRange:
		return indexSequence(cur.AsArray(), key)
	case KindDictionary:
		if !key.IsString() {
			return Nil
		}
		if v, ok := cur.dictVal.Get(key.strVal); ok {
			return v
		}
		if key.strVal == "size" {
			return IntegerValue(int64(cur.dictVal.Len()))
		}
		return Nil
	case KindString:
		if key.IsString() && key.strVal == "size" {
			return IntegerValue(int64(len([]rune(cur.strVal))))
		}
		return Nil
	default:
		return Nil
	}
}

func indexSequence(items []*Value, key *Value) *Value {
	if key.IsString() {
		switch key.strVal {
		case "size":
			return IntegerValue(int64(len(items)))
		case "first":
			if len(items) == 0 {
				return Nil
			}
			return items[0]
		case "last":
			if len(items) == 0 {
				return Nil
			}
			return items[len(items)-1]
		default:
			return Nil
		}
	}
	if !key.IsNumber() {
		return Nil
	}
	idx := key.AsInteger()
	if idx < 0 {
		idx += int64(len(items))
	}
	if idx < 0 || idx >= int64(len(items)) {
		return Nil
	}
	return items[idx]
}
