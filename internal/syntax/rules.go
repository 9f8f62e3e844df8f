package syntax

// BuiltinGo returns a small, illustrative regex-rule syntax definition for
// Go source, themed from a named Chroma palette. It exists as a concrete,
// realistic Definition for tests and cmd/viewdemo — not as a replacement
// for a real syntax-definition file format, which is out of scope here
// (§1: "the syntax definition" is an external collaborator).
func BuiltinGo(theme string) *Definition {
	styleTable := StylesFromTheme(theme)
	slot := func(name string) StyleSlot {
		s, _ := SlotForTokenName(styleTable, name)
		return s
	}

	def := &Definition{Styles: styleTable}
	def.Rules = []Rule{
		MustCompileRule("comment-line", `//[^\n]*`, slot("comment")),
		MustCompileRule("comment-block", `/\*[\s\S]*?\*/`, slot("comment")),
		MustCompileRule("string", `"(\\.|[^"\\])*"`, slot("string")),
		MustCompileRule("rune", `'(\\.|[^'\\])*'`, slot("string")),
		MustCompileRule("number", `\b[0-9]+(\.[0-9]+)?\b`, slot("number")),
		MustCompileRule("keyword", `\b(func|package|import|return|if|else|for|range|var|const|type|struct|interface|go|chan|select|switch|case|default|defer|map)\b`, slot("keyword")),
		MustCompileRule("operator", `[+\-*/%&|^!=<>:]+`, slot("operator")),
	}
	return def
}
