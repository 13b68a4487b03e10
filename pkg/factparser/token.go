package factparser

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenName  TokenKind = iota // bare word, "quoted" or """triple-quoted"""
	TokenLabel                  // (parenthesised label)
	TokenComma                  // ,
	TokenColon                  // : after an attribute name
)

var tokenNames = map[TokenKind]string{
	TokenName:  "name",
	TokenLabel: "label",
	TokenComma: "','",
	TokenColon: "':'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit. Text is decoded: quotes, parentheses and
// escapes are removed, so the surface encoding is not retained.
type Token struct {
	Kind TokenKind
	Text string
	Line int // 1-based line where the token starts
}

// LineKind distinguishes fact headers from indented attribute lines.
type LineKind int

const (
	LineFact LineKind = iota // unindented fact header
	LineAttr                 // indented attribute line
)

func (k LineKind) String() string {
	if k == LineAttr {
		return "attribute line"
	}
	return "fact line"
}

// Line is one logical line. A logical line may span several physical lines
// when it contains a triple-quoted string or a label with line breaks.
type Line struct {
	Kind   LineKind
	Tokens []Token
	Num    int // 1-based physical line where the logical line starts
}
