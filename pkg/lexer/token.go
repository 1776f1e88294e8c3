package lexer

// Token is a payload-free lexical tag.
type Token int

const (
	Succ Token = iota
	Pred
	Zero
	True
	False
	If
	Then
	Else
	IsZero
)

var tokenNames = [...]string{
	Succ:   "Succ",
	Pred:   "Pred",
	Zero:   "Zero",
	True:   "True",
	False:  "False",
	If:     "If",
	Then:   "Then",
	Else:   "Else",
	IsZero: "IsZero",
}

// String returns the tag name, e.g. "IsZero".
func (t Token) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return "Token(?)"
	}
	return tokenNames[t]
}

// keywords maps source words to their tokens.
var keywords = map[string]Token{
	"succ":    Succ,
	"pred":    Pred,
	"zero":    Zero,
	"true":    True,
	"false":   False,
	"is_zero": IsZero,
	"if":      If,
	"then":    Then,
	"else":    Else,
}

// Lookup reports the token for a keyword.
func Lookup(word string) (Token, bool) {
	tok, ok := keywords[word]
	return tok, ok
}
