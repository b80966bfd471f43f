package header

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// DefineLexer tokenizes single C preprocessor lines. Anything it does not
// know becomes a Punct token, so lexing never fails and unknown syntax is
// rejected by the grammar instead.
var DefineLexer = lexer.MustSimple([]lexer.SimpleRule{
	// C and C++ comments
	{Name: "Comment", Pattern: `/\*.*?\*/|//[^\n]*`},

	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	// Preprocessor directives (#define, #ifdef, ...)
	{Name: "Directive", Pattern: `#[a-z]+`},

	// Numbers; hex must come first so 0x.. is not split
	{Name: "Hex", Pattern: `0[xX][0-9a-fA-F]+`},
	{Name: "Int", Pattern: `[0-9]+`},

	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},

	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Or", Pattern: `\|`},

	{Name: "Punct", Pattern: `[^\sA-Za-z0-9_]`},
})
