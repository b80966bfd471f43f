package header

// Define is a single constant definition.
// Example: #define REG_RXERR_RPT 0x0664
type Define struct {
	Name  string `"#define" @Ident`
	Value *Value `@@`
}

// Value is the right-hand side of a definition this package understands.
type Value struct {
	Hex       *string    `  @Hex`
	Bit       *BitTerm   `| @@`
	Composite *Composite `| @@`
}

// BitTerm is a single bit.
// Example: BIT(27)
type BitTerm struct {
	Index int `"BIT" LParen @Int RParen`
}

// Composite ORs several bits together.
// Example: (BIT(7) | BIT(8))
type Composite struct {
	Terms []*BitTerm `LParen @@ ( Or @@ )+ RParen`
}

// Indices returns the bit indices of the composite in source order.
func (c *Composite) Indices() []int {
	out := make([]int, 0, len(c.Terms))
	for _, term := range c.Terms {
		out = append(out, term.Index)
	}
	return out
}
