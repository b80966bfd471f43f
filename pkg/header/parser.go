package header

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// Parser reads register and field definitions from C header text.
type Parser struct {
	parser *participle.Parser[Define]
}

// NewParser creates a new header parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[Define](
		participle.Lexer(DefineLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// ParseLine parses a single #define line.
func (p *Parser) ParseLine(line string) (*Define, error) {
	def, err := p.parser.ParseString("", line)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return def, nil
}

// ExtractString extracts definitions from header text.
func (p *Parser) ExtractString(input string, opts ...ExtractOption) (*Result, error) {
	return p.Extract(strings.Split(input, "\n"), opts...)
}

// ExtractReader extracts definitions from a reader.
func (p *Parser) ExtractReader(r io.Reader, opts ...ExtractOption) (*Result, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("header: read: %w", err)
	}
	return p.Extract(lines, opts...)
}

// ExtractFile extracts definitions from a header file path.
func (p *Parser) ExtractFile(filename string, opts ...ExtractOption) (*Result, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.ExtractReader(file, opts...)
}
