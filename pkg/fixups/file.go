package fixups

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/sexp"
)

// Parse reads a fixups overlay written as s-expressions, one directive per
// list:
//
//	(ignore-register REG_HOST_SUSP_CNT "Defined twice")
//	(ignore-mask SYS_CFG_CHIP_VER "Overlapping mask is also defined")
//	(hint TSFTR "Ignore (Timer)")
//
// The reason or hint is optional for ignore directives. Unquoted trailing
// atoms are joined with single spaces.
func Parse(input string) (*Set, error) {
	input, quoted, err := stashStrings(input)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input) == "" {
		return New(), nil
	}
	exprs, err := sexp.ParseString(input)
	if err != nil {
		return nil, fmt.Errorf("fixups: parse error: %w", err)
	}

	set := New()
	for i, expr := range exprs {
		atoms := elements(expr, quoted)
		if len(atoms) == 0 {
			continue
		}
		if len(atoms) < 2 {
			return nil, fmt.Errorf("fixups: directive #%d: expected (directive name ...), got %v", i, expr)
		}
		directive, name := atoms[0], atoms[1]
		text := strings.Join(atoms[2:], " ")
		switch directive {
		case "ignore-register":
			set.IgnoredRegisters[name] = text
		case "ignore-mask":
			set.IgnoredMasks[name] = text
		case "hint":
			if text == "" {
				return nil, fmt.Errorf("fixups: hint for %s is empty", name)
			}
			set.Hints[name] = text
		default:
			return nil, fmt.Errorf("fixups: unknown directive %q", directive)
		}
	}
	return set, nil
}

// Load reads an overlay from r.
func Load(r io.Reader) (*Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fixups: read: %w", err)
	}
	return Parse(string(data))
}

// LoadFile reads an overlay from a file path.
func LoadFile(path string) (*Set, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixups: failed to open file: %w", err)
	}
	defer file.Close()

	return Load(file)
}

const quotedPrefix = "quoted-string-"

// stashStrings replaces every string literal with a placeholder symbol. The
// sexp lexer splits literals on parentheses, and hints like "Ignore (Timer)"
// must survive intact.
func stashStrings(input string) (string, []string, error) {
	var (
		out    strings.Builder
		quoted []string
	)
	for {
		open := strings.IndexByte(input, '"')
		if open < 0 {
			out.WriteString(input)
			return out.String(), quoted, nil
		}
		end := strings.IndexByte(input[open+1:], '"')
		if end < 0 {
			return "", nil, fmt.Errorf("fixups: unterminated string at %q", input[open:])
		}
		out.WriteString(input[:open])
		fmt.Fprintf(&out, " %s%d ", quotedPrefix, len(quoted))
		quoted = append(quoted, input[open+1:open+1+end])
		input = input[open+end+2:]
	}
}

// elements returns the atoms of a top-level list with placeholders resolved.
// Empty expressions yield nothing.
func elements(expr sexp.Sexp, quoted []string) []string {
	if expr == nil {
		return nil
	}
	list, ok := expr.(sexp.List)
	if !ok {
		if atom := strings.TrimSpace(fmt.Sprint(expr)); atom != "" {
			return []string{unstash(atom, quoted)}
		}
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, unstash(strings.TrimSpace(fmt.Sprint(item)), quoted))
	}
	return out
}

func unstash(atom string, quoted []string) string {
	if n, ok := strings.CutPrefix(atom, quotedPrefix); ok {
		if i, err := strconv.Atoi(n); err == nil && i < len(quoted) {
			return quoted[i]
		}
	}
	return atom
}
