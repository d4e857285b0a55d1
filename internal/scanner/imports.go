package scanner

import (
	"errors"
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// ErrSyntax marks a source file that could not be parsed cleanly.
// It is the only extraction failure callers are expected to recover from.
var ErrSyntax = errors.New("syntax error")

// SyntaxError describes where parsing first failed.
type SyntaxError struct {
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d", e.Line, e.Column)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// Extractor pulls import names out of source text using a syntax tree.
// An Extractor is safe for concurrent use; each call gets its own parser.
type Extractor struct {
	language *tree_sitter.Language
	query    *tree_sitter.Query
}

// NewExtractor compiles the import query for the Python grammar.
func NewExtractor() (*Extractor, error) {
	language := tree_sitter.NewLanguage(tree_sitter_python.Language())
	query, qerr := tree_sitter.NewQuery(language, importQuery)
	if qerr != nil {
		return nil, fmt.Errorf("failed to compile import query: %s", qerr.Error())
	}
	return &Extractor{language: language, query: query}, nil
}

// Close releases the compiled query.
func (e *Extractor) Close() {
	e.query.Close()
}

// Extract returns the dotted module names imported by src, in source order.
// "import a, b" yields both names. A file with syntax errors yields a
// *SyntaxError, which matches ErrSyntax.
func (e *Extractor) Extract(src []byte) ([]string, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(e.language); err != nil {
		return nil, fmt.Errorf("failed to set parser language: %w", err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser returned no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxErrorAt(root)
	}
	if bad := firstRejected(root); bad != nil {
		return nil, syntaxErrorAtNode(bad)
	}

	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	var imports []string
	matches := cursor.Matches(e.query, root, src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			name := dottedName(&capture.Node, src)
			if name != "" {
				imports = append(imports, name)
			}
		}
	}
	return imports, nil
}

// dottedName joins the identifiers of a dotted_name node with ".". Line
// continuations and comments inside the name are dropped.
func dottedName(n *tree_sitter.Node, src []byte) string {
	var parts []string
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil || child.Kind() != "identifier" {
			continue
		}
		parts = append(parts, child.Utf8Text(src))
	}
	return strings.Join(parts, ".")
}

// syntaxErrorAt locates the first error or missing node below n.
func syntaxErrorAt(n *tree_sitter.Node) *SyntaxError {
	if bad := firstError(n); bad != nil {
		return syntaxErrorAtNode(bad)
	}
	return syntaxErrorAtNode(n)
}

func syntaxErrorAtNode(n *tree_sitter.Node) *SyntaxError {
	pos := n.StartPosition()
	return &SyntaxError{Line: int(pos.Row) + 1, Column: int(pos.Column) + 1}
}

// legacyStatements are Python 2 forms the grammar still accepts.
var legacyStatements = map[string]bool{
	"print_statement": true,
	"exec_statement":  true,
}

// firstRejected finds the first node the grammar parsed cleanly but Python 3
// rejects: a legacy statement, or a statement indented differently from the
// statements before it in the same module or block.
func firstRejected(n *tree_sitter.Node) *tree_sitter.Node {
	if legacyStatements[n.Kind()] {
		return n
	}
	if n.Kind() == "module" || n.Kind() == "block" {
		if bad := misindented(n); bad != nil {
			return bad
		}
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		if bad := firstRejected(child); bad != nil {
			return bad
		}
	}
	return nil
}

// misindented returns the first statement of body that starts a new line at a
// column other than the body's indentation. Module statements sit at column 0;
// a block's indentation is set by its first statement. Statements sharing a
// line after ";" and extras such as comments are not checked.
func misindented(body *tree_sitter.Node) *tree_sitter.Node {
	indent := uint(0)
	haveIndent := body.Kind() == "module"
	var prev *tree_sitter.Node
	for i := uint(0); i < body.NamedChildCount(); i++ {
		stmt := body.NamedChild(i)
		if stmt == nil || stmt.IsExtra() {
			continue
		}
		start := stmt.StartPosition()
		if prev != nil && start.Row == prev.EndPosition().Row {
			prev = stmt
			continue
		}
		if !haveIndent {
			indent, haveIndent = start.Column, true
		} else if start.Column != indent {
			return stmt
		}
		prev = stmt
	}
	return nil
}

func firstError(n *tree_sitter.Node) *tree_sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return nil
}
