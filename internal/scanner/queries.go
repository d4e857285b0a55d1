package scanner

// importQuery captures the module path of every import statement.
// Only the module part of "from X import ..." is captured; imported names
// are irrelevant. For relative forms the dotted tail after the dots is
// captured, and "from . import x" captures nothing.
const importQuery = `
	(import_statement name: (dotted_name) @module)
	(import_statement name: (aliased_import name: (dotted_name) @module))
	(import_from_statement module_name: (dotted_name) @module)
	(import_from_statement module_name: (relative_import (dotted_name) @module))
`
