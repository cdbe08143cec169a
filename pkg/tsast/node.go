package tsast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds relevant to documentation rules. Everything else maps to NodeOther.
const (
	NodeProgram NodeKind = iota
	NodeExportStatement
	NodeInterfaceDeclaration
	NodeInterfaceBody
	NodePropertySignature
	NodeObjectType

	// Fallback for constructs no rule inspects.
	NodeOther
)

//nolint:gochecknoglobals // Read-only lookup table.
var nodeKindNames = [...]string{
	NodeProgram:              "Program",
	NodeExportStatement:      "ExportStatement",
	NodeInterfaceDeclaration: "InterfaceDeclaration",
	NodeInterfaceBody:        "InterfaceBody",
	NodePropertySignature:    "PropertySignature",
	NodeObjectType:           "ObjectType",
	NodeOther:                "Other",
}

// String returns the kind name.
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node represents a single node in the TypeScript AST.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Type is the grammar's node type, kept for NodeOther diagnostics.
	Type string

	// Name is the declared identifier for named declarations, if any.
	Name string

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// StartOffset and EndOffset delimit the node's bytes in File.Content.
	StartOffset int
	EndOffset   int

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot

	// Attrs holds kind-specific attributes.
	Attrs *Attrs
}

// Attrs holds attributes extracted by the parser.
type Attrs struct {
	// Default is set on export statements written "export default ...".
	Default bool

	// Wildcard is set on "export * from ..." statements.
	Wildcard bool

	// Assignment is set on "export = x" and "export as namespace X".
	Assignment bool

	// Declaration is the declaration of an export statement, if any.
	Declaration *Node
}

// IsNamedExport reports whether n is an export statement other than
// "export default", "export * from" and export assignments.
func (n *Node) IsNamedExport() bool {
	if n.Kind != NodeExportStatement {
		return false
	}
	if n.Attrs == nil {
		return true
	}
	return !n.Attrs.Default && !n.Attrs.Wildcard && !n.Attrs.Assignment
}

// Declaration returns the declaration an export statement exports, or nil.
func (n *Node) Declaration() *Node {
	if n.Attrs == nil {
		return nil
	}
	return n.Attrs.Declaration
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Ancestor returns the closest ancestor of the given kind, or nil.
func (n *Node) Ancestor(kind NodeKind) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}
