package lint

import "github.com/yaklabco/tsdoclint/pkg/tsast"

// ExportingStatement returns the named export statement whose declaration
// is decl, or nil when decl is not exported that way.
func ExportingStatement(decl *tsast.Node) *tsast.Node {
	if decl == nil {
		return nil
	}
	for p := decl.Parent; p != nil; p = p.Parent {
		if p.Kind != tsast.NodeExportStatement {
			continue
		}
		if p.IsNamedExport() && p.Declaration() == decl {
			return p
		}
		return nil
	}
	return nil
}

// ExportedInterfaceOf returns the closest enclosing interface declaration of
// n that is exported by a named export statement, or nil.
func ExportedInterfaceOf(n *tsast.Node) *tsast.Node {
	if n == nil {
		return nil
	}
	for iface := n.Ancestor(tsast.NodeInterfaceDeclaration); iface != nil; iface = iface.Ancestor(tsast.NodeInterfaceDeclaration) {
		if ExportingStatement(iface) != nil {
			return iface
		}
	}
	return nil
}
