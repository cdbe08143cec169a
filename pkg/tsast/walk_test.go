package tsast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsdoclint/pkg/tsast"
)

func buildTestTree() *tsast.Node {
	// Program
	//   ExportStatement
	//     InterfaceDeclaration
	//       InterfaceBody
	//         PropertySignature
	//   Other
	program := tsast.NewNode(tsast.NodeProgram, 0, 100)

	export := tsast.NewNode(tsast.NodeExportStatement, 0, 50)
	iface := tsast.NewNode(tsast.NodeInterfaceDeclaration, 7, 50)
	body := tsast.NewNode(tsast.NodeInterfaceBody, 20, 50)
	prop := tsast.NewNode(tsast.NodePropertySignature, 22, 40)

	tsast.AppendChild(body, prop)
	tsast.AppendChild(iface, body)
	tsast.AppendChild(export, iface)
	tsast.AppendChild(program, export)
	tsast.AppendChild(program, tsast.NewNode(tsast.NodeOther, 51, 100))

	return program
}

func TestWalk(t *testing.T) {
	t.Parallel()

	var visited []tsast.NodeKind
	err := tsast.Walk(buildTestTree(), func(n *tsast.Node) error {
		visited = append(visited, n.Kind)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []tsast.NodeKind{
		tsast.NodeProgram,
		tsast.NodeExportStatement,
		tsast.NodeInterfaceDeclaration,
		tsast.NodeInterfaceBody,
		tsast.NodePropertySignature,
		tsast.NodeOther,
	}, visited)
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	count := 0
	err := tsast.Walk(buildTestTree(), func(_ *tsast.Node) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, count)
}

func TestWalkWithContext(t *testing.T) {
	t.Parallel()

	var events []string
	err := tsast.WalkWithContext(buildTestTree(),
		func(n *tsast.Node) error {
			if n.Kind == tsast.NodeInterfaceDeclaration {
				events = append(events, "enter")
			}
			return nil
		},
		func(n *tsast.Node) error {
			if n.Kind == tsast.NodeInterfaceDeclaration {
				events = append(events, "leave")
			}
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, []string{"enter", "leave"}, events)
	assert.NoError(t, tsast.Walk(nil, nil))
}

func TestFindHelpers(t *testing.T) {
	t.Parallel()

	root := buildTestTree()

	props := tsast.FindByKind(root, tsast.NodePropertySignature)
	require.Len(t, props, 1)
	assert.NotNil(t, props[0].Ancestor(tsast.NodeExportStatement))
	assert.Nil(t, props[0].Ancestor(tsast.NodeObjectType))

	first := tsast.FindFirst(root, func(n *tsast.Node) bool { return n.Kind == tsast.NodeOther })
	require.NotNil(t, first)
	assert.Equal(t, 51, first.StartOffset)

	assert.Equal(t, 2, root.ChildCount())
	assert.Equal(t, "PropertySignature", tsast.NodePropertySignature.String())
}

func TestIsNamedExport(t *testing.T) {
	t.Parallel()

	named := tsast.NewNode(tsast.NodeExportStatement, 0, 10)
	assert.True(t, named.IsNamedExport())

	def := tsast.NewNode(tsast.NodeExportStatement, 0, 10)
	def.Attrs = &tsast.Attrs{Default: true}
	assert.False(t, def.IsNamedExport())

	star := tsast.NewNode(tsast.NodeExportStatement, 0, 10)
	star.Attrs = &tsast.Attrs{Wildcard: true}
	assert.False(t, star.IsNamedExport())

	assert.False(t, tsast.NewNode(tsast.NodeOther, 0, 1).IsNamedExport())
}
