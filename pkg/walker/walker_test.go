package walker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
	"github.com/Sumatoshi-tech/lintfang/pkg/walker"
)

// buildTree constructs:
//
//	Program
//	├── FunctionDeclaration (name: Identifier "f", body: Block)
//	│                                              └── ReturnStatement
//	└── ExpressionStatement
func buildTree() *tree.Node {
	ret := tree.NewNode("ReturnStatement")

	block := tree.NewNode("Block")
	block.SetField("statements", []*tree.Node{ret})

	name := tree.NewBuilder("Identifier").WithToken("f").Build()

	fn := tree.NewNode("FunctionDeclaration")
	fn.SetField("name", name)
	fn.SetField("body", block)

	expr := tree.NewNode("ExpressionStatement")

	root := tree.NewNode(tree.Program)
	root.SetField("body", []*tree.Node{fn, expr})

	return root
}

func TestWalker_EnterLeaveOrder(t *testing.T) {
	t.Parallel()

	var events []string

	w := walker.New(nil,
		func(node, _ *tree.Node) { events = append(events, "enter:"+node.Type) },
		func(node, _ *tree.Node) { events = append(events, "leave:"+node.Type) },
	)
	w.Traverse(buildTree())

	assert.Equal(t, []string{
		"enter:Program",
		"enter:FunctionDeclaration",
		"enter:Identifier",
		"leave:Identifier",
		"enter:Block",
		"enter:ReturnStatement",
		"leave:ReturnStatement",
		"leave:Block",
		"leave:FunctionDeclaration",
		"enter:ExpressionStatement",
		"leave:ExpressionStatement",
		"leave:Program",
	}, events)
}

func TestWalker_ParentArgument(t *testing.T) {
	t.Parallel()

	parents := map[string]string{}

	w := walker.New(nil, func(node, parent *tree.Node) {
		if parent == nil {
			parents[node.Type] = "<nil>"
		} else {
			parents[node.Type] = parent.Type
		}
	}, nil)
	w.Traverse(buildTree())

	assert.Equal(t, "<nil>", parents[tree.Program])
	assert.Equal(t, tree.Program, parents["FunctionDeclaration"])
	assert.Equal(t, "FunctionDeclaration", parents["Block"])
	assert.Equal(t, "Block", parents["ReturnStatement"])
}

func TestWalker_KeyMapRestrictsTraversal(t *testing.T) {
	t.Parallel()

	// Only the body field of FunctionDeclaration is traversable, so the
	// Identifier under name is never visited.
	keys := tree.KeyMap{"FunctionDeclaration": {"body"}}

	var visited []string

	w := walker.New(keys, func(node, _ *tree.Node) { visited = append(visited, node.Type) }, nil)
	w.Traverse(buildTree())

	assert.NotContains(t, visited, "Identifier")
	assert.Contains(t, visited, "ReturnStatement")
}

func TestWalker_SkipSuppressesChildrenNotLeave(t *testing.T) {
	t.Parallel()

	var events []string

	var w *walker.Walker

	w = walker.New(nil,
		func(node, _ *tree.Node) {
			events = append(events, "enter:"+node.Type)

			if node.Type == "FunctionDeclaration" {
				w.Skip()
			}
		},
		func(node, _ *tree.Node) { events = append(events, "leave:"+node.Type) },
	)
	w.Traverse(buildTree())

	assert.Equal(t, []string{
		"enter:Program",
		"enter:FunctionDeclaration",
		"leave:FunctionDeclaration",
		"enter:ExpressionStatement",
		"leave:ExpressionStatement",
		"leave:Program",
	}, events)
}

func TestWalker_BreakAbortsIncludingAncestorLeaves(t *testing.T) {
	t.Parallel()

	var events []string

	var w *walker.Walker

	w = walker.New(nil,
		func(node, _ *tree.Node) {
			events = append(events, "enter:"+node.Type)

			if node.Type == "ReturnStatement" {
				w.Break()
			}
		},
		func(node, _ *tree.Node) { events = append(events, "leave:"+node.Type) },
	)
	w.Traverse(buildTree())

	assert.Equal(t, []string{
		"enter:Program",
		"enter:FunctionDeclaration",
		"enter:Identifier",
		"leave:Identifier",
		"enter:Block",
		"enter:ReturnStatement",
	}, events)
}

func TestWalker_ParentsSnapshot(t *testing.T) {
	t.Parallel()

	var snapshot []*tree.Node

	var w *walker.Walker

	w = walker.New(nil, func(node, _ *tree.Node) {
		if node.Type == "ReturnStatement" {
			snapshot = w.Parents()
			// Mutating the snapshot must not disturb the walk.
			snapshot[0] = nil
		}
	}, nil)
	w.Traverse(buildTree())

	require.Len(t, snapshot, 3)
}

func TestWalker_ReusableAcrossTraversals(t *testing.T) {
	t.Parallel()

	count := 0

	var w *walker.Walker

	w = walker.New(nil, func(node, _ *tree.Node) {
		count++

		if node.Type == "Block" {
			w.Break()
		}
	}, nil)

	root := buildTree()
	w.Traverse(root)

	first := count

	// The broken flag resets, so a second walk covers the same prefix again.
	w.Traverse(root)
	assert.Equal(t, first*2, count)
}
