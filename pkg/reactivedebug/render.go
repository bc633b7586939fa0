package reactivedebug

import (
	"fmt"
	"io"
	"strconv"

	"github.com/m1gwings/treedrawer/tree"
	"github.com/olekukonko/tablewriter"

	"github.com/vango-dev/reactorctl/pkg/reactive"
)

// RenderTable writes a summary table of the graph's node counts to w, in the
// shape `reactorctl inspect` prints to a terminal.
func RenderTable(w io.Writer, snap Snapshot) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Total nodes", strconv.Itoa(snap.TotalNodes)})
	table.Append([]string{"Root scopes", strconv.Itoa(snap.RootScopes)})
	table.Render()
}

// RenderTree draws the effect tree rooted at root, labeling each node with
// its short display hash and dependency count, in the shape
// `reactorctl inspect --tree` prints.
func RenderTree(root *reactive.Effect) (*tree.Tree, error) {
	t := tree.NewTree(tree.NodeString(effectLabel(root)))
	if err := addChildren(t, root); err != nil {
		return nil, err
	}
	return t, nil
}

func addChildren(parent *tree.Tree, e *reactive.Effect) error {
	for _, child := range e.Children() {
		branch := parent.AddChild(tree.NodeString(effectLabel(child)))
		if err := addChildren(branch, child); err != nil {
			return err
		}
	}
	return nil
}

func effectLabel(e *reactive.Effect) string {
	state := "live"
	if e.Disposed() {
		state = "disposed"
	}
	return fmt.Sprintf("effect %s (%d deps, %s)", ShortHash(e.ID()), e.DepCount(), state)
}
