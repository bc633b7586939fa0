package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reactorctl/pkg/reactive"
	"github.com/vango-dev/reactorctl/pkg/reactivedebug"
)

func inspectCmd() *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a snapshot of the reactive node graph",
		Long: `inspect runs a small demo graph in-process (a counter signal, a parity
derived, and an effect reading it) and reports how many nodes and root
scopes the runtime has allocated so far.

With --tree it also draws the effect tree rooted at the demo scope.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			count := reactive.NewSignal(0)
			var root *reactive.Effect
			dispose := reactive.Root(func() {
				parity := reactive.NewDerived(func() string {
					if count.Get()%2 == 0 {
						return "even"
					}
					return "odd"
				})
				root = reactive.CreateEffect(func() reactive.Cleanup {
					_ = parity.Get()
					return nil
				})
			})
			defer dispose()

			count.Set(1)
			reactive.Flush()

			snap := reactivedebug.Capture()
			reactivedebug.RenderTable(os.Stdout, snap)

			if tree && root != nil {
				t, err := reactivedebug.RenderTree(root)
				if err != nil {
					return err
				}
				fmt.Println(t)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "also draw the demo effect tree")

	return cmd
}
