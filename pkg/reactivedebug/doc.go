// Package reactivedebug provides read-only introspection over pkg/reactive:
// node counts and effect-tree rendering for the CLI's "inspect" command.
// Kept separate from pkg/reactive so the runtime
// itself never imports a pretty-printing or tree-drawing library.
package reactivedebug
