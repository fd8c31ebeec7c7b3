// Package domain holds the types the stow/unstow planner, the adopt/
// override primitives, and the action executor all share: the Plan/Action
// model, the FS and Logger ports, the error taxonomy, and a small Result[T]
// helper used internally by pattern-set compilation.
//
// Nothing in this package touches the filesystem or a CLI flag; concrete
// adapters live in internal/adapters, internal/config, and cmd/winstow.
package domain
