package fenvm

// Options control evaluation. Every closure carries the options of the
// activation that defined it, copied at definition time, so a closure keeps
// behaving the way its definition site did no matter where it is called
// from later.
type Options struct {
	// Strict makes reading an undeclared or out-of-scope variable an error
	// instead of nil.
	Strict bool
	// Lexical gives blocks their own declaration scope: redeclaring a name
	// visible in an enclosing block fails, and declarations vanish when the
	// block is left.
	Lexical bool
	// MaxDepth caps call nesting. Zero means no cap.
	MaxDepth int
	// MaxSteps caps the number of nodes one evaluation may visit. Zero
	// means no cap.
	MaxSteps int
}

// Snapshot returns a copy to attach to a closure. Options hold no reference
// types, so the value copy is the snapshot.
func (o Options) Snapshot() Options {
	return o
}
