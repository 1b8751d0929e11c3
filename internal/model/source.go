package model

// Path represents a file system path.
type Path string

// Layout describes the three project roots the resolver works against.
// TestRoot and MockRoot mirror SourceRoot's relative structure under the
// Reflection segment. The value is fixed for the lifetime of a run.
type Layout struct {
	SourceRoot Path
	TestRoot   Path
	MockRoot   Path

	// Reflection is the shared path component used when rewriting a
	// test/mock directory into its source-root equivalent. May be empty
	// when the mirrored trees carry no extra segment.
	Reflection string
}
