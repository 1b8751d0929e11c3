// Package model defines the data structures for main-file resolution.
package model

// Role classifies a file by its name suffix and containing directory.
type Role string

const (
	// RolePlain represents a file with no recognized suffix.
	RolePlain Role = "plain"
	// RoleTest represents a *_test file under the test root.
	RoleTest Role = "test"
	// RoleMock represents a *_mock file under the mock root.
	RoleMock Role = "mock"
	// RoleImpl represents a *_impl file under the source root.
	RoleImpl Role = "impl"
)

// Resolution is the outcome of resolving a single input file.
type Resolution struct {
	Input Path
	Role  Role

	// Main is the resolved counterpart file, empty when nothing matched.
	// An empty Main is a valid outcome, not an error.
	Main Path
}

// Found reports whether a main file was resolved.
func (r Resolution) Found() bool {
	return r.Main != ""
}
