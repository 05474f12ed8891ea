package panel

import "strings"

const (
	// CommonBranch is the branch code shared by early-semester curricula.
	CommonBranch = "COMMON"
	// SharedSemester is the semester code of the shared first year.
	SharedSemester = "0"
)

// Selection is the user's search input. Branch is a branch code and
// Semester a string-encoded semester number.
type Selection struct {
	Query    string
	Branch   string
	Semester string
}

// Valid reports whether the selection is complete enough to search.
func (s Selection) Valid() bool {
	return strings.TrimSpace(s.Query) != "" && s.Branch != "" && s.Semester != ""
}

// Resolve applies the shared-curriculum rule and returns the branch and
// semester codes to look up. Semesters 1, 2 and 4 use the common branch;
// semesters 1 and 2 use the shared semester.
func (s Selection) Resolve() (branch, semester string) {
	branch, semester = s.Branch, s.Semester
	switch s.Semester {
	case "1", "2":
		return CommonBranch, SharedSemester
	case "4":
		return CommonBranch, semester
	}
	return branch, semester
}

// FilterState holds the inputs being edited. It is not safe for concurrent
// use; Panel guards it.
type FilterState struct {
	sel Selection
}

// SetQuery sets the free-text query.
func (f *FilterState) SetQuery(q string) { f.sel.Query = q }

// SetBranch sets the branch code.
func (f *FilterState) SetBranch(b string) { f.sel.Branch = b }

// SetSemester sets the semester number.
func (f *FilterState) SetSemester(s string) { f.sel.Semester = s }

// Selection returns the current inputs.
func (f *FilterState) Selection() Selection { return f.sel }

// Valid reports whether the current inputs can be searched.
func (f *FilterState) Valid() bool { return f.sel.Valid() }

// Reset clears every input.
func (f *FilterState) Reset() { f.sel = Selection{} }
