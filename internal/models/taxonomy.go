package models

// Branch is an engineering branch such as CSE or ME. The COMMON branch holds
// the curricula shared by every branch in the early semesters.
type Branch struct {
	ID         string `db:"id" json:"id"`
	BranchName string `db:"branch_name" json:"branchName"`
}

// Semester belongs to a branch. Semester number 0 is the shared first-year
// semester under the COMMON branch.
type Semester struct {
	ID        string  `db:"id" json:"id"`
	SemNumber int     `db:"sem_number" json:"semNumber"`
	BranchID  string  `db:"branch_id" json:"branchId"`
	Branch    *Branch `db:"-" json:"branch,omitempty"`
}

// Subject belongs to a semester.
type Subject struct {
	ID          string    `db:"id" json:"id"`
	SubjectName string    `db:"subject_name" json:"subjectName"`
	SubjectCode string    `db:"subject_code" json:"subjectCode"`
	SemesterID  string    `db:"semester_id" json:"semesterId"`
	Semester    *Semester `db:"-" json:"semester,omitempty"`
}

// BranchIDResponse is the payload of the branch id lookup.
type BranchIDResponse struct {
	BranchID string `json:"branchId"`
}

// SemesterIDResponse is the payload of the semester id lookup.
type SemesterIDResponse struct {
	SemesterID string `json:"semesterId"`
}
