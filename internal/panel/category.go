package panel

import (
	"github.com/prepnerdz/prepnerdz-api/internal/models"
)

// Category is the navigation key of a search panel, e.g. "midsem-papers".
type Category string

const (
	CategoryShivaniBooks Category = "shivani-books"
	CategoryMidsemPapers Category = "midsem-papers"
	CategoryEndsemPapers Category = "endsem-papers"
	CategoryImpQuestions Category = "imp-questions"
	CategoryImpTopics    Category = "imp-topics"
	CategoryBestNotes    Category = "best-notes"
	CategorySyllabus     Category = "syllabus"
	CategoryLabManual    Category = "labmanual"
)

// UnsupportedMessage is shown in place of a panel for unknown categories.
const UnsupportedMessage = "Its on the Way, Stay Tuned!"

// Branches lists the branch codes every category offers.
var Branches = []string{"CSE", "IOT", "AIML", "AIDS", "CSDS", "CSBS", "ME", "CE", "EX", "EE", "ECE"}

// Semesters lists the semester numbers every category offers.
var Semesters = []int{1, 2, 3, 4, 5, 6, 7, 8}

// Config is the display and query configuration of one category.
type Config struct {
	Key         Category
	Type        models.ResourceType
	Title       string
	Description string
	Placeholder string
	Branches    []string
	Semesters   []int
}

// Resolution is the outcome of Lookup: either Supported or Unsupported.
type Resolution interface {
	resolution()
}

// Supported carries the configuration of a known category.
type Supported struct {
	Config Config
}

// Unsupported marks a category key with no panel yet.
type Unsupported struct {
	Key string
}

func (Supported) resolution()   {}
func (Unsupported) resolution() {}

var categories = []Config{
	{Key: CategoryShivaniBooks, Type: models.ResourceShivaniBooks, Title: "Search Shivani Books", Description: "Find books by branch and semester", Placeholder: "Search for books..."},
	{Key: CategoryMidsemPapers, Type: models.ResourceMidSemPaper, Title: "Search Midsem Papers", Description: "Find previous midsem papers by branch and semester", Placeholder: "Search for midsem papers..."},
	{Key: CategoryEndsemPapers, Type: models.ResourceEndSemPaper, Title: "Search Endsem Papers", Description: "Find previous endsem papers by branch and semester", Placeholder: "Search for endsem papers..."},
	{Key: CategoryImpQuestions, Type: models.ResourceImpQuestion, Title: "Search Important Questions", Description: "Find important questions by branch and semester, subjects, units!", Placeholder: "Search for important questions..."},
	{Key: CategoryImpTopics, Type: models.ResourceImpTopic, Title: "Search Important Topics", Description: "Find important topics by branch and semester, subjects, units!", Placeholder: "Search for important topics..."},
	{Key: CategoryBestNotes, Type: models.ResourceNotes, Title: "Search Best Academic Notes", Description: "Find best notes by subjects, units!", Placeholder: "Search for notes..."},
	{Key: CategorySyllabus, Type: models.ResourceSyllabus, Title: "Search Syllabus", Description: "Find Branch Syllabus", Placeholder: "Search for Syllabus..."},
	{Key: CategoryLabManual, Type: models.ResourceLabManual, Title: "Search Lab Manuals", Description: "Find LabManuals and reading by subjects, units!", Placeholder: "Search for labmanuals and its readings..."},
}

// Lookup resolves a category key. Unknown keys resolve to Unsupported.
func Lookup(key string) Resolution {
	for _, cfg := range categories {
		if string(cfg.Key) == key {
			return Supported{Config: withFacets(cfg)}
		}
	}
	return Unsupported{Key: key}
}

// Categories returns every supported category in navigation order.
func Categories() []Config {
	out := make([]Config, 0, len(categories))
	for _, cfg := range categories {
		out = append(out, withFacets(cfg))
	}
	return out
}

// withFacets attaches fresh copies of the shared facet lists.
func withFacets(cfg Config) Config {
	cfg.Branches = append([]string(nil), Branches...)
	cfg.Semesters = append([]int(nil), Semesters...)
	return cfg
}
