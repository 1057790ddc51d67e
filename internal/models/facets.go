package models

// Facet vocabularies shown as filter chips and submission checkboxes.
// Posting departments/levels are drawn from these lists but deliberately not
// validated against them.

var Departments = []string{
	"Mathematics",
	"Statistics",
	"Computer Science",
	"Information Technology",
	"Physics",
	"Chemistry",
	"Biology",
	"Engineering",
	"Economics",
	"Management",
}

var Levels = []string{
	"Assistant Professor",
	"Associate Professor",
	"Professor",
	"Lecturer",
	"Research Scientist",
	"Postdoc",
}
