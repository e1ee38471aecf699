package domain

// DefaultSectionID identifies the permanent default section. It exists from
// store initialization onward and is never a valid deletion target.
const DefaultSectionID = "inbox"

// Section represents an organizational bucket that tasks are assigned to.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
