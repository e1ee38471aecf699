package domain

// SectionView is a section together with the tasks displayed under it.
type SectionView struct {
	Section
	Tasks []Task `json:"tasks"`
}

// BoardView is the read projection served to consumers: sections in creation
// order, each carrying its tasks in most-recent-first order.
type BoardView struct {
	Sections []SectionView `json:"sections"`
}
