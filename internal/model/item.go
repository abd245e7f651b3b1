package model

// Item is the domain model for a todo entry.
// ID and Text are set once at creation; a toggle produces a new Item.
type Item struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Toggled returns a copy of the item with Completed flipped.
func (it *Item) Toggled() *Item {
	cp := *it
	cp.Completed = !cp.Completed
	return &cp
}
