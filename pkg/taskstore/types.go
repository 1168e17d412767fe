package taskstore

import "fmt"

// Task is a record identified by a caller-chosen id.
// The id is the store key and the uniqueness boundary; the remaining fields
// are free-form strings and may be empty.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// Validate checks the fields a stored task must carry.
// Only the id is constrained; empty titles, authors and descriptions are
// stored as literal values.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id is required")
	}
	return nil
}

// Field is one name/value pair of a task hash.
type Field struct {
	Name  string
	Value string
}

// FieldValue is one slot of a field read.
// Present is false when the store reported no value for the field.
type FieldValue struct {
	Name    string
	Value   string
	Present bool
}

// Hash field names, in the order they are written and read.
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldDescription = "description"
)

// FieldNames lists every task field in canonical order.
var FieldNames = []string{FieldTitle, FieldAuthor, FieldDescription}
