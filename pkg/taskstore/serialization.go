package taskstore

import (
	"errors"
	"fmt"
)

// ErrIncompleteRecord is returned when a task key exists but one or more of
// its fields are missing. The record is no longer well-formed.
var ErrIncompleteRecord = errors.New("incomplete task record")

// TaskToFields converts a task to the full ordered field list written on create.
func TaskToFields(t *Task) []Field {
	return []Field{
		{Name: FieldTitle, Value: t.Title},
		{Name: FieldAuthor, Value: t.Author},
		{Name: FieldDescription, Value: t.Description},
	}
}

// UpdateFields returns only the fields of t carrying a non-empty value.
// Empty fields are left untouched in the store, so a partial update only
// overwrites what the caller supplied.
func UpdateFields(t *Task) []Field {
	fields := make([]Field, 0, len(FieldNames))
	for _, f := range TaskToFields(t) {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// FieldsToTask rebuilds a task from the slots returned by a field read.
// Absent slots are dropped; anything other than exactly three remaining values
// is an ErrIncompleteRecord.
func FieldsToTask(id string, values []FieldValue) (*Task, error) {
	present := make([]string, 0, len(values))
	for _, v := range values {
		if v.Present {
			present = append(present, v.Value)
		}
	}

	if len(present) != len(FieldNames) {
		return nil, fmt.Errorf("%w: task '%s' has %d of %d fields", ErrIncompleteRecord, id, len(present), len(FieldNames))
	}

	return &Task{
		ID:          id,
		Title:       present[0],
		Author:      present[1],
		Description: present[2],
	}, nil
}

// IsIncompleteRecord reports whether err is a data-integrity failure.
func IsIncompleteRecord(err error) bool {
	return errors.Is(err, ErrIncompleteRecord)
}
