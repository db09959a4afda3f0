package task

import (
	"fmt"
)

// record is the text form of a Task shared by the json, toml and yaml codecs.
type record struct {
	Title      string `json:"title" toml:"title" yaml:"title"`
	Priority   int    `json:"priority" toml:"priority" yaml:"priority"`
	ModifiedOn string `json:"modified_on" toml:"modified_on" yaml:"modified_on"`
}

func toRecords(tasks []Task) []record {
	records := make([]record, len(tasks))
	for i, t := range tasks {
		records[i] = record{
			Title:      t.Title,
			Priority:   t.Priority,
			ModifiedOn: FormatTime(t.ModifiedOn),
		}
	}
	return records
}

func fromRecords(records []record) ([]Task, error) {
	tasks := make([]Task, len(records))
	for i, r := range records {
		modifiedOn, err := ParseTime(r.ModifiedOn)
		if err != nil {
			return nil, &ValidationError{Path: fmt.Sprintf("[%d].modified_on", i), Err: err}
		}
		tasks[i] = Task{Title: r.Title, Priority: r.Priority, ModifiedOn: modifiedOn}
	}
	return tasks, nil
}
