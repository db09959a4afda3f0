// Package task stores tasks and notifies observers of every change.
//
// A task has a title, a priority and a modification time:
//
//	{
//	  "title": "Write the report",
//	  "priority": 2,
//	  "modified_on": "2024-05-01 09:30:00.000000"
//	}
//
// # Backends
//
// The same Store interface is served by several backends:
//
//   - memory: an in-process slice, nothing is persisted
//   - json: an indented array of task objects
//   - csv: a header row "title,priority,modified_on" then one row per task
//   - xml: a <Tasks> root with one <Task> element per task, every field
//     carrying a type attribute
//   - toml: one [[task]] table per task
//   - yaml: a sequence of task mappings
//   - sqlite: a Task table addressed in rowid order
//
// File backends re-read the file before every operation, so several
// programs can share one file. At open and after each of its own writes a
// store records the file modification time, size and checksum. CheckExternal
// compares them with the current ones to detect writes made by someone
// else, including writes already seen by a Read.
//
// # Priority Range
//
//   - 1: Highest priority
//   - 5: Lowest priority
//
// # Notifications
//
// Every successful Create, Update and Delete notifies the store observers
// with a Change payload. CheckExternal notifies with OpExternal when the
// backing file was modified by another writer.
package task
