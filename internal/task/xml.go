package task

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

type xmlTasks struct {
	XMLName xml.Name  `xml:"Tasks"`
	Tasks   []xmlTask `xml:"Task"`
}

type xmlTask struct {
	Title      xmlField `xml:"title"`
	Priority   xmlField `xml:"priority"`
	ModifiedOn xmlField `xml:"modified_on"`
}

// xmlField stores a value as element text with its type in an attribute.
type xmlField struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type xmlCodec struct{}

func (xmlCodec) decode(data []byte) ([]Task, error) {
	var doc xmlTasks
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	records := make([]record, len(doc.Tasks))
	for i, t := range doc.Tasks {
		priority, err := strconv.Atoi(t.Priority.Value)
		if err != nil {
			return nil, &ValidationError{Path: fmt.Sprintf("Task[%d].priority", i), Err: err}
		}
		records[i] = record{Title: t.Title.Value, Priority: priority, ModifiedOn: t.ModifiedOn.Value}
	}
	return fromRecords(records)
}

func (xmlCodec) encode(tasks []Task) ([]byte, error) {
	doc := xmlTasks{Tasks: make([]xmlTask, 0, len(tasks))}
	for _, r := range toRecords(tasks) {
		doc.Tasks = append(doc.Tasks, xmlTask{
			Title:      xmlField{Type: "str", Value: r.Title},
			Priority:   xmlField{Type: "int", Value: strconv.Itoa(r.Priority)},
			ModifiedOn: xmlField{Type: "datetime", Value: r.ModifiedOn},
		})
	}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	out := append([]byte(xml.Header), data...)
	return append(out, '\n'), nil
}
