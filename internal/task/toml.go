package task

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

type tomlFile struct {
	Tasks []record `toml:"task"`
}

// tomlCodec stores one [[task]] table per task.
type tomlCodec struct{}

func (tomlCodec) decode(data []byte) ([]Task, error) {
	var f tomlFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, err
	}
	return fromRecords(f.Tasks)
}

func (tomlCodec) encode(tasks []Task) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tomlFile{Tasks: toRecords(tasks)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
