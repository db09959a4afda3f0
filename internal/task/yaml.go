package task

import (
	"gopkg.in/yaml.v3"
)

type yamlCodec struct{}

func (yamlCodec) decode(data []byte) ([]Task, error) {
	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return fromRecords(records)
}

func (yamlCodec) encode(tasks []Task) ([]byte, error) {
	return yaml.Marshal(toRecords(tasks))
}
