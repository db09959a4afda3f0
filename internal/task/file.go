package task

import (
	"bytes"
	"errors"
	"fmt"
	"os"
)

// codec converts between tasks and a file format.
type codec interface {
	decode(data []byte) ([]Task, error)
	encode(tasks []Task) ([]byte, error)
}

// filePersister keeps tasks in a single file, re-read before every operation.
type filePersister struct {
	tracker
	codec codec
}

func openFile(path string, c codec) (*filePersister, error) {
	f := &filePersister{tracker: tracker{path: path}, codec: c}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := f.save(nil); err != nil {
			return nil, err
		}
		return f, nil
	} else if err != nil {
		return nil, fmt.Errorf("stat data file: %w", err)
	}
	if _, err := f.load(); err != nil {
		return nil, err
	}
	if err := f.record(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *filePersister) load() ([]Task, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	var tasks []Task
	if len(bytes.TrimSpace(data)) > 0 {
		tasks, err = f.codec.decode(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.path, err)
		}
	}
	return tasks, nil
}

func (f *filePersister) save(tasks []Task) error {
	data, err := f.codec.encode(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return f.record()
}

func (f *filePersister) list() ([]Task, error) {
	return f.load()
}

func (f *filePersister) insert(t Task) (int, error) {
	tasks, err := f.load()
	if err != nil {
		return 0, err
	}
	tasks = append(tasks, t)
	if err := f.save(tasks); err != nil {
		return 0, err
	}
	return len(tasks) - 1, nil
}

func (f *filePersister) replace(index int, t Task) error {
	tasks, err := f.load()
	if err != nil {
		return err
	}
	if err := checkIndex(index, len(tasks)); err != nil {
		return err
	}
	tasks[index] = t
	return f.save(tasks)
}

func (f *filePersister) remove(index int) error {
	tasks, err := f.load()
	if err != nil {
		return err
	}
	if err := checkIndex(index, len(tasks)); err != nil {
		return err
	}
	tasks = append(tasks[:index], tasks[index+1:]...)
	return f.save(tasks)
}

func (f *filePersister) modified() (bool, error) { return f.changed() }

func (f *filePersister) close() error { return nil }
