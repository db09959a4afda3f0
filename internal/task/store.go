package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmanager-go/internal/observable"
)

// Store is a CRUD collection of tasks addressed by index.
type Store interface {
	// Create appends a task stamped with the current time.
	Create(title string, priority int) error
	// Read returns every stored task in order.
	Read() ([]Task, error)
	// Update replaces the task at index and restamps it.
	Update(index int, title string, priority int) error
	// Delete removes the task at index.
	Delete(index int) error
	// CheckExternal reports whether another writer modified the backing
	// storage since the last own access, notifying observers if so.
	CheckExternal() (bool, error)
	// Path returns the backing file, or "" for the memory backend.
	Path() string

	AddObserver(o observable.Observer)
	RemoveObserver(o observable.Observer)

	Close() error
}

// Backend selects the storage format of a Store.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendJSON   Backend = "json"
	BackendCSV    Backend = "csv"
	BackendXML    Backend = "xml"
	BackendTOML   Backend = "toml"
	BackendYAML   Backend = "yaml"
	BackendSQLite Backend = "sqlite"
)

// Backends lists every supported backend.
func Backends() []Backend {
	return []Backend{BackendMemory, BackendJSON, BackendCSV, BackendXML, BackendTOML, BackendYAML, BackendSQLite}
}

// ParseBackend parses a backend name, case-insensitively.
func ParseBackend(s string) (Backend, error) {
	name := Backend(strings.ToLower(strings.TrimSpace(s)))
	if name == "sqlite3" {
		return BackendSQLite, nil
	}
	for _, b := range Backends() {
		if b == name {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown backend %q", s)
}

// Extension returns the file extension used by the backend, without dot.
func (b Backend) Extension() string {
	switch b {
	case BackendMemory:
		return ""
	case BackendSQLite:
		return "sqlite3"
	default:
		return string(b)
	}
}

// FileName returns the default data file name of the backend.
func (b Backend) FileName() string {
	if b == BackendMemory {
		return ""
	}
	return "tasks." + b.Extension()
}

// Option configures Open.
type Option func(*options)

type options struct {
	logger         *log.Logger
	now            func() time.Time
	validateSchema bool
	schemaFile     string
	initial        []Task
}

// WithLogger sets the logger for store operations and observer faults.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock sets the time source used to stamp ModifiedOn.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSchemaValidation validates JSON files against a JSON Schema on every
// read. An empty schemaFile selects the built-in schema.
func WithSchemaValidation(schemaFile string) Option {
	return func(o *options) {
		o.validateSchema = true
		o.schemaFile = schemaFile
	}
}

// WithTasks seeds the memory backend.
func WithTasks(tasks []Task) Option {
	return func(o *options) { o.initial = append([]Task(nil), tasks...) }
}

// Open opens a store of the given backend at path.
// A missing file is created empty. path is ignored by the memory backend.
func Open(backend Backend, path string, opts ...Option) (Store, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}

	if backend != BackendMemory && path == "" {
		return nil, fmt.Errorf("open %s store: missing data file", backend)
	}

	var (
		p   persister
		err error
	)
	switch backend {
	case BackendMemory:
		p = &memoryPersister{tasks: o.initial}
	case BackendJSON:
		var c codec = jsonCodec{}
		if o.validateSchema {
			c, err = newSchemaCodec(o.schemaFile)
			if err != nil {
				return nil, err
			}
		}
		p, err = openFile(path, c)
	case BackendCSV:
		p, err = openFile(path, csvCodec{})
	case BackendXML:
		p, err = openFile(path, xmlCodec{})
	case BackendTOML:
		p, err = openFile(path, tomlCodec{})
	case BackendYAML:
		p, err = openFile(path, yamlCodec{})
	case BackendSQLite:
		p, err = openSQLite(path)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
	if err != nil {
		return nil, err
	}

	s := &store{
		backend: backend,
		path:    path,
		p:       p,
		now:     o.now,
		logger:  o.logger.WithPrefix("task"),
	}
	s.SetLogger(o.logger)
	return s, nil
}

// persister is the storage half of a store. Indexes are validated by the
// persister against its own fresh read.
type persister interface {
	list() ([]Task, error)
	insert(t Task) (int, error)
	replace(index int, t Task) error
	remove(index int) error
	modified() (bool, error)
	close() error
}

type store struct {
	observable.Observable

	backend Backend
	path    string
	p       persister
	now     func() time.Time
	logger  *log.Logger
	closed  bool
}

func (s *store) stamp(title string, priority int) Task {
	return Task{
		Title:      title,
		Priority:   priority,
		ModifiedOn: s.now().Truncate(time.Microsecond),
	}
}

func (s *store) Create(title string, priority int) error {
	if err := Validate(title, priority); err != nil {
		return err
	}
	index, err := s.p.insert(s.stamp(title, priority))
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	s.logger.Debug("task created", "index", index, "title", title, "priority", priority)
	s.NotifyObservers(Change{Op: OpCreate, Index: index})
	return nil
}

func (s *store) Read() ([]Task, error) {
	tasks, err := s.p.list()
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	return tasks, nil
}

func (s *store) Update(index int, title string, priority int) error {
	if err := Validate(title, priority); err != nil {
		return err
	}
	if err := s.p.replace(index, s.stamp(title, priority)); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	s.logger.Debug("task updated", "index", index, "title", title, "priority", priority)
	s.NotifyObservers(Change{Op: OpUpdate, Index: index})
	return nil
}

func (s *store) Delete(index int) error {
	if err := s.p.remove(index); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	s.logger.Debug("task deleted", "index", index)
	s.NotifyObservers(Change{Op: OpDelete, Index: index})
	return nil
}

func (s *store) CheckExternal() (bool, error) {
	changed, err := s.p.modified()
	if err != nil {
		return false, fmt.Errorf("check %s: %w", s.path, err)
	}
	if changed {
		s.logger.Info("data file modified externally", "path", s.path)
		s.NotifyObservers(Change{Op: OpExternal, Index: -1})
	}
	return changed, nil
}

func (s *store) Path() string {
	return s.path
}

func (s *store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.p.close(); err != nil {
		return fmt.Errorf("close %s store: %w", s.backend, err)
	}
	return nil
}

type memoryPersister struct {
	tasks []Task
}

func (m *memoryPersister) list() ([]Task, error) {
	return append([]Task(nil), m.tasks...), nil
}

func (m *memoryPersister) insert(t Task) (int, error) {
	m.tasks = append(m.tasks, t)
	return len(m.tasks) - 1, nil
}

func (m *memoryPersister) replace(index int, t Task) error {
	if err := checkIndex(index, len(m.tasks)); err != nil {
		return err
	}
	m.tasks[index] = t
	return nil
}

func (m *memoryPersister) remove(index int) error {
	if err := checkIndex(index, len(m.tasks)); err != nil {
		return err
	}
	m.tasks = append(m.tasks[:index], m.tasks[index+1:]...)
	return nil
}

func (m *memoryPersister) modified() (bool, error) { return false, nil }

func (m *memoryPersister) close() error { return nil }
