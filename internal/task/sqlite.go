package task

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const createTable = `CREATE TABLE IF NOT EXISTS Task (
	title TEXT NOT NULL,
	priority INTEGER NOT NULL,
	modified_on TEXT NOT NULL
)`

// sqlitePersister addresses rows of the Task table by their rowid order.
type sqlitePersister struct {
	tracker
	db *sql.DB
}

func openSQLite(path string) (*sqlitePersister, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create Task table: %w", err)
	}
	s := &sqlitePersister{tracker: tracker{path: path}, db: db}
	if err := s.record(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *sqlitePersister) list() ([]Task, error) {
	rows, err := s.db.Query(`SELECT title, priority, modified_on FROM Task ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var (
			t          Task
			modifiedOn string
		)
		if err := rows.Scan(&t.Title, &t.Priority, &modifiedOn); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if t.ModifiedOn, err = ParseTime(modifiedOn); err != nil {
			return nil, &ValidationError{Path: fmt.Sprintf("Task[%d].modified_on", len(tasks)), Err: err}
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return tasks, nil
}

func (s *sqlitePersister) insert(t Task) (int, error) {
	if _, err := s.db.Exec(`INSERT INTO Task (title, priority, modified_on) VALUES (?, ?, ?)`,
		t.Title, t.Priority, FormatTime(t.ModifiedOn)); err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	n, err := s.count()
	if err != nil {
		return 0, err
	}
	return n - 1, s.record()
}

func (s *sqlitePersister) replace(index int, t Task) error {
	rowid, err := s.rowid(index)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`UPDATE Task SET title = ?, priority = ?, modified_on = ? WHERE rowid = ?`,
		t.Title, t.Priority, FormatTime(t.ModifiedOn), rowid); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return s.record()
}

func (s *sqlitePersister) remove(index int) error {
	rowid, err := s.rowid(index)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM Task WHERE rowid = ?`, rowid); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return s.record()
}

func (s *sqlitePersister) count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM Task`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func (s *sqlitePersister) rowid(index int) (int64, error) {
	n, err := s.count()
	if err != nil {
		return 0, err
	}
	if err := checkIndex(index, n); err != nil {
		return 0, err
	}
	var rowid int64
	if err := s.db.QueryRow(`SELECT rowid FROM Task ORDER BY rowid LIMIT 1 OFFSET ?`, index).Scan(&rowid); err != nil {
		return 0, fmt.Errorf("locate task %d: %w", index, err)
	}
	return rowid, nil
}

func (s *sqlitePersister) modified() (bool, error) { return s.changed() }

func (s *sqlitePersister) close() error {
	return s.db.Close()
}
