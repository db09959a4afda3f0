package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nibzard/taskmanager-go/internal/appdir"
	"github.com/nibzard/taskmanager-go/internal/config"
	"github.com/nibzard/taskmanager-go/internal/task"
)

// numberedTask is a task with its 1-based position in the store.
type numberedTask struct {
	Number int
	task.Task
}

// lsCommand lists tasks.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskmanager ls", flag.ContinueOnError)
	sortBy := fs.String("sort", "index", "Order by: index, priority, title or modified")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	store, err := openStore(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	tasks, err := store.Read()
	if err != nil {
		return err
	}
	numbered := make([]numberedTask, len(tasks))
	for i, t := range tasks {
		numbered[i] = numberedTask{Number: i + 1, Task: t}
	}
	if err := sortTasks(numbered, *sortBy); err != nil {
		return err
	}

	if len(numbered) == 0 {
		fmt.Println("No tasks.")
		return nil
	}
	printTaskList(numbered)
	return nil
}

// sortTasks orders tasks in place. Ties keep store order.
func sortTasks(tasks []numberedTask, by string) error {
	var less func(a, b numberedTask) bool
	switch by {
	case "", "index":
		return nil
	case "priority":
		less = func(a, b numberedTask) bool { return a.Priority < b.Priority }
	case "title":
		less = func(a, b numberedTask) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case "modified":
		less = func(a, b numberedTask) bool { return a.ModifiedOn.After(b.ModifiedOn) }
	default:
		return fmt.Errorf("invalid sort key %q (want index, priority, title or modified)", by)
	}
	sort.SliceStable(tasks, func(i, j int) bool { return less(tasks[i], tasks[j]) })
	return nil
}

func printTaskList(tasks []numberedTask) {
	width := len("Title")
	for _, t := range tasks {
		width = max(width, len(t.Title))
	}
	fmt.Printf("%4s  %-*s  %-8s  %s\n", "#", width, "Title", "Priority", "Modified")
	for _, t := range tasks {
		fmt.Printf("%4d  %-*s  %-8d  %s\n", t.Number, width, t.Title, t.Priority, task.FormatTime(t.ModifiedOn))
	}
}

// addCommand appends a task.
func addCommand(cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: taskmanager add <title> [priority]")
	}
	priority := task.MaxPriority
	if len(args) == 2 {
		p, err := parsePriority(args[1])
		if err != nil {
			return err
		}
		priority = p
	}

	store, err := openStore(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Create(args[0], priority); err != nil {
		return err
	}
	fmt.Printf("Added %q (priority %d)\n", args[0], priority)
	return nil
}

// updateCommand replaces the title and priority of a task.
func updateCommand(cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: taskmanager update <number> <title> <priority>")
	}
	index, err := parseNumber(args[0])
	if err != nil {
		return err
	}
	priority, err := parsePriority(args[2])
	if err != nil {
		return err
	}

	store, err := openStore(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Update(index, args[1], priority); err != nil {
		return err
	}
	fmt.Printf("Updated task %d\n", index+1)
	return nil
}

// deleteCommand removes a task.
func deleteCommand(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: taskmanager delete <number>")
	}
	index, err := parseNumber(args[0])
	if err != nil {
		return err
	}

	store, err := openStore(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(index); err != nil {
		return err
	}
	fmt.Printf("Deleted task %d\n", index+1)
	return nil
}

// parseNumber converts a 1-based task number to a store index.
func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid task number %q", s)
	}
	return n - 1, nil
}

func parsePriority(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &task.ValidationError{Path: "priority", Err: fmt.Errorf("not a number: %q", s)}
	}
	return p, nil
}

// initCommand creates the data file, the JSON Schema and the config file.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskmanager init", flag.ContinueOnError)
	force := fs.Bool("force", false, "Overwrite existing files")
	skipConfig := fs.Bool("skip-config", false, "Do not write the config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	root := cfg.ProjectRoot
	if root == "" {
		root = "."
	}
	if err := appdir.Ensure(root); err != nil {
		return err
	}

	if cfg.DataFile != "" {
		if *force {
			if err := os.Remove(cfg.DataFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove %s: %w", cfg.DataFile, err)
			}
		}
		if _, err := os.Stat(cfg.DataFile); err == nil {
			fmt.Printf("Skipped %s (exists)\n", cfg.DataFile)
		} else {
			store, err := openStore(cfg, newLogger(cfg))
			if err != nil {
				return err
			}
			if err := store.Close(); err != nil {
				return err
			}
			fmt.Printf("Created %s\n", cfg.DataFile)
		}
	}

	schemaPath := cfg.SchemaFile
	if schemaPath == "" {
		schemaPath = appdir.SchemaPath(root)
	}
	if err := writeFile(schemaPath, task.SchemaJSON, *force); err != nil {
		return err
	}

	if !*skipConfig {
		if err := writeFile(appdir.ConfigPath(root), []byte(config.ExampleConfig()), *force); err != nil {
			return err
		}
	}
	return nil
}

// writeFile writes data to path unless it exists and force is false.
func writeFile(path string, data []byte, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Printf("Skipped %s (exists)\n", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("Created %s\n", path)
	return nil
}
