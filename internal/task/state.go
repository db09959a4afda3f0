package task

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"os"
	"time"
)

// fileState identifies one version of a backing file. The checksum catches
// writes that land within the filesystem timestamp resolution.
type fileState struct {
	modTime time.Time
	size    int64
	sum     [sha1.Size]byte
}

func (s fileState) equal(o fileState) bool {
	return s.modTime.Equal(o.modTime) && s.size == o.size && bytes.Equal(s.sum[:], o.sum[:])
}

func readState(path string) (fileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}, fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fileState{}, fmt.Errorf("read %s: %w", path, err)
	}
	return fileState{modTime: info.ModTime(), size: info.Size(), sum: sha1.Sum(data)}, nil
}

// tracker holds the state of a file as last written by its owner.
// Reads never update it, so a foreign write seen by a read is still
// reported by changed.
type tracker struct {
	path  string
	state fileState
}

func (t *tracker) record() error {
	s, err := readState(t.path)
	if err != nil {
		return err
	}
	t.state = s
	return nil
}

// changed reports a state different from the recorded one and records the
// new state, so one external write is reported once.
func (t *tracker) changed() (bool, error) {
	s, err := readState(t.path)
	if err != nil {
		return false, err
	}
	if s.equal(t.state) {
		return false, nil
	}
	t.state = s
	return true, nil
}
