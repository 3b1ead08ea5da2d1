// Package manifest reads and writes the list of managed entries kept at the
// top of the store.
//
// The file is a YAML sequence of {path: <relative>} mappings. Duplicates are
// tolerated on disk; Unique returns them collapsed in first-seen order.
package manifest

import (
	"path/filepath"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the manifest file name inside the store
const DefaultFile = "dotty.yaml"

// Entry is one managed path, relative to the root
type Entry struct {
	Path string `yaml:"path"`
}

// Manifest is the in-memory view of the manifest file
type Manifest struct {
	fs      afero.Fs
	store   string
	file    string
	entries []Entry
}

func newManifest(fs afero.Fs, store, file string) *Manifest {
	if file == "" {
		file = DefaultFile
	}
	return &Manifest{fs: fs, store: store, file: file}
}

// Exists reports whether a manifest file is present in store
func Exists(fs afero.Fs, store, file string) bool {
	m := newManifest(fs, store, file)
	ok, err := afero.Exists(fs, m.Path())
	return err == nil && ok
}

// Read loads the manifest from store
func Read(fs afero.Fs, store, file string) (*Manifest, error) {
	m := newManifest(fs, store, file)

	data, err := afero.ReadFile(fs, m.Path())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "failed to open config file %s", m.Path())
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "failed to deserialize config file %s", m.Path())
	}
	m.entries = entries
	return m, nil
}

// InitOrOpen reads the manifest in store, creating an empty one when there is
// none. created reports whether a new file was written.
func InitOrOpen(fs afero.Fs, store, file string) (m *Manifest, created bool, err error) {
	if Exists(fs, store, file) {
		m, err = Read(fs, store, file)
		return m, false, err
	}

	m = newManifest(fs, store, file)
	if err := m.Persist(); err != nil {
		return nil, false, err
	}
	return m, true, nil
}

// Path is the absolute location of the manifest file
func (m *Manifest) Path() string {
	return filepath.Join(m.store, m.file)
}

// RepoPath is the manifest location relative to the store, as staged in git
func (m *Manifest) RepoPath() string {
	return m.file
}

// Append records a relative path. Nothing is written until Persist.
func (m *Manifest) Append(relative string) {
	m.entries = append(m.entries, Entry{Path: filepath.ToSlash(relative)})
}

// Entries returns a copy of the recorded entries in file order
func (m *Manifest) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Unique returns the recorded relative paths with duplicates removed,
// keeping the first occurrence of each.
func (m *Manifest) Unique() []string {
	seen := make(map[string]bool, len(m.entries))
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		p := filepath.Clean(filepath.FromSlash(e.Path))
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Persist writes the manifest with a temp file and a rename so a failed
// write never leaves a truncated file behind.
func (m *Manifest) Persist() error {
	entries := m.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to serialize config file %s", m.Path())
	}

	if err := m.fs.MkdirAll(m.store, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to create directory %s", m.store)
	}

	tmp, err := afero.TempFile(m.fs, m.store, "."+m.file+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to create temp file in %s", m.store)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = m.fs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to write temp file %s", tmpPath)
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to sync temp file %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to close temp file %s", tmpPath)
	}
	if err := m.fs.Chmod(tmpPath, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to set permissions on %s", tmpPath)
	}
	if err := m.fs.Rename(tmpPath, m.Path()); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to write config file %s", m.Path())
	}
	committed = true
	return nil
}
