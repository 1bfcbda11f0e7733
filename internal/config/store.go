// Package config persists the ordered list of panel configurations.
//
// The file is YAML unless its name ends in ".json". Both a bare list of
// frame records and a mapping whose only key is "frames" are accepted on
// load; any other mapping is a parse error. Saves always write the mapping
// form.
//
//	frames:
//	  - size: [300, 250]
//	    font: Noto Sans JP
//	    mainTextColour: 250, 250, 250, 240
//	    position: [1584, 50]
//	    lookatOffset: 0
//	    id: 183746
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mr-Dark-debug/wotd/internal/frame"

	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// FormatFor picks the encoding from a file name.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// ConfigParseError reports a config file that exists but cannot be
// decoded. It is fatal at startup.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error { return e.Err }

// fileLayout is the mapping form of the config file.
type fileLayout struct {
	Frames []frame.Record `yaml:"frames" json:"frames"`
}

// Store loads and saves the frame collection at a fixed path.
type Store struct {
	path   string
	format Format
	ids    frame.IDSource
	log    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDSource sets the generator used for records without an id.
func WithIDSource(ids frame.IDSource) Option {
	return func(s *Store) { s.ids = ids }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore returns a Store for path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		format: FormatFor(path),
		ids:    frame.NewRandomIDs(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// IDs returns the store's id generator.
func (s *Store) IDs() frame.IDSource { return s.ids }

// Load reads the collection. A missing file is created holding a single
// default frame, which is returned. Every record is completed with
// defaults; a later record whose id repeats an earlier one gets a new id.
func (s *Store) Load() ([]frame.Config, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		def := []frame.Config{frame.Default(s.ids.NewID())}
		if err := s.Save(def); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		s.log.Info("config: created default", "path", s.path, "id", def[0].ID)
		return def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", s.path, err)
	}

	records, err := decode(s.format, data)
	if err != nil {
		return nil, &ConfigParseError{Path: s.path, Err: err}
	}

	frames := make([]frame.Config, 0, len(records))
	seen := make(map[int64]bool, len(records))
	for i, r := range records {
		c, err := frame.EnsureDefaults(r, s.ids)
		if err != nil {
			return nil, &ConfigParseError{Path: s.path, Err: fmt.Errorf("frame %d: %w", i, err)}
		}
		if seen[c.ID] {
			old := c.ID
			c.ID = frame.UniqueID(s.ids, func(id int64) bool { return seen[id] })
			s.log.Warn("config: duplicate frame id, reassigned", "index", i, "old", old, "new", c.ID)
		}
		seen[c.ID] = true
		frames = append(frames, c)
	}

	s.log.Debug("config: loaded", "path", s.path, "frames", len(frames))
	return frames, nil
}

// Save writes the full ordered collection. The file is replaced
// atomically: a crash mid-write leaves the previous contents intact.
func (s *Store) Save(frames []frame.Config) error {
	records := make([]frame.Record, len(frames))
	for i, c := range frames {
		records[i] = c.Record()
	}

	data, err := encode(s.format, records)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("writing config %s: %w", s.path, err)
	}
	s.log.Debug("config: saved", "path", s.path, "frames", len(frames))
	return nil
}

func decode(format Format, data []byte) ([]frame.Record, error) {
	if format == FormatJSON {
		return decodeJSON(data)
	}
	return decodeYAML(data)
}

func decodeYAML(data []byte) ([]frame.Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var records []frame.Record
		if err := root.Decode(&records); err != nil {
			return nil, err
		}
		return records, nil
	case yaml.MappingNode:
		var frames *yaml.Node
		for i := 0; i+1 < len(root.Content); i += 2 {
			k := root.Content[i]
			if k.Value != "frames" {
				return nil, fmt.Errorf("line %d: unknown key %q", k.Line, k.Value)
			}
			frames = root.Content[i+1]
		}
		if frames == nil {
			return nil, fmt.Errorf("line %d: mapping has no frames key", root.Line)
		}
		var records []frame.Record
		if err := frames.Decode(&records); err != nil {
			return nil, err
		}
		return records, nil
	default:
		return nil, fmt.Errorf("line %d: expected a list of frames or a frames mapping", root.Line)
	}
}

func decodeJSON(data []byte) ([]frame.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty document")
	}

	if trimmed[0] == '[' {
		var records []frame.Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return nil, err
	}
	raw, ok := top["frames"]
	if !ok {
		return nil, errors.New("object has no frames key")
	}
	for k := range top {
		if k != "frames" {
			return nil, fmt.Errorf("unknown key %q", k)
		}
	}
	var records []frame.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func encode(format Format, records []frame.Record) ([]byte, error) {
	layout := fileLayout{Frames: records}
	if layout.Frames == nil {
		layout.Frames = []frame.Record{}
	}

	if format == FormatJSON {
		b, err := json.MarshalIndent(layout, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(layout); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
