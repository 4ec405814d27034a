// Package store holds the ordered collection of templates and mediates every
// read and write against its persistence backend.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/xiaomi388/templater/pkg/codec"
	"github.com/xiaomi388/templater/pkg/persistence"
	"github.com/xiaomi388/templater/pkg/types"
)

type Option func(*Store)

// WithSkipMalformed makes Load drop bad records one by one instead of
// discarding the whole file.
func WithSkipMalformed(skip bool) Option {
	return func(s *Store) {
		s.skipMalformed = skip
	}
}

type Store struct {
	mu            sync.Mutex
	backend       persistence.Backend
	log           logrus.FieldLogger
	skipMalformed bool
	templates     []types.Template
}

func New(backend persistence.Backend, log logrus.FieldLogger, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		log:       log.WithField("component", "store"),
		templates: []types.Template{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Path() string {
	return s.backend.Path()
}

// Load replaces the collection with the backend content. A missing file,
// unparsable JSON or a malformed record all leave an empty collection and
// return nil; only other read failures are returned.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.WithField("path", s.backend.Path())
	s.templates = []types.Template{}

	raws, err := s.backend.LoadRecords()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Info("templates file not found, starting with empty list")
		return nil
	case errors.Is(err, codec.ErrInvalidJSON):
		log.WithError(err).Warn("error decoding templates, starting with empty list")
		return nil
	case err != nil:
		return fmt.Errorf("failed to load templates: %w", err)
	}

	if s.skipMalformed {
		s.templates = codec.DecodeEach(raws, func(i int, err error) {
			log.WithError(err).WithField("index", i).Warn("skipping malformed template")
		})
	} else {
		templates, err := codec.DecodeAll(raws)
		if err != nil {
			log.WithError(err).Warn("error decoding templates, starting with empty list")
			return nil
		}
		s.templates = templates
	}

	log.WithField("count", len(s.templates)).Debug("loaded templates")
	return nil
}

func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save()
}

func (s *Store) save() error {
	raws, err := codec.MarshalAll(s.templates)
	if err != nil {
		return err
	}

	if err := s.backend.DumpRecords(raws); err != nil {
		return fmt.Errorf("failed to save templates: %w", err)
	}

	s.log.WithField("count", len(s.templates)).Debug("saved templates")
	return nil
}

// Add appends a template and saves. Blank descriptions are ignored and
// reported with false.
func (s *Store) Add(description string) (bool, error) {
	t, ok := types.New(description)
	if !ok {
		s.log.Debug("ignoring blank template")
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.templates = append(s.templates, t)
	if err := s.save(); err != nil {
		s.templates = s.templates[:len(s.templates)-1]
		return false, err
	}

	s.log.WithField("index", len(s.templates)-1).Info("created template")
	return true, nil
}

// Update replaces the description at index and saves. Out-of-range indices
// and blank descriptions are ignored and reported with false.
func (s *Store) Update(index int, description string) (bool, error) {
	t, ok := types.New(description)

	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.WithField("index", index)
	if !s.valid(index) {
		log.Debug("ignoring update of unknown template")
		return false, nil
	}
	if !ok {
		log.Debug("ignoring blank template")
		return false, nil
	}

	prev := s.templates[index]
	s.templates[index] = t
	if err := s.save(); err != nil {
		s.templates[index] = prev
		return false, err
	}

	log.Info("edited template")
	return true, nil
}

func (s *Store) Remove(index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.WithField("index", index)
	if !s.valid(index) {
		log.Debug("ignoring removal of unknown template")
		return false, nil
	}

	prev := s.templates
	next := make([]types.Template, 0, len(prev)-1)
	next = append(next, prev[:index]...)
	next = append(next, prev[index+1:]...)

	s.templates = next
	if err := s.save(); err != nil {
		s.templates = prev
		return false, err
	}

	log.Info("removed template")
	return true, nil
}

func (s *Store) Get(index int) (types.Template, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.valid(index) {
		return types.Template{}, false
	}
	return s.templates[index], true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.templates)
}

// All returns a copy of the collection.
func (s *Store) All() []types.Template {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// Search yields the templates whose description contains query, ignoring
// case, with their index in the collection. An empty query yields all of
// them. Each iteration works on a snapshot taken when it starts.
func (s *Store) Search(query string) iter.Seq2[int, types.Template] {
	return func(yield func(int, types.Template) bool) {
		s.mu.Lock()
		templates := s.snapshot()
		s.mu.Unlock()

		for i, t := range templates {
			if !t.Matches(query) {
				continue
			}
			if !yield(i, t) {
				return
			}
		}
	}
}

func (s *Store) snapshot() []types.Template {
	out := make([]types.Template, len(s.templates))
	copy(out, s.templates)
	return out
}

func (s *Store) valid(index int) bool {
	return index >= 0 && index < len(s.templates)
}
