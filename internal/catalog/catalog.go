package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"courseapi/internal/entity"
)

var (
	// ErrNotFound is returned when no course is stored under a key.
	ErrNotFound = errors.New("course not found")
	// ErrDuplicateCourse is returned when a dataset lists the same subject and number twice.
	ErrDuplicateCourse = errors.New("duplicate course")
	// ErrInvalidDataset is returned when a dataset cannot be seeded.
	ErrInvalidDataset = errors.New("invalid dataset")
)

// Store holds the seeded catalog: one course document and one rating per
// summary. The key set never changes after Seed; only rating values do.
type Store struct {
	mu          sync.RWMutex
	summaries   []entity.Summary
	summaryJSON []byte
	courses     map[entity.Key][]byte
	ratings     map[entity.Key]entity.Rating
}

// Seed builds a Store from a JSON array of course documents.
func Seed(dataset []byte) (*Store, error) {
	var nodes []json.RawMessage
	if err := json.Unmarshal(dataset, &nodes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}

	s := &Store{
		summaries: make([]entity.Summary, 0, len(nodes)),
		courses:   make(map[entity.Key][]byte, len(nodes)),
		ratings:   make(map[entity.Key]entity.Rating, len(nodes)),
	}

	for i, node := range nodes {
		var summary entity.Summary
		if err := json.Unmarshal(node, &summary); err != nil {
			return nil, fmt.Errorf("%w: course %d: %v", ErrInvalidDataset, i, err)
		}
		if errs := entity.ValidateStruct(summary); len(errs) > 0 {
			return nil, fmt.Errorf("%w: course %d: %v", ErrInvalidDataset, i, errs[0])
		}

		key := summary.Key()
		if _, exists := s.courses[key]; exists {
			return nil, fmt.Errorf("%w: %s %s", ErrDuplicateCourse, key.Subject, key.Number)
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, node, "", "  "); err != nil {
			return nil, fmt.Errorf("%w: course %d: %v", ErrInvalidDataset, i, err)
		}

		s.courses[key] = pretty.Bytes()
		s.ratings[key] = entity.NewRating(summary)
		s.summaries = append(s.summaries, summary)
	}

	entity.SortSummaries(s.summaries)
	summaryJSON, err := entity.MarshalIndent(s.summaries)
	if err != nil {
		return nil, fmt.Errorf("encode summaries: %w", err)
	}
	s.summaryJSON = summaryJSON

	return s, nil
}

// Summaries returns the seeded summaries in catalog order.
func (s *Store) Summaries() []entity.Summary {
	out := make([]entity.Summary, len(s.summaries))
	copy(out, s.summaries)
	return out
}

// SummaryJSON returns the pretty-printed summary list computed at seed time.
// Callers must not modify the returned slice.
func (s *Store) SummaryJSON() []byte {
	return s.summaryJSON
}

// CourseJSON returns the stored course document for key.
// Callers must not modify the returned slice.
func (s *Store) CourseJSON(key entity.Key) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	body, ok := s.courses[key]
	return body, ok
}

func (s *Store) Rating(key entity.Key) (entity.Rating, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rating, ok := s.ratings[key]
	return rating, ok
}

// SetRating replaces the rating stored under the key of rating.Summary.
// It returns ErrNotFound instead of adding a new key.
func (s *Store) SetRating(rating entity.Rating) error {
	key := rating.Summary.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ratings[key]; !ok {
		return fmt.Errorf("%w: %s %s", ErrNotFound, key.Subject, key.Number)
	}
	s.ratings[key] = rating
	return nil
}

// Reset restores every rating to NotRated.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, summary := range s.summaries {
		s.ratings[summary.Key()] = entity.NewRating(summary)
	}
}

func (s *Store) Len() int {
	return len(s.summaries)
}
