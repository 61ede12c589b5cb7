package memory

import (
	"errors"
	"math"
	"sync"

	"xlingviz/internal/domain"
)

// Storage is an in-memory vector index using brute-force cosine similarity.
// Vectors are L2-normalized on insert.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	labels    []domain.LabelRecord
	byPrimary map[string][]int
}

func NewStorage() *Storage { return &Storage{byPrimary: map[string][]int{}} }

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.labels = nil
	s.byPrimary = map[string][]int{}
	return nil
}

func (s *Storage) Upsert(labels []domain.LabelRecord, vectors [][]float64) error {
	if len(labels) != len(vectors) {
		return errors.New("labels and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	for i, v := range vectors {
		row := len(s.vectors)
		s.vectors = append(s.vectors, normalize(v))
		s.labels = append(s.labels, labels[i])
		s.byPrimary[labels[i].Primary] = append(s.byPrimary[labels[i].Primary], row)
	}
	return nil
}

// Len returns the number of stored rows.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

// Lookup returns the rows whose primary label equals primary, in insertion order.
func (s *Storage) Lookup(primary string) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.byPrimary[primary]
	out := make([]int, len(rows))
	copy(out, rows)
	return out
}

// Label returns the label of a stored row.
func (s *Storage) Label(row int) (domain.LabelRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if row < 0 || row >= len(s.labels) {
		return domain.LabelRecord{}, false
	}
	return s.labels[row], true
}

func (s *Storage) Search(vector []float64, topK int) ([]domain.Neighbor, error) {
	s.mu.RLock()
	dim := s.dimension
	s.mu.RUnlock()
	if len(vector) != dim {
		return nil, errors.New("vector dimension mismatch")
	}
	return s.search(normalize(vector), topK, -1), nil
}

// SearchRow returns the nearest neighbours of a stored row, excluding the row itself.
func (s *Storage) SearchRow(row, topK int) ([]domain.Neighbor, error) {
	s.mu.RLock()
	if row < 0 || row >= len(s.vectors) {
		s.mu.RUnlock()
		return nil, errors.New("row out of range")
	}
	vec := s.vectors[row]
	s.mu.RUnlock()
	return s.search(vec, topK, row), nil
}

func (s *Storage) search(vector []float64, topK, skip int) []domain.Neighbor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	scores := make([]float64, len(s.vectors))
	for i := range s.vectors {
		scores[i] = dot(s.vectors[i], vector)
	}
	idxs := argsortDesc(scores)
	results := make([]domain.Neighbor, 0, topK)
	for _, j := range idxs {
		if len(results) == topK {
			break
		}
		if j == skip {
			continue
		}
		results = append(results, domain.Neighbor{Row: j, Label: s.labels[j], Score: scores[j]})
	}
	return results
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	s.labels = nil
	s.byPrimary = map[string][]int{}
	return nil
}

func normalize(v []float64) []float64 {
	norm := math.Sqrt(dot(v, v))
	out := make([]float64, len(v))
	if norm == 0 {
		return out
	}
	for i := range v {
		out[i] = v[i] / norm
	}
	return out
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func argsortDesc(vals []float64) []int {
	idxs := make([]int, len(vals))
	for i := range vals {
		idxs[i] = i
	}
	quicksort(idxs, vals, 0, len(idxs)-1)
	return idxs
}

func quicksort(idxs []int, vals []float64, lo, hi int) {
	if lo >= hi {
		return
	}
	i, j := lo, hi
	pivot := vals[idxs[(lo+hi)/2]]
	for i <= j {
		for vals[idxs[i]] > pivot { // desc order
			i++
		}
		for vals[idxs[j]] < pivot {
			j--
		}
		if i <= j {
			idxs[i], idxs[j] = idxs[j], idxs[i]
			i++
			j--
		}
	}
	if lo < j {
		quicksort(idxs, vals, lo, j)
	}
	if i < hi {
		quicksort(idxs, vals, i, hi)
	}
}
