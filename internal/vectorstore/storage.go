package vectorstore

import "xlingviz/internal/domain"

// Storage holds labelled vectors and supports similarity search.
type Storage interface {
	Init(dimension int) error
	Upsert(labels []domain.LabelRecord, vectors [][]float64) error
	Search(vector []float64, topK int) ([]domain.Neighbor, error)
	Clear() error
}
