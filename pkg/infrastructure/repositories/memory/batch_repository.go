package memory

import (
	"context"
	"fmt"

	"github.com/sahanip/batchcost/pkg/domain/entities"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

// BatchRepository provides in-memory storage for production batches
type BatchRepository struct {
	batches    []entities.ProductionBatch
	batchesMap map[string]int
}

// NewBatchRepository creates a new in-memory batch repository
func NewBatchRepository(expectedBatches int) *BatchRepository {
	return &BatchRepository{
		batches:    make([]entities.ProductionBatch, 0, expectedBatches),
		batchesMap: make(map[string]int, expectedBatches),
	}
}

// Verify interface compliance
var _ repositories.BatchRepository = (*BatchRepository)(nil)

// LoadBatches loads production batches into the repository
func (r *BatchRepository) LoadBatches(batches []*entities.ProductionBatch) error {
	for _, b := range batches {
		r.AddBatch(*b)
	}
	return nil
}

// AddBatch adds a production batch to the repository
func (r *BatchRepository) AddBatch(batch entities.ProductionBatch) {
	r.batchesMap[batch.ID] = len(r.batches)
	r.batches = append(r.batches, batch)
}

// GetBatch returns a production batch by ID
func (r *BatchRepository) GetBatch(_ context.Context, id string) (*entities.ProductionBatch, error) {
	index, exists := r.batchesMap[id]
	if !exists {
		return nil, fmt.Errorf("batch %s: %w", id, repositories.ErrNotFound)
	}
	return &r.batches[index], nil
}

// GetAllBatches returns all production batches
func (r *BatchRepository) GetAllBatches(_ context.Context) ([]*entities.ProductionBatch, error) {
	var batches []*entities.ProductionBatch
	for i := range r.batches {
		batches = append(batches, &r.batches[i])
	}
	return batches, nil
}
