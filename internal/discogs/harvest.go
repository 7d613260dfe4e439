package discogs

import (
	"context"

	"github.com/sdeneef/discodash/internal/entities"
)

// Harvester runs the full fetch-and-normalize pipeline for one resource.
type Harvester struct {
	client *Client
}

// NewHarvester creates a Harvester on top of an API client.
func NewHarvester(client *Client) *Harvester {
	return &Harvester{client: client}
}

// Harvest retrieves all raw items of one resource and returns them
// normalized and deduplicated by release id. Fetch and mapping errors
// propagate unchanged; the caller decides what to do with them.
func (h *Harvester) Harvest(ctx context.Context, resource Resource) ([]entities.Item, error) {
	raws, err := h.client.FetchAll(ctx, resource)
	if err != nil {
		return nil, err
	}
	return NormalizeBatch(raws)
}
