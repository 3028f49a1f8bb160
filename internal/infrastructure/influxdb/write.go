package influxdb

import (
	"context"
	"fmt"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/acruzgit/heco-energy/internal/interval"
)

// WriteSamples writes one batch of interval samples as a single blocking call.
//
// Each sample becomes one point under the configured measurement, tagged
// with the configured source identifier and carrying the usage as the
// "kwh" field. Point timestamps keep the sample's civil-zone instant at
// second precision, so re-importing the same file overwrites rather than
// duplicates (same measurement, tag set and timestamp).
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - batch: Samples to write; an empty batch performs no call
//
// Returns:
//   - int: Number of points written (0 for an empty batch)
//   - error: ErrWriteFailed wrapping the transport error, or nil
func (c *Client) WriteSamples(ctx context.Context, batch interval.Batch) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	points := make([]*write.Point, 0, len(batch))
	for _, s := range batch {
		points = append(points, write.NewPoint(
			c.cfg.Measurement,
			map[string]string{
				"source": c.cfg.SourceTag,
			},
			map[string]interface{}{
				"kwh": s.Value,
			},
			s.Timestamp,
		))
	}

	if err := c.writeAPI.WritePoint(ctx, points...); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	return len(points), nil
}
