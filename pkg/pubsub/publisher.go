// Package pubsub delivers export completion notices to browser
// subscribers. Delivery is fire-and-forget: the store's FINISHED row is
// authoritative and subscribers can always fall back to polling.
package pubsub

import (
	"context"
	"strconv"
)

// Publisher sends a JSON-serialized payload to a named topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
	Close() error
}

// ExportTopic names the per-job notification channel.
func ExportTopic(jobID int64) string {
	return "export/" + strconv.FormatInt(jobID, 10)
}
