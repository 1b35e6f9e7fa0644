package interfaces

import "context"

// Notifier posts pre-formatted text to the configured destination channel.
type Notifier interface {
	Send(ctx context.Context, text string) error
}
