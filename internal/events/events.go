package events

import (
	"context"
)

// PropertyStored is emitted after a canonical record is upserted.
type PropertyStored struct {
	ID    string
	Price float64
}

type Publisher interface {
	PublishPropertyStored(ctx context.Context, evt PropertyStored)
	SubscribePropertyStored() <-chan PropertyStored
}

type inMemory struct{ ch chan PropertyStored }

func NewInMemory(buffer int) Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &inMemory{ch: make(chan PropertyStored, buffer)}
}

func (m *inMemory) PublishPropertyStored(_ context.Context, evt PropertyStored) {
	select {
	case m.ch <- evt:
	default:
	}
}

func (m *inMemory) SubscribePropertyStored() <-chan PropertyStored { return m.ch }
