package mrl

import (
	"encoding/json"
	"fmt"
)

// Descriptor is the serializable form of an MRL. Cached properties and metadata are not part
// of it; they are retrieved again by whichever backend loads the descriptor.
type Descriptor struct {
	Kind      Kind            `json:"kind" jsonschema:"type=string"`
	Resource  json.RawMessage `json:"resource" jsonschema:"type=object"`
	Subtitles []string        `json:"subtitles,omitempty"`
}

// Describe returns the descriptor of m.
func (m *MRL) Describe() (Descriptor, error) {
	if m.freed {
		return Descriptor{}, ErrFreed
	}

	raw, err := json.Marshal(m.res)
	if err != nil {
		return Descriptor{}, err
	}

	return Descriptor{
		Kind:      m.kind,
		Resource:  raw,
		Subtitles: m.Subtitles(),
	}, nil
}

// MRL rebuilds an unlinked MRL from d.
func (d Descriptor) MRL() (*MRL, error) {
	if !d.Kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(d.Kind))
	}

	res := newResource(d.Kind)
	if len(d.Resource) > 0 {
		if err := json.Unmarshal(d.Resource, res); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResourceMismatch, err)
		}
	}

	m, err := New(d.Kind, res)
	if err != nil {
		return nil, err
	}
	for _, sub := range d.Subtitles {
		m.AddSubtitle(sub)
	}
	return m, nil
}
