// Package mrl models Media Resource Locators: one playable item, its kind-specific arguments,
// its lazily retrieved properties and metadata, and its links to the neighbouring items of a
// playlist.
//
// MRLs are not safe for concurrent use. A player mutates them only from its supervisor.
package mrl

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnknownKind      = errors.New("mrl: unknown resource kind")
	ErrResourceMismatch = errors.New("mrl: resource arguments do not match kind")
	ErrFreed            = errors.New("mrl: freed")
	ErrLinked           = errors.New("mrl: already linked")
)

// MRL is one node of a doubly linked playlist chain.
type MRL struct {
	id   uuid.UUID
	kind Kind
	res  Resource

	props     *Properties
	propsDone bool
	meta      *Metadata
	metaDone  bool

	subtitles []string

	prev, next *MRL
	freed      bool
}

// New validates res against kind and returns an unlinked MRL owning a copy of res.
func New(kind Kind, res Resource) (*MRL, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	if res == nil {
		return nil, fmt.Errorf("%w: %s without arguments", ErrResourceMismatch, kind)
	}
	if res.family() != kind.family() {
		return nil, fmt.Errorf("%w: %s with %T", ErrResourceMismatch, kind, res)
	}

	return &MRL{
		id:   uuid.New(),
		kind: kind,
		res:  res.clone(),
	}, nil
}

func (m *MRL) ID() uuid.UUID { return m.id }
func (m *MRL) Kind() Kind    { return m.kind }

// Resource returns a copy of the argument block.
func (m *MRL) Resource() Resource {
	return m.res.clone()
}

func (m *MRL) String() string {
	return fmt.Sprintf("%s://%s", m.kind, m.res)
}

// Freed reports whether Free has been called.
func (m *MRL) Freed() bool {
	return m.freed
}

// Retriever fills p or md for m. It is expected to come from a backend.
type (
	PropertiesRetriever func(m *MRL, p *Properties) error
	MetadataRetriever   func(m *MRL, md *Metadata) error
)

// EnsureProperties runs fetch the first time it is called and caches the outcome.
// A failed fetch is cached too; later calls return the empty properties without error.
func (m *MRL) EnsureProperties(fetch PropertiesRetriever) (*Properties, error) {
	if m.freed {
		return nil, ErrFreed
	}
	if m.propsDone {
		return m.props.Clone(), nil
	}

	m.propsDone = true
	m.props = &Properties{}
	if err := fetch(m, m.props); err != nil {
		m.props = &Properties{}
		return m.props.Clone(), err
	}
	return m.props.Clone(), nil
}

// EnsureMetadata is EnsureProperties for metadata.
func (m *MRL) EnsureMetadata(fetch MetadataRetriever) (*Metadata, error) {
	if m.freed {
		return nil, ErrFreed
	}
	if m.metaDone {
		return m.meta.Clone(), nil
	}

	m.metaDone = true
	m.meta = &Metadata{}
	if err := fetch(m, m.meta); err != nil {
		m.meta = &Metadata{}
		return m.meta.Clone(), err
	}
	return m.meta.Clone(), nil
}

// AddSubtitle appends a subtitle file path.
func (m *MRL) AddSubtitle(path string) {
	m.subtitles = append(m.subtitles, path)
}

// Subtitles returns the subtitle paths in insertion order.
func (m *MRL) Subtitles() []string {
	return append([]string(nil), m.subtitles...)
}

// Free unlinks m from its neighbours and drops everything it owns.
func (m *MRL) Free() {
	if m.freed {
		return
	}
	m.Unlink()
	m.res = &Local{}
	m.props, m.meta = nil, nil
	m.subtitles = nil
	m.freed = true
}
