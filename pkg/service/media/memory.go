package media

import (
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// Call records one Store or Remove invocation on the in-memory store, in
// arrival order. Tests assert on it to verify call ordering.
type Call struct {
	Op       string // "store" or "remove"
	PublicID string // target of a remove; assigned ID of a store
}

// Memory is an in-memory media store for tests and development mode. It
// applies the same format gating as the GCS store, records every call, and
// can be told to fail.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
	calls   []Call
	formats []string

	// StoreErr / RemoveErr, when set, are returned by the corresponding
	// operation after the call is recorded.
	StoreErr  error
	RemoveErr error
}

var _ Store = &Memory{}

func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string][]byte),
		formats: DefaultFormats(),
	}
}

func (m *Memory) Store(ctx context.Context, blob []byte) (*Object, error) {
	format, _, err := detectFormat(blob, m.formats)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := path.Join("memories", fmt.Sprintf("%s.%s", uuid.New().String(), extensions[format]))
	m.calls = append(m.calls, Call{Op: "store", PublicID: name})

	if m.StoreErr != nil {
		return nil, goerr.Wrap(ErrUpload, "injected store failure", goerr.V("cause", m.StoreErr.Error()))
	}

	data := make([]byte, len(blob))
	copy(data, blob)
	m.objects[name] = data

	return &Object{
		URL:      "https://media.test/" + name,
		PublicID: name,
	}, nil
}

func (m *Memory) Remove(ctx context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: "remove", PublicID: publicID})

	if m.RemoveErr != nil {
		return goerr.Wrap(ErrDelete, "injected remove failure", goerr.V("cause", m.RemoveErr.Error()))
	}

	if _, exists := m.objects[publicID]; !exists {
		return goerr.Wrap(ErrDelete, "blob does not exist", goerr.V("object", publicID))
	}
	delete(m.objects, publicID)
	return nil
}

// Live reports whether a blob with the given public ID is currently stored.
func (m *Memory) Live(publicID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.objects[publicID]
	return exists
}

// Calls returns a copy of the recorded call log.
func (m *Memory) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]Call, len(m.calls))
	copy(calls, m.calls)
	return calls
}
