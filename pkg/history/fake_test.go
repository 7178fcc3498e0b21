package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"sparc/entities"
	"sparc/pkg/entry"
)

var errOffline = errors.New("backend offline")

// memStore is an in-memory entry service that can be switched to failing.
type memStore struct {
	mu      sync.Mutex
	now     time.Time
	rows    []entities.TimeEntry
	seq     int
	fail    error
	updates []entry.Patch
	deletes [][]string
}

func (m *memStore) setFail(err error) {
	m.mu.Lock()
	m.fail = err
	m.mu.Unlock()
}

func (m *memStore) index(id string) int {
	for i := range m.rows {
		if m.rows[i].ID == id && !m.rows[i].IsDeleted() {
			return i
		}
	}
	return -1
}

func (m *memStore) Create(_ context.Context, uid string, in entry.Input) (*entities.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	m.seq++
	e := entities.TimeEntry{ID: fmt.Sprintf("new-%d", m.seq), UserID: uid, OccurredOn: in.OccurredOn, CreatedAt: m.now, UpdatedAt: m.now}
	in.Fields.Apply(&e)
	if e.OccurredOn.IsZero() {
		e.OccurredOn = entities.At(m.now)
	}
	m.rows = append(m.rows, e)
	return &e, nil
}

func (m *memStore) Update(_ context.Context, _ string, id string, p entry.Patch) (*entities.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, p)
	if m.fail != nil {
		return nil, m.fail
	}
	i := m.index(id)
	if i < 0 {
		return nil, entry.ErrNotFound
	}
	f := entry.FieldsOf(&m.rows[i])
	p.Apply(&f)
	f.Apply(&m.rows[i])
	m.rows[i].UpdatedAt = m.now
	e := m.rows[i]
	return &e, nil
}

func (m *memStore) SoftDelete(_ context.Context, _ string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, ids)
	if m.fail != nil {
		return m.fail
	}
	for _, id := range ids {
		if m.index(id) < 0 {
			return entry.ErrNotFound
		}
	}
	for _, id := range ids {
		m.rows[m.index(id)].DeletedAt = gorm.DeletedAt{Time: m.now, Valid: true}
	}
	return nil
}

func (m *memStore) List(_ context.Context, _ string, _ entry.ListOptions) ([]entities.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	var out []entities.TimeEntry
	for _, e := range m.rows {
		if !e.IsDeleted() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) Duplicate(_ context.Context, _ string, ids []string) ([]entities.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	var out []entities.TimeEntry
	for _, id := range ids {
		i := m.index(id)
		if i < 0 {
			return nil, entry.ErrNotFound
		}
		m.seq++
		c := m.rows[i]
		c.ID = fmt.Sprintf("dup-%d", m.seq)
		c.OccurredOn = entities.At(m.now)
		c.CreatedAt, c.UpdatedAt = m.now, m.now
		out = append(out, c)
	}
	m.rows = append(m.rows, out...)
	return out, nil
}
