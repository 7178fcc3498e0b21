// Package history holds the state behind the entry history table: the loaded
// entries, view parameters, the inline editor, row selection and bulk actions.
package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"sparc/entities"
	"sparc/pkg/calendar"
	"sparc/pkg/entry"
	"sparc/pkg/entry/service"
	"sparc/pkg/export"
	"sparc/pkg/listview"
)

const DefaultDebounce = 300 * time.Millisecond

var (
	ErrNotEditing   = errors.New("no row is being edited")
	ErrNoSelection  = errors.New("no visible rows selected")
	ErrNotConfirmed = errors.New("bulk delete was not confirmed")
)

type Options struct {
	Store    service.Service
	Notifier Notifier
	Clock    calendar.Clock
	Location *time.Location
	UID      string
	// Debounce delays search evaluation. Zero uses DefaultDebounce; negative
	// applies searches immediately.
	Debounce time.Duration
	Logger   *zap.Logger
}

type Panel struct {
	store    service.Service
	notifier Notifier
	clock    calendar.Clock
	loc      *time.Location
	uid      string
	log      *zap.Logger
	search   *Debouncer

	mu            sync.Mutex
	entries       []entities.TimeEntry
	params        listview.Params
	typed         string
	edit          editor
	selected      map[string]struct{}
	confirmDelete bool
}

func New(opts Options) *Panel {
	p := &Panel{
		store:    opts.Store,
		notifier: opts.Notifier,
		clock:    opts.Clock,
		loc:      opts.Location,
		uid:      opts.UID,
		log:      opts.Logger,
		params:   listview.DefaultParams(),
		selected: map[string]struct{}{},
	}
	if p.notifier == nil {
		p.notifier = nopNotifier{}
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	if p.loc == nil {
		p.loc = time.Local
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	delay := opts.Debounce
	if delay == 0 {
		delay = DefaultDebounce
	}
	p.search = NewDebouncer(delay)
	return p
}

// Close drops any pending search evaluation.
func (p *Panel) Close() { p.search.Stop() }

func (p *Panel) fail(msg string, err error) {
	p.log.Warn(msg, zap.String("uid", p.uid), zap.Error(err))
	p.notifier.Notify(LevelError, fmt.Sprintf("%s: %v", msg, err))
}

// Refresh reloads every live entry. On failure the previous set is kept.
func (p *Panel) Refresh(ctx context.Context) error {
	list, err := p.store.List(ctx, p.uid, entry.ListOptions{Range: calendar.RangeAll})
	if err != nil {
		p.fail("Could not load entries", err)
		return err
	}
	p.mu.Lock()
	p.entries = list
	p.mu.Unlock()
	return nil
}

// Add validates and creates an entry from the quick-entry form.
func (p *Panel) Add(ctx context.Context, in entry.Input) (*entities.TimeEntry, error) {
	if err := entry.Check(&in.Fields); err != nil {
		return nil, err
	}
	created, err := p.store.Create(ctx, p.uid, in)
	if err != nil {
		p.fail("Could not save entry", err)
		return nil, err
	}
	p.mu.Lock()
	p.entries = append(p.entries, *created)
	p.mu.Unlock()
	p.notifier.Notify(LevelInfo, "Entry saved")
	return created, nil
}

// Entries returns a copy of the loaded set, soft-deleted rows included.
func (p *Panel) Entries() []entities.TimeEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]entities.TimeEntry(nil), p.entries...)
}

// Visible derives the rows on screen from the current entries and parameters.
func (p *Panel) Visible() []entities.TimeEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visibleLocked()
}

func (p *Panel) visibleLocked() []entities.TimeEntry {
	return listview.Derive(p.entries, p.params, p.clock(), p.loc)
}

func (p *Panel) Params() listview.Params {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := p.params
	c.SelectedTasks = p.params.SelectedTasks.Clone()
	return c
}

func (p *Panel) SetDateRange(r calendar.Range) {
	p.mu.Lock()
	p.params.DateRange = r
	p.mu.Unlock()
}

func (p *Panel) ToggleTask(t string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.params.SelectedTasks.Has(t) {
		delete(p.params.SelectedTasks, t)
		return
	}
	p.params.SelectedTasks[t] = struct{}{}
}

func (p *Panel) ClearTasks() {
	p.mu.Lock()
	p.params.SelectedTasks = listview.TaskSet{}
	p.mu.Unlock()
}

// SetSort flips the direction when f is already the sort field, otherwise it
// switches to f descending.
func (p *Panel) SetSort(f listview.SortField) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.params.SortField == f {
		if p.params.SortDirection == listview.Desc {
			p.params.SortDirection = listview.Asc
		} else {
			p.params.SortDirection = listview.Desc
		}
		return
	}
	p.params.SortField = f
	p.params.SortDirection = listview.Desc
}

func (p *Panel) SetSortDirection(d listview.Direction) {
	p.mu.Lock()
	p.params.SortDirection = d
	p.mu.Unlock()
}

// TypeSearch records the search box text. The query takes effect once typing
// pauses for the debounce delay.
func (p *Panel) TypeSearch(text string) {
	p.mu.Lock()
	p.typed = text
	p.mu.Unlock()
	p.search.Trigger(func() {
		p.mu.Lock()
		p.params.Search = text
		p.mu.Unlock()
	})
}

// FlushSearch applies a pending search immediately.
func (p *Panel) FlushSearch() { p.search.Flush() }

// Search returns the query currently applied to the list.
func (p *Panel) Search() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.params.Search
}

// SearchText returns what has been typed, applied or not.
func (p *Panel) SearchText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.typed
}

func (p *Panel) findLocked(id string) int {
	for i := range p.entries {
		if p.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Panel) replaceLocked(e entities.TimeEntry) {
	if i := p.findLocked(e.ID); i >= 0 {
		p.entries[i] = e
		return
	}
	p.entries = append(p.entries, e)
}

// Export writes the visible rows in the given format. It never changes the
// panel state.
func (p *Panel) Export(ctx context.Context, f export.Format, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		p.fail("Export failed", err)
		return err
	}
	rows := p.Visible()
	if err := export.Write(w, f, rows, p.loc); err != nil {
		p.fail("Export failed", err)
		return err
	}
	p.log.Debug("exported entries", zap.String("format", string(f)), zap.Int("rows", len(rows)))
	return nil
}
