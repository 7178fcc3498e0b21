package history

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sparc/entities"
)

func (p *Panel) ToggleSelect(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.selected[id]; ok {
		delete(p.selected, id)
		return
	}
	p.selected[id] = struct{}{}
}

func (p *Panel) IsSelected(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.selected[id]
	return ok
}

// SelectedCount counts every selected id, visible or not.
func (p *Panel) SelectedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.selected)
}

// IsAllSelected is true when every visible row is selected.
func (p *Panel) IsAllSelected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allSelectedLocked(p.visibleLocked())
}

func (p *Panel) allSelectedLocked(visible []entities.TimeEntry) bool {
	if len(visible) == 0 {
		return false
	}
	for _, e := range visible {
		if _, ok := p.selected[e.ID]; !ok {
			return false
		}
	}
	return true
}

// ToggleSelectAll clears the selection when all visible rows are selected,
// otherwise selects every visible row.
func (p *Panel) ToggleSelectAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	visible := p.visibleLocked()
	if p.allSelectedLocked(visible) {
		p.selected = map[string]struct{}{}
		return
	}
	for _, e := range visible {
		p.selected[e.ID] = struct{}{}
	}
}

// SelectedVisible returns the selected ids in display order.
func (p *Panel) SelectedVisible() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selectedVisibleLocked()
}

func (p *Panel) selectedVisibleLocked() []string {
	var ids []string
	for _, e := range p.visibleLocked() {
		if _, ok := p.selected[e.ID]; ok {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// RequestBulkDelete opens the confirmation step when something is selected.
func (p *Panel) RequestBulkDelete() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirmDelete = len(p.selectedVisibleLocked()) > 0
	return p.confirmDelete
}

func (p *Panel) ConfirmingDelete() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.confirmDelete
}

func (p *Panel) CancelBulkDelete() {
	p.mu.Lock()
	p.confirmDelete = false
	p.mu.Unlock()
}

// ConfirmBulkDelete soft-deletes the selected visible rows as one batch and
// clears the selection. On failure the selection is left untouched.
func (p *Panel) ConfirmBulkDelete(ctx context.Context) error {
	p.mu.Lock()
	if !p.confirmDelete {
		p.mu.Unlock()
		return ErrNotConfirmed
	}
	p.confirmDelete = false
	ids := p.selectedVisibleLocked()
	p.mu.Unlock()
	if len(ids) == 0 {
		return ErrNoSelection
	}

	if err := p.store.SoftDelete(ctx, p.uid, ids); err != nil {
		p.fail("Could not delete entries", err)
		return err
	}

	now := p.clock()
	p.mu.Lock()
	for _, id := range ids {
		if i := p.findLocked(id); i >= 0 {
			p.entries[i].DeletedAt = gorm.DeletedAt{Time: now, Valid: true}
		}
	}
	p.selected = map[string]struct{}{}
	p.mu.Unlock()
	p.log.Debug("bulk delete", zap.Int("count", len(ids)))
	p.notifier.Notify(LevelInfo, fmt.Sprintf("Deleted %d entries", len(ids)))
	return nil
}

// BulkDuplicate clones the selected visible rows without confirmation.
func (p *Panel) BulkDuplicate(ctx context.Context) ([]entities.TimeEntry, error) {
	ids := p.SelectedVisible()
	if len(ids) == 0 {
		return nil, ErrNoSelection
	}
	clones, err := p.store.Duplicate(ctx, p.uid, ids)
	if err != nil {
		p.fail("Could not duplicate entries", err)
		return nil, err
	}
	p.mu.Lock()
	p.entries = append(p.entries, clones...)
	p.selected = map[string]struct{}{}
	p.mu.Unlock()
	p.notifier.Notify(LevelInfo, fmt.Sprintf("Duplicated %d entries", len(clones)))
	return clones, nil
}
