package history

import (
	"context"

	"go.uber.org/zap"

	"sparc/pkg/entry"
)

// Editing reports the id of the row in edit mode.
func (p *Panel) Editing() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.edit.id, p.edit.active()
}

// Draft returns a copy of the shadow fields of the edited row.
func (p *Panel) Draft() entry.Fields {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneFields(p.edit.draft)
}

// DraftErrors returns the field errors of the last rejected save.
func (p *Panel) DraftErrors() entry.FieldErrors {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.edit.errs
}

// BeginEdit puts row id into edit mode, cancelling any other edit first.
func (p *Panel) BeginEdit(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.findLocked(id)
	if i < 0 || p.entries[i].IsDeleted() {
		return entry.ErrNotFound
	}
	p.edit.reset()
	f := entry.FieldsOf(&p.entries[i])
	p.edit = editor{id: id, original: f, draft: cloneFields(f)}
	return nil
}

// SetDraft mutates the shadow copy. It is ignored when idle.
func (p *Panel) SetDraft(fn func(*entry.Fields)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.edit.active() {
		return
	}
	fn(&p.edit.draft)
}

func (p *Panel) CancelEdit() {
	p.mu.Lock()
	p.edit.reset()
	p.mu.Unlock()
}

// SaveEdit validates the draft and sends the changed fields to the store. The
// row leaves edit mode only after the update succeeds.
func (p *Panel) SaveEdit(ctx context.Context) error {
	p.mu.Lock()
	if !p.edit.active() {
		p.mu.Unlock()
		return ErrNotEditing
	}
	id := p.edit.id
	draft := cloneFields(p.edit.draft)
	if err := entry.Check(&draft); err != nil {
		p.edit.errs = entry.FieldErrorsOf(err)
		p.mu.Unlock()
		return err
	}
	p.edit.errs = nil
	patch := diffPatch(p.edit.original, draft)
	if patch.Empty() {
		p.edit.reset()
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	updated, err := p.store.Update(ctx, p.uid, id, patch)
	if err != nil {
		p.fail("Could not save changes", err)
		return err
	}

	p.mu.Lock()
	p.replaceLocked(*updated)
	if p.edit.id == id {
		p.edit.reset()
	}
	p.mu.Unlock()
	p.log.Debug("entry updated", zap.String("id", id))
	return nil
}

// HandleKey maps the editor shortcuts. It reports whether the key was
// consumed; keys are never consumed while idle.
func (p *Panel) HandleKey(ctx context.Context, k Key) (bool, error) {
	if _, editing := p.Editing(); !editing {
		return false, nil
	}
	switch {
	case k.isSave():
		return true, p.SaveEdit(ctx)
	case k.isCancel():
		p.CancelEdit()
		return true, nil
	}
	return false, nil
}
