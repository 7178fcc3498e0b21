package history

import "sync"

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notifier receives transient, dismissible messages.
type Notifier interface {
	Notify(level Level, msg string)
}

type Toast struct {
	ID      int
	Level   Level
	Message string
}

// Toasts keeps notifications in memory until dismissed.
type Toasts struct {
	mu    sync.Mutex
	next  int
	items []Toast
}

func (t *Toasts) Notify(level Level, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.items = append(t.items, Toast{ID: t.next, Level: level, Message: msg})
}

func (t *Toasts) List() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Toast(nil), t.items...)
}

// Errors returns only the error-level toasts.
func (t *Toasts) Errors() []Toast {
	var out []Toast
	for _, x := range t.List() {
		if x.Level == LevelError {
			out = append(out, x)
		}
	}
	return out
}

func (t *Toasts) Dismiss(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, x := range t.items {
		if x.ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

type nopNotifier struct{}

func (nopNotifier) Notify(Level, string) {}
