// Package todo holds the in-memory to-do and habit lists.
package todo

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyTitle is returned when a title is blank after trimming.
	ErrEmptyTitle = errors.New("title is empty")
	// ErrNotFound is returned for an unknown id.
	ErrNotFound = errors.New("item not found")
	// ErrDuplicate is returned when a habit name is already tracked.
	ErrDuplicate = errors.New("habit already exists")
)

// Item is a single to-do entry.
type Item struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
}

// List is a to-do list ordered newest first.
type List struct {
	mu    sync.RWMutex
	items []Item
	now   func() time.Time
}

// NewList creates an empty list.
func NewList() *List {
	return &List{now: time.Now}
}

// Add inserts a new pending item at the top of the list.
func (list *List) Add(title, description string) (Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Item{}, ErrEmptyTitle
	}
	item := Item{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedAt:   list.now(),
	}

	list.mu.Lock()
	defer list.mu.Unlock()
	list.items = append([]Item{item}, list.items...)
	return item, nil
}

// Toggle flips the completed flag of an item.
func (list *List) Toggle(id string) (Item, error) {
	list.mu.Lock()
	defer list.mu.Unlock()
	for index := range list.items {
		if list.items[index].ID == id {
			list.items[index].Completed = !list.items[index].Completed
			return list.items[index], nil
		}
	}
	return Item{}, ErrNotFound
}

// Delete removes an item.
func (list *List) Delete(id string) error {
	list.mu.Lock()
	defer list.mu.Unlock()
	for index, item := range list.items {
		if item.ID == id {
			list.items = append(list.items[:index], list.items[index+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Pending returns the items not yet completed.
func (list *List) Pending() []Item {
	return list.filter(false)
}

// Completed returns the completed items.
func (list *List) Completed() []Item {
	return list.filter(true)
}

func (list *List) filter(completed bool) []Item {
	list.mu.RLock()
	defer list.mu.RUnlock()
	var items []Item
	for _, item := range list.items {
		if item.Completed == completed {
			items = append(items, item)
		}
	}
	return items
}
