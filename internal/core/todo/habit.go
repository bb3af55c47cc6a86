package todo

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Habit is a tracked habit.
type Habit struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Habits is the list of tracked habits in insertion order.
type Habits struct {
	mu     sync.RWMutex
	habits []Habit
	now    func() time.Time
}

// NewHabits creates an empty habit list.
func NewHabits() *Habits {
	return &Habits{now: time.Now}
}

// Add tracks a new habit. Names are unique, ignoring case.
func (habits *Habits) Add(name string) (Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Habit{}, ErrEmptyTitle
	}

	habits.mu.Lock()
	defer habits.mu.Unlock()
	for _, habit := range habits.habits {
		if strings.EqualFold(habit.Name, name) {
			return Habit{}, ErrDuplicate
		}
	}
	habit := Habit{ID: uuid.NewString(), Name: name, CreatedAt: habits.now()}
	habits.habits = append(habits.habits, habit)
	return habit, nil
}

// Delete stops tracking a habit.
func (habits *Habits) Delete(id string) error {
	habits.mu.Lock()
	defer habits.mu.Unlock()
	for index, habit := range habits.habits {
		if habit.ID == id {
			habits.habits = append(habits.habits[:index], habits.habits[index+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// All returns a copy of the tracked habits.
func (habits *Habits) All() []Habit {
	habits.mu.RLock()
	defer habits.mu.RUnlock()
	return append([]Habit(nil), habits.habits...)
}
