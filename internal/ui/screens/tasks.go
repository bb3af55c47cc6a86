package screens

import (
	"errors"

	"focuskit/internal/core/todo"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

// Tasks is the to-do tab.
type Tasks struct {
	list        *todo.List
	logger      *zap.Logger
	title       *widget.Entry
	description *widget.Entry
	message     *widget.Label
	pending     *widget.List
	completed   *widget.List
	pendingRows []todo.Item
	doneRows    []todo.Item
	content     fyne.CanvasObject
}

// NewTasks builds the to-do tab.
func NewTasks(list *todo.List, logger *zap.Logger) *Tasks {
	if logger == nil {
		logger = zap.NewNop()
	}
	view := &Tasks{
		list:        list,
		logger:      logger,
		title:       widget.NewEntry(),
		description: widget.NewEntry(),
		message:     widget.NewLabel(""),
	}
	view.title.SetPlaceHolder("Title")
	view.description.SetPlaceHolder("Description")

	view.pending = view.newItemList(func() []todo.Item { return view.pendingRows })
	view.completed = view.newItemList(func() []todo.Item { return view.doneRows })

	add := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), view.handleAdd)
	form := container.NewVBox(view.title, view.description, container.NewHBox(add, view.message))
	lists := container.NewAppTabs(
		container.NewTabItem("Pending", view.pending),
		container.NewTabItem("Completed", view.completed),
	)
	view.content = container.NewBorder(form, nil, nil, nil, lists)

	view.refresh()
	return view
}

// Content returns the tab body.
func (view *Tasks) Content() fyne.CanvasObject {
	return view.content
}

func (view *Tasks) handleAdd() {
	item, err := view.list.Add(view.title.Text, view.description.Text)
	if err != nil {
		if errors.Is(err, todo.ErrEmptyTitle) {
			view.message.SetText("Enter a title")
		}
		return
	}
	view.logger.Debug("task added", zap.String("id", item.ID))
	view.title.SetText("")
	view.description.SetText("")
	view.message.SetText("")
	view.refresh()
}

func (view *Tasks) toggle(id string) {
	if _, err := view.list.Toggle(id); err != nil {
		view.logger.Warn("toggle task", zap.String("id", id), zap.Error(err))
	}
	view.refresh()
}

func (view *Tasks) remove(id string) {
	if err := view.list.Delete(id); err != nil {
		view.logger.Warn("delete task", zap.String("id", id), zap.Error(err))
	}
	view.refresh()
}

func (view *Tasks) refresh() {
	view.pendingRows = view.list.Pending()
	view.doneRows = view.list.Completed()
	view.pending.Refresh()
	view.completed.Refresh()
}

func (view *Tasks) newItemList(rows func() []todo.Item) *widget.List {
	return widget.NewList(
		func() int { return len(rows()) },
		func() fyne.CanvasObject {
			check := widget.NewCheck("", nil)
			remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
			return container.NewBorder(nil, nil, check, remove, widget.NewLabel(""))
		},
		func(id widget.ListItemID, object fyne.CanvasObject) {
			items := rows()
			if id >= len(items) {
				return
			}
			item := items[id]
			row := object.(*fyne.Container)
			label := row.Objects[0].(*widget.Label)
			check := row.Objects[1].(*widget.Check)
			remove := row.Objects[2].(*widget.Button)

			label.SetText(itemText(item))
			check.OnChanged = nil
			check.SetChecked(item.Completed)
			check.OnChanged = func(bool) { view.toggle(item.ID) }
			remove.OnTapped = func() { view.remove(item.ID) }
		},
	)
}

func itemText(item todo.Item) string {
	if item.Description == "" {
		return item.Title
	}
	return item.Title + " - " + item.Description
}

// Habits is the habit tracking tab.
type Habits struct {
	habits  *todo.Habits
	logger  *zap.Logger
	name    *widget.Entry
	message *widget.Label
	list    *widget.List
	rows    []todo.Habit
	content fyne.CanvasObject
}

// NewHabits builds the habit tab.
func NewHabits(habits *todo.Habits, logger *zap.Logger) *Habits {
	if logger == nil {
		logger = zap.NewNop()
	}
	view := &Habits{
		habits:  habits,
		logger:  logger,
		name:    widget.NewEntry(),
		message: widget.NewLabel(""),
	}
	view.name.SetPlaceHolder("New habit")
	view.name.OnSubmitted = func(string) { view.handleAdd() }

	view.list = widget.NewList(
		func() int { return len(view.rows) },
		func() fyne.CanvasObject {
			remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
			return container.NewBorder(nil, nil, nil, remove, widget.NewLabel(""))
		},
		func(id widget.ListItemID, object fyne.CanvasObject) {
			if id >= len(view.rows) {
				return
			}
			habit := view.rows[id]
			row := object.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(habit.Name)
			row.Objects[1].(*widget.Button).OnTapped = func() { view.remove(habit.ID) }
		},
	)

	add := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), view.handleAdd)
	form := container.NewBorder(nil, view.message, nil, add, view.name)
	view.content = container.NewBorder(form, nil, nil, nil, view.list)

	view.refresh()
	return view
}

// Content returns the tab body.
func (view *Habits) Content() fyne.CanvasObject {
	return view.content
}

func (view *Habits) handleAdd() {
	_, err := view.habits.Add(view.name.Text)
	switch {
	case errors.Is(err, todo.ErrEmptyTitle):
		view.message.SetText("Enter a habit name")
		return
	case errors.Is(err, todo.ErrDuplicate):
		view.message.SetText("Habit already tracked")
		return
	case err != nil:
		view.logger.Warn("add habit", zap.Error(err))
		return
	}
	view.name.SetText("")
	view.message.SetText("")
	view.refresh()
}

func (view *Habits) remove(id string) {
	if err := view.habits.Delete(id); err != nil {
		view.logger.Warn("delete habit", zap.String("id", id), zap.Error(err))
	}
	view.refresh()
}

func (view *Habits) refresh() {
	view.rows = view.habits.All()
	view.list.Refresh()
}
