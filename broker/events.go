package broker

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	TaskCreated   EventType = "task.created"
	TaskUpdated   EventType = "task.updated"
	TaskCompleted EventType = "task.completed"
	TaskMoved     EventType = "task.moved"
	TaskStatus    EventType = "task.status_changed"
	TaskDeleted   EventType = "task.deleted"
	TaskRestored  EventType = "task.restored"

	TaskListCreated  EventType = "tasklist.created"
	TaskListUpdated  EventType = "tasklist.updated"
	TaskListPinned   EventType = "tasklist.pin_toggled"
	TaskListDeleted  EventType = "tasklist.deleted"
	TaskListRestored EventType = "tasklist.restored"

	NoteCreated  EventType = "note.created"
	NoteUpdated  EventType = "note.updated"
	NotePinned   EventType = "note.pin_toggled"
	NoteOpened   EventType = "note.open_toggled"
	NoteDeleted  EventType = "note.deleted"
	NoteRestored EventType = "note.restored"

	JournalCreated EventType = "journal.created"
	JournalUpdated EventType = "journal.updated"
	JournalDeleted EventType = "journal.deleted"

	UserCreated EventType = "user.created"
	UserUpdated EventType = "user.updated"

	TrashEmptied EventType = "trash.emptied"
)
