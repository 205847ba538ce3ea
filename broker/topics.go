package broker

const (
	UserEventsTopic     = "user_events"
	TaskEventsTopic     = "task_events"
	TaskListEventsTopic = "tasklist_events"
	NoteEventsTopic     = "note_events"
	JournalEventsTopic  = "journal_events"
	TrashEventsTopic    = "trash_events"
)

// TopicForEntity maps an outbox entity name to its broker subject.
func TopicForEntity(entity string) string {
	switch entity {
	case "user":
		return UserEventsTopic
	case "task":
		return TaskEventsTopic
	case "tasklist":
		return TaskListEventsTopic
	case "note":
		return NoteEventsTopic
	case "journal":
		return JournalEventsTopic
	case "trash":
		return TrashEventsTopic
	default:
		return TaskEventsTopic
	}
}
