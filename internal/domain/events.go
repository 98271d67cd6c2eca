package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventActionLogged   EventType = "ActionLogged"
	EventStoryOpened    EventType = "StoryOpened"
	EventStoryClosed    EventType = "StoryClosed"
	EventControlToggled EventType = "ControlToggled"
	EventError          EventType = "Error"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ActionLoggedEvent is emitted when a component fires a callback inside a story
type ActionLoggedEvent struct {
	Action Action
}

func (e ActionLoggedEvent) Type() EventType { return EventActionLogged }

// StoryOpenedEvent is emitted when a story canvas is built and shown
type StoryOpenedEvent struct {
	StoryID string
}

func (e StoryOpenedEvent) Type() EventType { return EventStoryOpened }

// StoryClosedEvent is emitted after a story canvas has released its resources
type StoryClosedEvent struct {
	StoryID string
}

func (e StoryClosedEvent) Type() EventType { return EventStoryClosed }

// ControlToggledEvent is emitted when a story control changes value
type ControlToggledEvent struct {
	StoryID string
	Control string
	Value   bool
}

func (e ControlToggledEvent) Type() EventType { return EventControlToggled }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
