package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchSubmitted EventType = "SearchSubmitted"
	EventPageRequested   EventType = "PageRequested"
	EventPageLoaded      EventType = "PageLoaded"
	EventFetchFailed     EventType = "FetchFailed"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchSubmittedEvent is emitted when a new page-0 search starts a session
type SearchSubmittedEvent struct {
	Query string
}

func (e SearchSubmittedEvent) Type() EventType { return EventSearchSubmitted }

// PageRequestedEvent is emitted right before a request is issued
type PageRequestedEvent struct {
	Query string
	Page  int
	Retry bool
}

func (e PageRequestedEvent) Type() EventType { return EventPageRequested }

// PageLoadedEvent is emitted after a page was merged into the result list
type PageLoadedEvent struct {
	Query     string
	Page      int
	Received  int
	TotalHits int
}

func (e PageLoadedEvent) Type() EventType { return EventPageLoaded }

// FetchFailedEvent is emitted when a request failed
type FetchFailedEvent struct {
	Query string
	Page  int
	Err   error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	Variant string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
