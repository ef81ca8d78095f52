package commands

import (
	"github.com/sirupsen/logrus"

	"hnsearch/internal/eventbus"
)

var loggedEvents = []eventbus.EventType{
	eventbus.EventSearchSubmitted,
	eventbus.EventPageRequested,
	eventbus.EventPageLoaded,
	eventbus.EventFetchFailed,
	eventbus.EventConfigLoaded,
	eventbus.EventConfigSaved,
}

// subscribeEventLog writes every domain event to log and returns a
// function that removes the subscriptions
func subscribeEventLog(bus eventbus.EventBus, log logrus.FieldLogger) func() {
	unsubscribe := make([]func(), 0, len(loggedEvents))
	for _, t := range loggedEvents {
		unsubscribe = append(unsubscribe, bus.Subscribe(t, func(e eventbus.DomainEvent) {
			logEvent(log, e)
		}))
	}
	return func() {
		for _, u := range unsubscribe {
			u()
		}
	}
}

func logEvent(log logrus.FieldLogger, e eventbus.DomainEvent) {
	entry := log.WithField("event", string(e.Type()))
	switch ev := e.(type) {
	case eventbus.SearchSubmittedEvent:
		entry.WithField("query", ev.Query).Info("search submitted")
	case eventbus.PageRequestedEvent:
		entry.WithFields(logrus.Fields{
			"query": ev.Query,
			"page":  ev.Page,
			"retry": ev.Retry,
		}).Info("page requested")
	case eventbus.PageLoadedEvent:
		entry.WithFields(logrus.Fields{
			"query":    ev.Query,
			"page":     ev.Page,
			"received": ev.Received,
			"total":    ev.TotalHits,
		}).Info("page loaded")
	case eventbus.FetchFailedEvent:
		entry.WithFields(logrus.Fields{
			"query": ev.Query,
			"page":  ev.Page,
		}).WithError(ev.Err).Warn("fetch failed")
	case eventbus.ConfigLoadedEvent:
		entry.WithFields(logrus.Fields{
			"path":    ev.Path,
			"variant": ev.Variant,
		}).Info("config loaded")
	case eventbus.ConfigSavedEvent:
		entry.WithField("path", ev.Path).Info("config saved")
	default:
		entry.Debug("event")
	}
}
