package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/mancala/internal/game/core"
	"github.com/mitchelldurbincs/mancala/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	// If no filter is set, interested in all events
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	// Create the base event log
	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.Stringer("starting_player", e.StartingPlayer)

	case *events.GameEndedEvent:
		logEvent.
			Stringer("winner", e.Winner).
			Bool("draw", e.Draw).
			Int("score_a", e.Scores.Of(core.PlayerA)).
			Int("score_b", e.Scores.Of(core.PlayerB)).
			Dur("duration", e.Duration).
			Int("final_turn", e.FinalTurn)

	case *events.GameResetEvent:
		logEvent.Str("previous_game_id", e.PreviousGame)

	case *events.MoveExecutedEvent:
		logEvent.
			Stringer("player", e.Metadata.Player).
			Int("turn", e.Metadata.Turn).
			Int("pit", int(e.Pit)).
			Int("sown", e.Sown).
			Int("landing", int(e.Landing)).
			Bool("extra_turn", e.ExtraTurn).
			Bool("automated", e.Automated)

	case *events.MoveRejectedEvent:
		logEvent.
			Stringer("player", e.Metadata.Player).
			Int("turn", e.Metadata.Turn).
			Int("pit", int(e.Pit)).
			Str("reason", e.Reason)

	case *events.SeedsCapturedEvent:
		logEvent.
			Stringer("player", e.Metadata.Player).
			Int("turn", e.Metadata.Turn).
			Int("landing", int(e.Landing)).
			Int("opposite", int(e.Opposite)).
			Int("seeds", e.Seeds)

	case *events.ExtraTurnEvent:
		logEvent.
			Stringer("player", e.Metadata.Player).
			Int("turn", e.Metadata.Turn)

	case *events.BoardSweptEvent:
		logEvent.
			Int("swept_a", e.Swept.Of(core.PlayerA)).
			Int("swept_b", e.Swept.Of(core.PlayerB))

	case *events.SearchCompletedEvent:
		logEvent.
			Stringer("player", e.Metadata.Player).
			Int("turn", e.Metadata.Turn).
			Int("pit", int(e.Pit)).
			Int("value", e.Value).
			Int("depth", e.Depth).
			Int64("nodes", e.Nodes).
			Dur("duration", e.Duration)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	// Send the log
	logEvent.Msg("Game event")
}
