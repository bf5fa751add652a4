package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// KeepaliveInterval is how often to send keepalive pings
const KeepaliveInterval = 30 * time.Second

// Event types for SSE
const (
	// EventTypeRankChanged is sent when a player moves on the current leaderboard
	EventTypeRankChanged = "leaderboard.rank_changed"

	// EventTypePeriodSettled is sent once a period's rewards are paid
	EventTypePeriodSettled = "season.period_settled"

	// EventTypeConnected is the first message every client receives
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// FilterQueryParam selects event types, comma separated
const FilterQueryParam = "types"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgBroadcastDropped   = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgInvalidPayload     = "Invalid SSE source event payload"
	LogMsgSubscriberReady    = "SSE subscriber registered for event types"
)
