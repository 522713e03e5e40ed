package domain

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle              UserState = "idle"
	StateAwaitingChannelID UserState = "awaiting_channel_id"
	StateAwaitingBroadcast UserState = "awaiting_broadcast_text"
)
