package repository

// UserRegistry owns the set of known user IDs. It is the single source of
// truth the broadcast engine reads from.
type UserRegistry interface {
	Load() error
	Add(userID int64) bool
	All() map[int64]struct{}
	Count() int
}

// ChannelStore owns the single configured mandatory-membership channel.
// An empty Current() value means no channel is configured.
type ChannelStore interface {
	Load() error
	Set(identifier string) bool
	Clear() bool
	Current() string
}
