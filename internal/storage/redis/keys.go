package redis

// Key prefix for all table data
const keyPrefix = "holdem"

// eventsKey returns the Redis key for the event journal list
func eventsKey() string {
	return keyPrefix + ":events"
}

// sequenceKey returns the Redis key for the event sequence counter
func sequenceKey() string {
	return keyPrefix + ":events:seq"
}

// snapshotKey returns the Redis key for the latest table snapshot
func snapshotKey() string {
	return keyPrefix + ":snapshot"
}
