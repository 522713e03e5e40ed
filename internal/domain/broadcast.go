package domain

import "time"

// BroadcastReport is the delivery tally of one finished broadcast.
type BroadcastReport struct {
	Delivered int
	Failed    int
	Duration  time.Duration
}
