package services

import "time"

const (
	KeyRateLimit = "numbergame:ratelimit:%s:%s"

	ActionPlayRound = "play_round"

	DefaultRateLimitWindow = time.Minute
)
