package user

import "time"

// DefaultTrackerSize is the default maximum number of tracked users
const DefaultTrackerSize = 10000

// DefaultTrackerTTL is how long a user stays active after their last request
const DefaultTrackerTTL = 2 * time.Hour
