package order

import "time"

var sampleTime = time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)
