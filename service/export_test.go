package service

import "time"

// SetRetryClock pins the scheduler clock for tests in service_test.
func SetRetryClock(p RetryPlanner, now func() time.Time) {
	p.(*retryScheduler).now = now
}

// SetPublisherClock pins the publisher clock for tests in service_test.
func SetPublisherClock(p StoryPublisher, now func() time.Time) {
	p.(*publisher).now = now
}
