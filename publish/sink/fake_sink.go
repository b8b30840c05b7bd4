package sink

// FakeSink records pushed events for tests.
type FakeSink struct {
	Events []*PublishEvent
}

func NewFakeSink() *FakeSink {
	return &FakeSink{}
}

func (s *FakeSink) Push(event *PublishEvent) error {
	s.Events = append(s.Events, event)
	return nil
}
