package sink

import (
	"encoding/json"

	Logger "github.com/seoforge/seoforge/utils/log"
)

type StdErrSink struct{}

func NewStdErrSink() *StdErrSink {
	return &StdErrSink{}
}

func (s *StdErrSink) Push(event *PublishEvent) error {
	if event == nil {
		return nil
	}
	serialized, err := json.Marshal(event)
	if err != nil {
		return err
	}
	Logger.Log.Info("publish event: ", string(serialized))
	return nil
}
