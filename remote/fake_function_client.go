package remote

import (
	"context"
	"encoding/json"
)

// FakeFunctionClient is an in-memory Invoker for tests. Responses and Errors
// are keyed by function name; every call is recorded in Calls.
type FakeFunctionClient struct {
	Responses map[string]json.RawMessage
	Errors    map[string]error
	Calls     []string
}

func NewFakeFunctionClient() *FakeFunctionClient {
	return &FakeFunctionClient{
		Responses: map[string]json.RawMessage{},
		Errors:    map[string]error{},
	}
}

func (f *FakeFunctionClient) Invoke(ctx context.Context, function string, body interface{}, headers map[string]string) (json.RawMessage, error) {
	f.Calls = append(f.Calls, function)
	if err, ok := f.Errors[function]; ok {
		return nil, err
	}
	if res, ok := f.Responses[function]; ok {
		return res, nil
	}
	return json.RawMessage(`{}`), nil
}

// CallCount returns how many times the named function was invoked.
func (f *FakeFunctionClient) CallCount(function string) int {
	count := 0
	for _, call := range f.Calls {
		if call == function {
			count++
		}
	}
	return count
}
