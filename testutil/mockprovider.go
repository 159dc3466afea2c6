package testutil

import (
	"context"
	"errors"

	"github.com/iksnae/aichat/internal/provider"
)

// FakeProvider is a scripted provider.Provider for testing. Each call to
// Complete consumes the next reply in order; once replies are exhausted it
// returns Err, or an error if none is set.
type FakeProvider struct {
	Replies []string
	Err     error

	Calls []Call
}

// Call records one Complete invocation
type Call struct {
	Messages    []provider.Message
	Temperature float32
}

func (f *FakeProvider) Name() string {
	return "fake"
}

func (f *FakeProvider) Complete(_ context.Context, messages []provider.Message, temperature float32) (string, error) {
	copied := make([]provider.Message, len(messages))
	copy(copied, messages)
	f.Calls = append(f.Calls, Call{Messages: copied, Temperature: temperature})

	if len(f.Replies) == 0 {
		if f.Err != nil {
			return "", f.Err
		}
		return "", errors.New("fake provider: no replies scripted")
	}
	reply := f.Replies[0]
	f.Replies = f.Replies[1:]
	return reply, nil
}

// FailingProvider always returns the given error
type FailingProvider struct {
	Err error
}

func (f *FailingProvider) Name() string {
	return "failing"
}

func (f *FailingProvider) Complete(context.Context, []provider.Message, float32) (string, error) {
	return "", f.Err
}
