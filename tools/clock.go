package tools

import (
	"context"

	"github.com/yadavanujkumar/reagent"
)

// clockFormat is the timestamp layout presented to the model.
const clockFormat = "2006-01-02 15:04:05"

// NewCurrentTime creates a tool that reports the current date and time.
// The input is ignored. Pass a MockTimeProvider in tests to pin the clock.
func NewCurrentTime(tp reagent.TimeProvider) *reagent.ToolFunc {
	return reagent.NewToolFunc(
		"CurrentTime",
		"Useful for getting the current date and time. Input should be an "+
			"empty string.",
		func(_ context.Context, _ string) (string, error) {
			return "Current date and time: " + tp.Format(clockFormat), nil
		},
	)
}
