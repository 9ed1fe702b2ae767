package utils

import (
	"go.uber.org/zap"
)

// NewLogger builds the process logger. Development mode switches to the
// human-readable console encoder.
func NewLogger(development bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if development {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return l
}
