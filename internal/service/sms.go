package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// SMSSender delivers notification texts. The default implementation only
// logs; a real gateway can be plugged in without touching handlers.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

type LogSMSSender struct {
	log zerolog.Logger
}

func NewLogSMSSender(log zerolog.Logger) *LogSMSSender {
	return &LogSMSSender{log: log}
}

func (s *LogSMSSender) Send(_ context.Context, to, body string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return errors.New("recipient phone number is empty")
	}
	s.log.Info().Str("to", to).Str("body", body).Msg("sms (log sender)")
	return nil
}
