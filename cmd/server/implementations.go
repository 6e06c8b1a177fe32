package main

import (
	"encoding/json"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/Keildelaman/realms-arpg-sub000/internal/protocol"
	"github.com/Keildelaman/realms-arpg-sub000/internal/ws"
)

// BroadcasterImpl implements Broadcaster using the WebSocket hub.
type BroadcasterImpl struct {
	hub      *ws.Hub
	sequence SequenceGenerator
	logger   Logger
}

func NewBroadcaster(hub *ws.Hub, sequence SequenceGenerator, logger Logger) *BroadcasterImpl {
	return &BroadcasterImpl{
		hub:      hub,
		sequence: sequence,
		logger:   logger,
	}
}

func (b *BroadcasterImpl) BroadcastEvent(eventType string, payload any) {
	envelope := protocol.PatchEnvelope{
		Sequence: b.sequence.Next(),
		Type:     eventType,
		Payload:  payload,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		b.logger.Printf("failed to marshal %s: %v", eventType, err)
		return
	}
	b.hub.Broadcast(data)
}

// LoggerImpl adapts logrus to the Printf-style Logger interface.
type LoggerImpl struct {
	log *logrus.Logger
}

func NewLogger(log *logrus.Logger) *LoggerImpl {
	return &LoggerImpl{log: log}
}

func (l *LoggerImpl) Printf(format string, v ...any) {
	l.log.Infof(format, v...)
}

// SequenceGeneratorImpl implements SequenceGenerator using an atomic counter.
type SequenceGeneratorImpl struct {
	counter uint64
}

func NewSequenceGenerator() *SequenceGeneratorImpl {
	return &SequenceGeneratorImpl{}
}

func (sg *SequenceGeneratorImpl) Next() uint64 {
	return atomic.AddUint64(&sg.counter, 1)
}

func (sg *SequenceGeneratorImpl) Current() uint64 {
	return atomic.LoadUint64(&sg.counter)
}
