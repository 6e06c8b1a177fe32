package main

import (
	"fmt"
	"testing"

	"github.com/Keildelaman/realms-arpg-sub000/internal/content"
	"github.com/Keildelaman/realms-arpg-sub000/internal/expedition"
	"github.com/Keildelaman/realms-arpg-sub000/internal/mapgen"
)

type recordingBroadcaster struct {
	types []string
}

func (b *recordingBroadcaster) BroadcastEvent(eventType string, payload any) {
	b.types = append(b.types, eventType)
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func newTestHandlers() (*IntentHandlers, *expedition.Director, *recordingLogger) {
	logger := &recordingLogger{}
	director := expedition.NewDirector(
		content.NewCatalog(),
		mapgen.NewGenerator(logger),
		&recordingBroadcaster{},
		logger,
		expedition.NopUpgrader{},
		expedition.DefaultConfig(),
	)
	return NewIntentHandlers(director, logger), director, logger
}

func TestHandleLaunchIntent(t *testing.T) {
	h, director, _ := newTestHandlers()

	msg := []byte(`{"type":"RequestLaunchExpedition","payload":{"zoneId":"blighted_hollows","tier":1,"objective":"extermination","seed":42}}`)
	if err := h.HandleMessage(msg); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	run := director.Run()
	if run == nil {
		t.Fatal("Expected a live run after the launch intent")
	}
	if run.ZoneID != "blighted_hollows" || run.Tier != 1 {
		t.Errorf("Expected blighted_hollows tier 1, got %s tier %d", run.ZoneID, run.Tier)
	}
}

func TestHandleLaunchRejectsBadObjective(t *testing.T) {
	h, director, logger := newTestHandlers()

	msg := []byte(`{"type":"RequestLaunchExpedition","payload":{"zoneId":"blighted_hollows","tier":1,"objective":"speedrun","seed":1}}`)
	if err := h.HandleMessage(msg); err != nil {
		t.Fatalf("Expected bad objective handled without error, got %v", err)
	}
	if director.Run() != nil {
		t.Error("Expected no run for an unknown objective")
	}
	if len(logger.lines) == 0 {
		t.Error("Expected the rejection to be logged")
	}
}

func TestHandleMalformedMessages(t *testing.T) {
	h, _, _ := newTestHandlers()

	if err := h.HandleMessage([]byte(`not json`)); err == nil {
		t.Error("Expected error for a malformed envelope")
	}
	if err := h.HandleMessage([]byte(`{"type":"NotifyMonsterKilled","payload":"not an object"}`)); err == nil {
		t.Error("Expected error for a malformed payload")
	}
	if err := h.HandleMessage([]byte(`{"type":"SomethingNew","payload":{}}`)); err != nil {
		t.Errorf("Expected unknown intent types dropped without error, got %v", err)
	}
}

func TestHandleRunLifecycleIntents(t *testing.T) {
	h, director, _ := newTestHandlers()

	launch := []byte(`{"type":"RequestLaunchExpedition","payload":{"zoneId":"blighted_hollows","tier":1,"objective":"extermination","seed":42}}`)
	if err := h.HandleMessage(launch); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	monsters := director.Monsters()
	if len(monsters) == 0 {
		t.Fatal("Expected monsters after launch")
	}
	kill := fmt.Appendf(nil, `{"type":"NotifyMonsterKilled","payload":{"monsterId":"%s"}}`, monsters[0].ID)
	if err := h.HandleMessage(kill); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if got := len(director.Monsters()); got != len(monsters)-1 {
		t.Errorf("Expected population to drop by one, got %d of %d", got, len(monsters))
	}

	abandon := []byte(`{"type":"RequestAbandonExpedition","payload":{}}`)
	if err := h.HandleMessage(abandon); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if director.Run().Status != expedition.RunAbandoned {
		t.Errorf("Expected abandoned run, got %s", director.Run().Status)
	}
}

func TestSequenceGeneratorMonotonic(t *testing.T) {
	sg := NewSequenceGenerator()

	if sg.Current() != 0 {
		t.Errorf("Expected counter to start at 0, got %d", sg.Current())
	}
	a := sg.Next()
	b := sg.Next()
	if b != a+1 {
		t.Errorf("Expected consecutive sequence numbers, got %d then %d", a, b)
	}
	if sg.Current() != b {
		t.Errorf("Expected Current to track the last issued number, got %d", sg.Current())
	}
}
