package webhook

import (
	"testing"
	"time"
)

func TestReplayLogSeen(t *testing.T) {
	l := NewReplayLog(time.Minute)

	if l.Seen("msg_1") {
		t.Error("first sighting should not be a replay")
	}
	if !l.Seen("msg_1") {
		t.Error("second sighting should be a replay")
	}
	if l.Seen("msg_2") {
		t.Error("different delivery id should not be a replay")
	}
}

func TestReplayLogPrunesExpired(t *testing.T) {
	l := NewReplayLog(10 * time.Millisecond)

	l.Seen("msg_1")
	time.Sleep(15 * time.Millisecond)

	if l.Seen("msg_1") {
		t.Error("expired entry should have been pruned")
	}
}
