package service

import (
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ticket-calendar/internal/config"
)

func TestMillisIDGeneratorIsStrictlyIncreasing(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{t: time.UnixMilli(1_700_000_000_000)}
	gen := NewMillisIDGenerator(clock.Now)

	var last int64
	for i := 0; i < 10; i++ {
		if i == 5 {
			clock.Advance(-time.Second)
		}
		id, err := strconv.ParseInt(gen.NewID(), 10, 64)
		if err != nil {
			t.Fatal(err)
		}
		if id <= last {
			t.Fatalf("id %d not greater than %d", id, last)
		}
		last = id
	}
	if first := NewMillisIDGenerator(clock.Now).NewID(); first != "1699999999000" {
		t.Fatalf("fresh generator id = %s", first)
	}
}

func TestNewIDGenerator(t *testing.T) {
	t.Parallel()
	if _, ok := NewIDGenerator(config.IDStrategyMillis, nil).(*MillisIDGenerator); !ok {
		t.Fatal("millis strategy did not return MillisIDGenerator")
	}
	id := NewIDGenerator(config.IDStrategyUUID, nil).NewID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("uuid strategy returned %q: %v", id, err)
	}
}
