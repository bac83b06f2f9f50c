package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"medibook/pkg/model"

	"github.com/google/uuid"
)

// GenerateSlots produces the bookable slots for one working day: one
// slot per step, covering [start, end), every slot open. A start at or
// past the end yields an empty sequence, not an error. Only slots that
// fit entirely before end are emitted.
func GenerateSlots(start, end string, step time.Duration) []model.Slot {
	startMin, okStart := parseTimeOfDay(start)
	endMin, okEnd := parseTimeOfDay(end)
	stepMin := int(step.Minutes())

	slots := []model.Slot{}
	if !okStart || !okEnd || stepMin <= 0 {
		return slots
	}

	for cur := startMin; cur+stepMin <= endMin; cur += stepMin {
		slots = append(slots, model.Slot{
			ID:   uuid.New().String(),
			Time: formatTimeOfDay(cur),
		})
	}
	return slots
}

// parseTimeOfDay converts "HH:MM" to minutes since midnight.
func parseTimeOfDay(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}

	return hour*60 + minute, true
}

func formatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
