package main

import (
	"fmt"

	"activity-signup/internal/model"
)

// capacityLine 形如 "Chess Club: 2/12 (10 spots left)"
func capacityLine(a *model.Activity) string {
	status := fmt.Sprintf("%d spots left", a.AvailableSpots())
	if a.IsFull() {
		status = "FULL"
	}
	return fmt.Sprintf("%s: %d/%d (%s)", a.Name, a.ParticipantCount(), a.MaxParticipants, status)
}
