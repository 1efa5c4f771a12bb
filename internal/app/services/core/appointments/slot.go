package appointments

import (
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/utils"
	"sort"
)

// divideRange produces back to back windows of slotMinutes inside [start,end).
// A trailing remainder shorter than slotMinutes is dropped.
func divideRange(start, end string, slotMinutes int) []models.AvailableSlot {
	if slotMinutes <= 0 {
		return nil
	}
	startMinutes, err := utils.ClockToMinutes(start)
	if err != nil {
		return nil
	}
	endMinutes, err := utils.ClockToMinutes(end)
	if err != nil {
		return nil
	}

	var out []models.AvailableSlot
	for t := startMinutes; t+slotMinutes <= endMinutes; t += slotMinutes {
		out = append(out, models.AvailableSlot{
			StartTime: utils.MinutesToClock(t),
			EndTime:   utils.MinutesToClock(t + slotMinutes),
		})
	}
	return out
}

// templateSlots expands every working hours range of the day.
func templateSlots(ranges []models.TimeRange, slotMinutes int) []models.AvailableSlot {
	var out []models.AvailableSlot
	for _, r := range ranges {
		out = append(out, divideRange(r.Start, r.End, slotMinutes)...)
	}
	return out
}

func declaredSlots(schedule []models.ScheduleSlot) []models.AvailableSlot {
	out := make([]models.AvailableSlot, 0, len(schedule))
	for _, s := range schedule {
		out = append(out, models.AvailableSlot{StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return out
}

// freeSlots drops every candidate that overlaps a booked appointment, removes
// duplicates and sorts by start time.
func freeSlots(candidates []models.AvailableSlot, booked []models.Appointment) []models.AvailableSlot {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]models.AvailableSlot, 0, len(candidates))

	for _, candidate := range candidates {
		key := candidate.StartTime + "-" + candidate.EndTime
		if _, ok := seen[key]; ok {
			continue
		}
		if overlapsAny(candidate.StartTime, candidate.EndTime, booked) {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, candidate)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime == out[j].StartTime {
			return out[i].EndTime < out[j].EndTime
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

func overlapsAny(start, end string, booked []models.Appointment) bool {
	for _, appointment := range booked {
		if appointment.Status == models.AppointmentStatusCancelled {
			continue
		}
		if utils.Overlaps(start, end, appointment.StartTime, appointment.EndTime) {
			return true
		}
	}
	return false
}

// withinRanges reports whether [start,end) lies completely inside one range.
func withinRanges(start, end string, ranges []models.TimeRange) bool {
	for _, r := range ranges {
		if r.Start <= start && end <= r.End {
			return true
		}
	}
	return false
}

func rangesFromSchedule(schedule []models.ScheduleSlot) []models.TimeRange {
	out := make([]models.TimeRange, 0, len(schedule))
	for _, s := range schedule {
		out = append(out, models.TimeRange{Start: s.StartTime, End: s.EndTime})
	}
	return out
}
