package mapgen

import "fmt"

// validateLayout checks the candidate map against the layout-quality
// thresholds. Any failure discards the attempt.
func validateLayout(m *Map, p Params) error {
	if m.Metrics.Loops < p.MinLoops {
		return fmt.Errorf("loops %d below minimum %d", m.Metrics.Loops, p.MinLoops)
	}
	if m.Metrics.DeadEndRatio < p.DeadEndRatioMin || m.Metrics.DeadEndRatio > p.DeadEndRatioMax {
		return fmt.Errorf("dead-end ratio %.2f outside [%.2f, %.2f]",
			m.Metrics.DeadEndRatio, p.DeadEndRatioMin, p.DeadEndRatioMax)
	}
	minMainPath := int(float64(len(m.Rooms)) * p.MainPathMinRatio)
	if m.Metrics.MainPathRooms < minMainPath {
		return fmt.Errorf("main path %d rooms, need at least %d", m.Metrics.MainPathRooms, minMainPath)
	}
	if len(m.EncounterPoints) < len(m.Rooms) {
		return fmt.Errorf("encounter points %d below room count %d", len(m.EncounterPoints), len(m.Rooms))
	}
	return nil
}
