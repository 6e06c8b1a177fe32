package mapgen

// Params are the per-launch generation knobs. Callers derive them from the
// zone+tier tuning tables; DefaultParams gives a playable baseline.
type Params struct {
	NodeCount int     // field nodes to place
	SizeScale float64 // compactness multiplier applied to radii and spacing

	RoomRadiusBase   float64 // base room radius before tier scaling
	RoomRadiusJitter float64 // random addition on top of the base

	KNearest   int // candidate edges per node
	LoopTarget int // extra edges to add beyond the spanning tree
	LoopChance float64

	CorridorWidthBase   float64
	CorridorWidthJitter float64

	EncounterDensity     float64 // target points per walkable cell
	EncounterMinDistance float64 // spatial de-duplication radius
	EncounterMinCount    int     // tier-based floor
	EncounterTargetCount int     // size-scale target; largest candidate wins

	// Validation thresholds.
	MinLoops         int
	DeadEndRatioMin  float64
	DeadEndRatioMax  float64
	MainPathMinRatio float64

	MaxAttempts int // retry ceiling before the unconstrained fallback
}

// DefaultParams returns the baseline generation parameters for a tier.
// Tiers outside 1..7 are clamped.
func DefaultParams(tier int) Params {
	if tier < 1 {
		tier = 1
	} else if tier > 7 {
		tier = 7
	}
	return Params{
		NodeCount:            9 + tier,
		SizeScale:            1.0,
		RoomRadiusBase:       6.0 + 0.5*float64(tier),
		RoomRadiusJitter:     2.5,
		KNearest:             4,
		LoopTarget:           2 + tier/3,
		LoopChance:           0.45,
		CorridorWidthBase:    2.4,
		CorridorWidthJitter:  1.2,
		EncounterDensity:     0.012,
		EncounterMinDistance: 9.0,
		EncounterMinCount:    8 + 2*tier,
		EncounterTargetCount: 10 + 2*tier,
		MinLoops:             1,
		DeadEndRatioMin:      0.05,
		DeadEndRatioMax:      0.55,
		MainPathMinRatio:     0.3,
		MaxAttempts:          24,
	}
}
