// internal/recommend/presets.go
package recommend

// Weights holds every point value used by the scorer. Both presets share
// the same weight table today; the struct exists so a future table change
// is a value edit, not an algorithm edit.
type Weights struct {
	// Profile-based path.
	UsageMatch       int
	ExperienceMatch  int
	GamingNeutral    int
	GamingCasual     int
	GamingCasualOff  int
	GamingRegular    int
	GamingRegularOff int
	GamingHardcore   int
	SoftwarePerTag   int
	SoftwareCap      int
	StrengthMatch    int

	// Heuristic path.
	HeuristicBase    int
	GamingNameBonus  int
	GamingDesktop    int
	GamingLaptop     int
	GamingPeripheral int
	GamingMonitor    int
	WorkLaptop       int
	WorkMonitor      int
	WorkPeripheral   int
	StudyLaptop      int
	StudyCheap       int
	StudyPriceCap    float64
	MixedUsage       int

	// Gaming-tier bonus (heuristic path).
	TierCasual      int
	TierRegular     int
	TierHardcore    int
	TierHardcoreMid int

	// Portability bonus (heuristic path).
	PortabilityExact    int
	PortabilityOpposite int
	LaptopAccessory     int
	DesktopAccessory    int
	EitherSystem        int
	EitherAccessory     int
}

func DefaultWeights() Weights {
	return Weights{
		UsageMatch:       25,
		ExperienceMatch:  20,
		GamingNeutral:    15,
		GamingCasual:     20,
		GamingCasualOff:  10,
		GamingRegular:    20,
		GamingRegularOff: 5,
		GamingHardcore:   25,
		SoftwarePerTag:   5,
		SoftwareCap:      20,
		StrengthMatch:    15,

		HeuristicBase:    20,
		GamingNameBonus:  25,
		GamingDesktop:    30,
		GamingLaptop:     25,
		GamingPeripheral: 15,
		GamingMonitor:    20,
		WorkLaptop:       25,
		WorkMonitor:      20,
		WorkPeripheral:   10,
		StudyLaptop:      20,
		StudyCheap:       15,
		StudyPriceCap:    1000,
		MixedUsage:       15,

		TierCasual:      15,
		TierRegular:     20,
		TierHardcore:    25,
		TierHardcoreMid: 15,

		PortabilityExact:    25,
		PortabilityOpposite: 2,
		LaptopAccessory:     10,
		DesktopAccessory:    15,
		EitherSystem:        20,
		EitherAccessory:     15,
	}
}

// PriceBand awards Points when price falls inside [Min, Max]; Max == 0
// means unbounded, MinExclusive makes the lower bound strict. Bands are
// evaluated in order, first hit wins.
type PriceBand struct {
	Min          float64
	Max          float64
	MinExclusive bool
	Points       int
}

func (b PriceBand) matches(price float64) bool {
	if b.MinExclusive {
		if price <= b.Min {
			return false
		}
	} else if price < b.Min {
		return false
	}
	return b.Max == 0 || price <= b.Max
}

// PriceTable maps a budget band to ordered price bands plus a default
// when no band hits, and a fallback for unknown budget values.
type PriceTable struct {
	Name     string
	Bands    map[string][]PriceBand
	Defaults map[string]int
	Fallback int
}

func (t PriceTable) Points(budget string, price float64) int {
	bands, ok := t.Bands[budget]
	if !ok {
		return t.Fallback
	}
	for _, b := range bands {
		if b.matches(price) {
			return b.Points
		}
	}
	return t.Defaults[budget]
}

// Preset names a complete scoring configuration: threshold, result cap
// and price table. The interactive and batch call sites of the original
// system used different thresholds and price tables; both are preserved
// here as named configurations instead of being silently unified.
type Preset struct {
	Name     string
	MinScore int
	Limit    int
	Weights  Weights
	Prices   PriceTable
}

const (
	PresetNameInteractive = "interactive"
	PresetNameBatch       = "batch"
)

func interactivePrices() PriceTable {
	return PriceTable{
		Name: PresetNameInteractive,
		Bands: map[string][]PriceBand{
			"low": {
				{Max: 500, Points: 25},
				{Max: 800, Points: 20},
				{Max: 1000, Points: 10},
			},
			"medium": {
				{Min: 600, Max: 1500, Points: 25},
				{Min: 400, Max: 2000, Points: 20},
				{Min: 300, Max: 2500, Points: 15},
			},
			"high": {
				{Min: 1500, Max: 3000, Points: 25},
				{Min: 1200, Max: 4000, Points: 20},
			},
			"unlimited": {
				{Min: 1500, MinExclusive: true, Points: 25},
				{Min: 1000, MinExclusive: true, Points: 20},
			},
		},
		Defaults: map[string]int{"low": 5, "medium": 8, "high": 15, "unlimited": 15},
		Fallback: 15,
	}
}

func batchPrices() PriceTable {
	return PriceTable{
		Name: PresetNameBatch,
		Bands: map[string][]PriceBand{
			"low": {
				{Max: 500, Points: 25},
				{Max: 800, Points: 15},
			},
			"medium": {
				{Min: 400, Max: 1200, Points: 25},
				{Min: 300, Max: 1500, Points: 15},
			},
			"high": {
				{Min: 1000, Max: 2500, Points: 25},
				{Min: 800, Max: 3000, Points: 20},
			},
			"unlimited": {
				{Min: 1000, MinExclusive: true, Points: 25},
			},
		},
		Defaults: map[string]int{"low": 0, "medium": 10, "high": 15, "unlimited": 20},
		Fallback: 10,
	}
}

// PresetInteractive is the threshold/table pair used by the interactive
// request path.
func PresetInteractive() Preset {
	return Preset{
		Name:     PresetNameInteractive,
		MinScore: 15,
		Limit:    10,
		Weights:  DefaultWeights(),
		Prices:   interactivePrices(),
	}
}

// PresetBatch is the stricter variant used by the batch path. The two
// thresholds were never reconciled upstream; keep both until product
// decides.
func PresetBatch() Preset {
	return Preset{
		Name:     PresetNameBatch,
		MinScore: 50,
		Limit:    10,
		Weights:  DefaultWeights(),
		Prices:   batchPrices(),
	}
}

// PresetByName resolves a caller-supplied mode; unknown values fall back
// to interactive.
func PresetByName(name string) Preset {
	if name == PresetNameBatch {
		return PresetBatch()
	}
	return PresetInteractive()
}

// PresetOverride adjusts a named preset from configuration. Zero values
// leave the compiled-in setting untouched.
type PresetOverride struct {
	MinScore int
	Limit    int
}

// PresetByNameWithOverrides resolves the preset and applies any
// configured override for it.
func PresetByNameWithOverrides(name string, overrides map[string]PresetOverride) Preset {
	preset := PresetByName(name)
	o, ok := overrides[preset.Name]
	if !ok {
		return preset
	}
	if o.MinScore > 0 {
		preset.MinScore = o.MinScore
	}
	if o.Limit > 0 {
		preset.Limit = o.Limit
	}
	return preset
}
