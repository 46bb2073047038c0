// internal/recommend/scorer.go
package recommend

import (
	"strings"

	"recommendation-workers/internal/models"
	"recommendation-workers/pkg/registry"
)

// Scorer computes match scores and justification reasons for a user
// profile against catalog products. It is a pure function of its inputs:
// no I/O, no randomness, no state mutation, so one instance is safe to
// share across goroutines.
type Scorer struct {
	keywords *registry.KeywordRegistry
}

// NewScorer builds a Scorer over a keyword registry. Pass nil to use the
// compiled-in default tables.
func NewScorer(keywords *registry.KeywordRegistry) *Scorer {
	if keywords == nil {
		keywords = DefaultKeywords()
	}
	return &Scorer{keywords: keywords}
}

// Score returns the match percentage in [0, 100] for a product. When a
// curated ProductProfile exists the profile-based path is used, otherwise
// the heuristic name/category path. The price-fit component is added to
// either path before clamping.
func (s *Scorer) Score(up *models.UserProfile, product *models.Product, pp *models.ProductProfile, preset Preset) int {
	var score int
	if pp != nil {
		score = s.profileScore(up, pp, preset.Weights)
	} else {
		score = s.heuristicScore(up, product, preset.Weights)
	}
	score += preset.Prices.Points(up.Budget, float64(product.Price))

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

func (s *Scorer) profileScore(up *models.UserProfile, pp *models.ProductProfile, w Weights) int {
	score := 0

	if containsString(pp.TargetUsage, up.Usage) {
		score += w.UsageMatch
	}
	if containsString(pp.RecommendedExperience, up.Experience) {
		score += w.ExperienceMatch
	}

	switch up.Gaming {
	case models.GamingNotImportant:
		score += w.GamingNeutral
	case models.GamingCasual:
		if pp.GamingPerformance == models.GamingCasual {
			score += w.GamingCasual
		} else {
			score += w.GamingCasualOff
		}
	case models.GamingRegular:
		if pp.GamingPerformance == models.GamingCasual || pp.GamingPerformance == models.GamingRegular {
			score += w.GamingRegular
		} else {
			score += w.GamingRegularOff
		}
	case models.GamingHardcore:
		if pp.GamingPerformance == models.GamingHardcore {
			score += w.GamingHardcore
		}
	}

	common := 0
	for _, sw := range up.Software {
		if containsString(pp.SoftwareCompatibility, sw) {
			common++
		}
	}
	if common > 0 {
		pts := common * w.SoftwarePerTag
		if pts > w.SoftwareCap {
			pts = w.SoftwareCap
		}
		score += pts
	}

	if containsString(pp.Strengths, up.Priority) {
		score += w.StrengthMatch
	}

	return score
}

func (s *Scorer) heuristicScore(up *models.UserProfile, product *models.Product, w Weights) int {
	score := w.HeuristicBase

	name := strings.ToLower(product.Name)
	if strings.TrimSpace(name) == "" {
		return score
	}

	_, ptype := NormalizeCategories(product.Category, name)

	switch up.Usage {
	case models.UsageGaming:
		if containsAny(name, s.keywords.GamingKeywords) {
			score += w.GamingNameBonus
		}
		switch {
		case ptype.Desktop:
			score += w.GamingDesktop
		case ptype.Laptop:
			score += w.GamingLaptop
		case ptype.Peripheral:
			score += w.GamingPeripheral
		case ptype.Monitor:
			score += w.GamingMonitor
		}
	case models.UsageWork:
		switch {
		case ptype.Laptop:
			score += w.WorkLaptop
		case ptype.Monitor:
			score += w.WorkMonitor
		case ptype.Peripheral:
			score += w.WorkPeripheral
		}
	case models.UsageStudy:
		if ptype.Laptop {
			score += w.StudyLaptop
		} else if float64(product.Price) < w.StudyPriceCap {
			score += w.StudyCheap
		}
	case models.UsageMixed:
		score += w.MixedUsage
	}

	if up.Gaming != models.GamingNotImportant {
		score += s.tierBonus(name, up.Gaming, w)
	}

	score += portabilityBonus(up.Portability, ptype, w)

	return score
}

// tierBonus classifies the product as high-end/mid/entry gaming hardware
// by registry keywords and rewards the tier the user actually plays at.
func (s *Scorer) tierBonus(name, gaming string, w Weights) int {
	highEnd := containsAny(name, s.keywords.TierKeywords(registry.TierHighEnd))
	mid := containsAny(name, s.keywords.TierKeywords(registry.TierMid))
	entry := containsAny(name, s.keywords.TierKeywords(registry.TierEntry))

	switch gaming {
	case models.GamingCasual:
		if entry || mid {
			return w.TierCasual
		}
	case models.GamingRegular:
		if mid || highEnd {
			return w.TierRegular
		}
	case models.GamingHardcore:
		if highEnd {
			return w.TierHardcore
		}
		if mid {
			return w.TierHardcoreMid
		}
	}
	return 0
}

func portabilityBonus(portability string, ptype ProductType, w Weights) int {
	switch portability {
	case models.PortabilityLaptop:
		switch {
		case ptype.Laptop:
			return w.PortabilityExact
		case ptype.Desktop:
			return w.PortabilityOpposite
		case ptype.Peripheral, ptype.Monitor:
			return w.LaptopAccessory
		}
	case models.PortabilityDesktop:
		switch {
		case ptype.Desktop:
			return w.PortabilityExact
		case ptype.Laptop:
			return w.PortabilityOpposite
		case ptype.Peripheral, ptype.Monitor:
			return w.DesktopAccessory
		}
	case models.PortabilityEither:
		switch {
		case ptype.Desktop, ptype.Laptop:
			return w.EitherSystem
		case ptype.Peripheral, ptype.Monitor:
			return w.EitherAccessory
		}
	}
	return 0
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
