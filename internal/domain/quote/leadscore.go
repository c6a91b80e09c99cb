package quote

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
)

// BudgetRanges tabla de presupuestos, de menor a mayor. El índice define el orden.
var BudgetRanges = []string{"under-5k", "5k-10k", "10k-25k", "25k-50k", "50k-plus"}

var budgetPoints = []int{5, 10, 20, 30, 40}

// Timelines tabla de plazos, del más urgente al más holgado.
var Timelines = []string{"asap", "1-month", "1-3-months", "3-6-months", "flexible"}

var timelinePoints = []int{25, 20, 15, 10, 5}

const (
	pointsPerService = 5
	maxServicePoints = 15
	longDescription  = 200 // runas
	shortDescription = 50
	longDescPoints   = 10
	shortDescPoints  = 5
	companyPoints    = 5
	websitePoints    = 5
	maxScore         = 100
	defaultHotScore  = 70
	defaultWarmScore = 40
)

// ScoringPolicy umbrales de calidad del lead. Se cargan desde configuración.
type ScoringPolicy struct {
	HotThreshold  int
	WarmThreshold int
}

// DefaultScoringPolicy ≥70 hot, ≥40 warm, resto cold.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{HotThreshold: defaultHotScore, WarmThreshold: defaultWarmScore}
}

// Validate exige 0 ≤ warm ≤ hot ≤ 100.
func (p ScoringPolicy) Validate() error {
	if p.WarmThreshold < 0 || p.HotThreshold > maxScore || p.WarmThreshold > p.HotThreshold {
		return fmt.Errorf("%w: umbrales de lead inválidos (hot=%d, warm=%d)",
			domain.ErrInvalidInput, p.HotThreshold, p.WarmThreshold)
	}
	return nil
}

// Quality cuantiza el score en tres buckets.
func (p ScoringPolicy) Quality(score int) entity.LeadQuality {
	switch {
	case score >= p.HotThreshold:
		return entity.LeadQualityHot
	case score >= p.WarmThreshold:
		return entity.LeadQualityWarm
	default:
		return entity.LeadQualityCold
	}
}

// LeadScore resultado de ComputeLeadScore.
type LeadScore struct {
	Score   int
	Quality entity.LeadQuality
}

// ComputeLeadScore calcula el score (0..100) a partir de los atributos de la solicitud.
// Es determinista y monótono: mayor presupuesto o plazo más corto nunca bajan el score.
func ComputeLeadScore(q entity.QuoteRequest, p ScoringPolicy) LeadScore {
	score := 0
	if i := indexOf(BudgetRanges, q.BudgetRange); i >= 0 {
		score += budgetPoints[i]
	}
	if i := indexOf(Timelines, q.Timeline); i >= 0 {
		score += timelinePoints[i]
	}
	score += min(len(q.Services)*pointsPerService, maxServicePoints)

	switch n := utf8.RuneCountInString(strings.TrimSpace(q.Description)); {
	case n >= longDescription:
		score += longDescPoints
	case n >= shortDescription:
		score += shortDescPoints
	}
	if strings.TrimSpace(q.CompanyName) != "" {
		score += companyPoints
	}
	if strings.TrimSpace(q.Website) != "" {
		score += websitePoints
	}

	score = max(0, min(score, maxScore))
	return LeadScore{Score: score, Quality: p.Quality(score)}
}

func indexOf(table []string, key string) int {
	for i, k := range table {
		if k == key {
			return i
		}
	}
	return -1
}
