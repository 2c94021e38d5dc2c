package health

import (
	"math"

	"github.com/hamed0406/nethealth/internal/domain"
)

// Weights used to combine the group results into one confidence score.
// They sum to 1.0.
var Weights = map[string]float64{
	"tcp":  0.45,
	"http": 0.35,
	"dns":  0.20,
}

// Confidence combines the group results into a 0-100 score, rounded to one
// decimal. A group that missed its pass threshold contributes nothing, even
// when it had partial successes: the threshold is an all-or-nothing gate.
func Confidence(checks map[string]domain.GroupResult) float64 {
	var sum float64
	for name, weight := range Weights {
		group, ok := checks[name]
		if !ok || !group.Success || group.TotalCount == 0 {
			continue
		}
		sum += weight * float64(group.SuccessCount) / float64(group.TotalCount)
	}
	return math.Round(sum*1000) / 10
}
