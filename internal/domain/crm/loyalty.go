package crm

// LoyaltyCycle is the number of stamps on a full card.
const LoyaltyCycle = 10

type LoyaltyCard struct {
	TotalVisits int64 `json:"total_visits"`
	Stamps      int64 `json:"stamps"`
	Level       int64 `json:"level"`
	Remaining   int64 `json:"remaining"`
	Complete    bool  `json:"complete"`
}

func Loyalty(totalVisits int64) LoyaltyCard {
	if totalVisits <= 0 {
		return LoyaltyCard{Remaining: LoyaltyCycle}
	}

	stamps := totalVisits % LoyaltyCycle
	if stamps == 0 {
		stamps = LoyaltyCycle
	}

	return LoyaltyCard{
		TotalVisits: totalVisits,
		Stamps:      stamps,
		Level:       (totalVisits + LoyaltyCycle - 1) / LoyaltyCycle,
		Remaining:   LoyaltyCycle - stamps,
		Complete:    stamps == LoyaltyCycle,
	}
}
