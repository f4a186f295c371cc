package profile

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Level is the ordinal preference scale used for every profile key except
// Budget. Values outside low/medium/high rank as low.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

var levelRanks = map[Level]int{
	LevelLow:    0,
	LevelMedium: 1,
	LevelHigh:   2,
}

func (l Level) Rank() int {
	return levelRanks[Level(strings.ToLower(strings.TrimSpace(string(l))))]
}

// Meets reports whether l satisfies the required level.
func (l Level) Meets(required Level) bool {
	return l.Rank() >= required.Rank()
}

const (
	// MinimumBudget is the floor substituted when a profile carries no
	// usable budget, in INR.
	MinimumBudget = 25000

	// USDToINR is the fixed conversion rate applied to dollar amounts.
	USDToINR = 83
)

// Rupees is an INR amount that tolerates the shapes the model emits:
// numbers, numeric strings, comma thousands separators, and dollar amounts
// (converted at USDToINR). Unparsable input decodes to zero so a bad budget
// never aborts extraction.
type Rupees int64

func (r *Rupees) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*r = 0
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*r = 0
			return nil
		}
		v, err := ParseBudget(s)
		if err != nil {
			*r = 0
			return nil
		}
		*r = Rupees(v)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*r = 0
		return nil
	}
	if f < 0 {
		f = 0
	}
	*r = Rupees(f)
	return nil
}

// ParseBudget extracts an INR amount from free-form text such as "80,000",
// "INR 75000" or "$1000". Dollar amounts convert at 1 USD = 83 INR.
func ParseBudget(s string) (int64, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return 0, errors.New("empty budget")
	}

	usd := strings.Contains(lower, "$") || strings.Contains(lower, "usd")

	cleaned := strings.ReplaceAll(lower, ",", "")
	start := -1
	end := len(cleaned)
	for i, ch := range cleaned {
		if ch >= '0' && ch <= '9' || (start != -1 && ch == '.') {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			end = i
			break
		}
	}
	if start == -1 {
		return 0, errors.New("no numeric budget token")
	}

	amount, err := strconv.ParseFloat(cleaned[start:end], 64)
	if err != nil {
		return 0, err
	}
	if amount < 0 {
		amount = 0
	}
	if usd {
		amount *= USDToINR
	}
	return int64(amount), nil
}

// Profile is the fixed seven-key preference schema. The JSON tags keep the
// original spaced key names so model output binds without remapping.
type Profile struct {
	GPUIntensity    Level  `json:"GPU intensity"`
	DisplayQuality  Level  `json:"Display quality"`
	Portability     Level  `json:"Portability"`
	Multitasking    Level  `json:"Multitasking"`
	ProcessingSpeed Level  `json:"Processing speed"`
	StorageType     Level  `json:"Storage type"`
	Budget          Rupees `json:"Budget"`
}

// LevelKeys names the six scored keys in their fixed order.
var LevelKeys = [6]string{
	"GPU intensity",
	"Display quality",
	"Portability",
	"Multitasking",
	"Processing speed",
	"Storage type",
}

// LevelValues returns the six non-Budget values in LevelKeys order.
func (p Profile) LevelValues() [6]Level {
	return [6]Level{
		p.GPUIntensity,
		p.DisplayQuality,
		p.Portability,
		p.Multitasking,
		p.ProcessingSpeed,
		p.StorageType,
	}
}

// Complete reports local well-formedness: all six level keys present and a
// positive budget. The authoritative completeness verdict comes from the
// confirmation pass, not from here.
func (p Profile) Complete() bool {
	for _, v := range p.LevelValues() {
		if strings.TrimSpace(string(v)) == "" {
			return false
		}
	}
	return p.Budget > 0
}

// BudgetOrFloor resolves the budget, substituting MinimumBudget when the
// profile carries none.
func (p Profile) BudgetOrFloor() int64 {
	if p.Budget <= 0 {
		return MinimumBudget
	}
	return int64(p.Budget)
}
