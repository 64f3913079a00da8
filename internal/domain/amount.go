package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Amount is a JSON number that tolerates the loose typing of recognizer
// responses: plain numbers, quoted numbers (possibly with thousands
// separators or a currency suffix), null, and garbage all decode without
// error. Anything unparseable becomes 0.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*a = Amount(f)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		*a = 0
		return nil
	}

	str = strings.TrimSpace(str)
	str = strings.ReplaceAll(str, ",", "")
	str = strings.TrimPrefix(str, "¥")
	str = strings.TrimSuffix(str, "円")

	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

// Float returns the amount clamped to zero or above.
func (a Amount) Float() float64 {
	if a < 0 {
		return 0
	}
	return float64(a)
}
