package services

import (
	"regexp"
	"strconv"
	"strings"
)

// ConfigCode is the engineering content decoded from a crossarm configuration code.
//
// The code follows the manufacturer part-numbering convention:
//
//	T        terms:1  posts:0
//	TT       terms:2  posts:0
//	PS       terms:0  posts:wires×arms
//	DPS      terms:0  posts:wires×arms  delta
//	TPS3T    terms:2  posts:3
//	EDOTPS1  terms:1  posts:1           EDO
type ConfigCode struct {
	TermCount int
	PostQty   int
	HasEDO    bool
	HasDelta  bool
}

var firstDigitRun = regexp.MustCompile(`\d+`)

// ParseConfigCode decodes a configuration code. It never fails: shapes it does
// not recognise decode to zero values.
func ParseConfigCode(code string, baseWireQty, armCount int) ConfigCode {
	if code == "" {
		return ConfigCode{}
	}

	result := ConfigCode{
		TermCount: strings.Count(code, "T"),
		HasEDO:    strings.Contains(code, "EDO"),
		HasDelta:  strings.HasPrefix(code, "D"),
	}

	if run := firstDigitRun.FindString(code); run != "" {
		if n, err := strconv.Atoi(run); err == nil {
			result.PostQty = n
		}
	} else if strings.Contains(code, "PS") {
		result.PostQty = baseWireQty * armCount
	}

	return result
}

// WireQuantity converts a Wires code to a per-arm wire count. Single digit codes
// are the count itself; multi-digit codes are summed digit by digit.
func WireQuantity(code string) int {
	if code == "" {
		return 0
	}
	n, err := strconv.Atoi(code)
	if err != nil || n < 0 {
		return 0
	}
	if n < 10 {
		return n
	}
	sum := 0
	for _, r := range code {
		if r >= '0' && r <= '9' {
			sum += int(r - '0')
		}
	}
	return sum
}
