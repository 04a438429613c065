package utils

import (
	"regexp"

	"TidyElephant/pkg/errors"
)

var einPattern = regexp.MustCompile(`^(\d{2})-?(\d{7})$`)

// IRS 在用的 EIN 前缀（campus prefix）白名单，00、07、08 等从未下发过
var validEINPrefixes = map[string]bool{
	// Andover
	"10": true, "12": true,
	// Atlanta
	"60": true, "67": true,
	// Austin
	"50": true, "53": true,
	// Brookhaven
	"01": true, "02": true, "03": true, "04": true, "05": true, "06": true,
	"11": true, "13": true, "14": true, "16": true, "21": true, "22": true,
	"23": true, "25": true, "34": true, "51": true, "52": true, "54": true,
	"55": true, "56": true, "57": true, "58": true, "59": true, "65": true,
	// Cincinnati
	"30": true, "32": true, "35": true, "36": true, "37": true, "38": true, "61": true,
	// Fresno
	"15": true, "24": true,
	// Internet
	"20": true, "26": true, "27": true, "45": true, "46": true, "47": true,
	"81": true, "82": true, "83": true, "84": true, "85": true, "86": true,
	"87": true, "88": true,
	// Kansas City
	"40": true, "44": true,
	// Memphis
	"94": true, "95": true,
	// Ogden
	"80": true, "90": true,
	// Philadelphia
	"33": true, "39": true, "41": true, "42": true, "43": true, "48": true,
	"62": true, "63": true, "64": true, "66": true, "68": true, "71": true,
	"72": true, "73": true, "74": true, "75": true, "76": true, "77": true,
	"91": true, "92": true, "93": true, "98": true, "99": true,
	// Small Business Administration
	"31": true,
}

// ValidateEIN 校验 NN-NNNNNNN 格式与前缀白名单
func ValidateEIN(ein string) error {
	m := einPattern.FindStringSubmatch(ein)
	if m == nil {
		return errors.InvalidEIN
	}

	if !validEINPrefixes[m[1]] {
		return errors.InvalidEIN
	}

	return nil
}
