package utils

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"TidyElephant/pkg/errors"
)

// Digits 去掉所有非数字字符
func Digits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// NormalizePhone 将用户输入的美国手机号规整为 E.164（+1XXXXXXXXXX）
// 接受裸 10 位、带掩码的 (555) 123-4567、带国家码的 +1/1 前缀
func NormalizePhone(raw string) (string, error) {
	digits := Digits(raw)

	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", errors.InvalidPhoneNumber
	}

	num, err := phonenumbers.Parse(digits, "US")
	if err != nil {
		return "", errors.InvalidPhoneNumber
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return "", errors.InvalidPhoneNumber
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// FormatDisplay E.164 或裸 10 位转展示掩码 (555) 123-4567
func FormatDisplay(phone string) (string, error) {
	digits := Digits(phone)
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", errors.InvalidPhoneNumber
	}

	return fmt.Sprintf("(%s) %s-%s", digits[0:3], digits[3:6], digits[6:10]), nil
}
