package sanitize

// Control-digit weights for the Norwegian fødselsnummer. The first control
// digit covers the nine leading digits, the second covers the first ten
// (including control digit one).
var (
	birthNumberControl1Weights = []int{3, 7, 6, 1, 8, 9, 4, 5, 2}
	birthNumberControl2Weights = []int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}
)

// Bank account numbers use the same weights as the second fødselsnummer
// control digit. That overlap is why every checksum-valid fødselsnummer also
// satisfies the account checksum, and why classification precedence matters.
var accountWeights = []int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// mod11ControlDigit computes the expected MOD11 control digit for the given
// digit string and positional weights. Returns -1 when the remainder yields
// an expected digit of 10, which the MOD11 scheme defines as invalid.
func mod11ControlDigit(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	switch r := sum % 11; r {
	case 0:
		return 0
	case 1:
		// 11 - 1 = 10: no single digit can carry it.
		return -1
	default:
		return 11 - r
	}
}

// luhnValid reports whether a digit string passes the Luhn checksum.
// Doubling starts at the second digit from the right and alternates leftward;
// the rightmost digit is never doubled.
func luhnValid(digits string) bool {
	if digits == "" {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		n := int(c - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		double = !double
	}
	return sum%10 == 0
}

// validCardNumber reports whether the stripped digits form a plausible
// payment card number: 13-19 digits passing the Luhn checksum.
func validCardNumber(digits string) bool {
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	return luhnValid(digits)
}

// validBirthNumber reports whether an 11-digit string is a checksum-valid
// fødselsnummer or D-nummer. D-nummer have 40 added to the day-of-month
// pair; it is subtracted before the date sanity check. Both control digits
// must match their MOD11 expectation, and an expected digit of 10 rejects
// the number outright.
func validBirthNumber(digits string) bool {
	if len(digits) != 11 {
		return false
	}
	day := int(digits[0]-'0')*10 + int(digits[1]-'0')
	if day >= 41 && day <= 71 {
		day -= 40 // D-nummer
	}
	if day < 1 || day > 31 {
		return false
	}
	month := int(digits[2]-'0')*10 + int(digits[3]-'0')
	if month < 1 || month > 12 {
		return false
	}
	if c := mod11ControlDigit(digits[:9], birthNumberControl1Weights); c < 0 || c != int(digits[9]-'0') {
		return false
	}
	if c := mod11ControlDigit(digits[:10], birthNumberControl2Weights); c < 0 || c != int(digits[10]-'0') {
		return false
	}
	return true
}

// validAccountNumber reports whether an 11-digit string is a checksum-valid
// Norwegian bank account number.
//
// Precedence rule: a string that validates as a fødselsnummer is always
// classified as a personal number and never as a bank account, so it is
// rejected here. This is a deliberate business rule, not a side effect of
// pass ordering.
func validAccountNumber(digits string) bool {
	if len(digits) != 11 {
		return false
	}
	if c := mod11ControlDigit(digits[:10], accountWeights); c < 0 || c != int(digits[10]-'0') {
		return false
	}
	return !validBirthNumber(digits)
}
