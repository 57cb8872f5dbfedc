package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSanitizer() *Sanitizer {
	return New(nil)
}

func TestSanitizeEmptyAndWhitespace(t *testing.T) {
	s := newTestSanitizer()

	res := s.Sanitize("")
	assert.Equal(t, "", res.SanitizedText)
	assert.Empty(t, res.Warnings)
	assert.False(t, res.ContainsPII())

	res = s.Sanitize("   ")
	assert.Equal(t, "   ", res.SanitizedText)
	assert.Empty(t, res.Warnings)
}

func TestSanitizeCreditCard(t *testing.T) {
	s := newTestSanitizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"space separated", "4111 1111 1111 1111", "**** **** **** ****"},
		{"dash separated", "4111-1111-1111-1111", "****-****-****-****"},
		{"no separators", "4111111111111111", "****************"},
		{"mastercard test number", "5105105105105100", "****************"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Sanitize(tt.in)
			assert.Equal(t, tt.want, res.SanitizedText)
			require.Len(t, res.Warnings, 1)
			assert.Equal(t, WarningCreditCard, res.Warnings[0])
			assert.Equal(t, []string{CategoryCreditCard}, res.Categories)
		})
	}
}

func TestSanitizeCreditCardFailsLuhn(t *testing.T) {
	s := newTestSanitizer()
	res := s.Sanitize("4111 1111 1111 1112")
	assert.Equal(t, "4111 1111 1111 1112", res.SanitizedText)
	assert.Empty(t, res.Warnings)
}

func TestSanitizePersonalNumber(t *testing.T) {
	s := newTestSanitizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare eleven digits", "01129500197", "***********"},
		{"dotted date with space", "01.12.95 00197", "**.**.** *****"},
		{"dotted date with dash", "01.12.95-00197", "**.**.**-*****"},
		{"six plus five with space", "011295 00197", "****** *****"},
		{"six plus five with dash", "011295-00197", "******-*****"},
		{"D-nummer", "41129500180", "***********"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Sanitize(tt.in)
			assert.Equal(t, tt.want, res.SanitizedText)
			require.Len(t, res.Warnings, 1)
			assert.Equal(t, WarningPersonalNumber, res.Warnings[0])
		})
	}
}

func TestSanitizePersonalNumberInvalidChecksumUntouched(t *testing.T) {
	s := newTestSanitizer()
	res := s.Sanitize("12345678901")
	assert.Equal(t, "12345678901", res.SanitizedText)
	assert.Empty(t, res.Warnings)
}

func TestSanitizeNoMatchInsideLongerDigitRun(t *testing.T) {
	s := newTestSanitizer()
	// The first 11 digits form a valid fødselsnummer, but the run is 12
	// digits long, so nothing inside it may be masked.
	res := s.Sanitize("011295001975")
	assert.Equal(t, "011295001975", res.SanitizedText)
	assert.Empty(t, res.Warnings)
}

func TestSanitizeBankAccount(t *testing.T) {
	s := newTestSanitizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare eleven digits", "35301386611", "***********"},
		{"dot separated", "3530.13.86611", "****.**.*****"},
		{"space separated", "3530 13 86611", "**** ** *****"},
		{"dash separated", "3530-13-86611", "****-**-*****"},
		{"day part out of date range", "97100000028", "***********"},
		{"formatted, day part out of date range", "9710.00.00028", "****.**.*****"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Sanitize(tt.in)
			assert.Equal(t, tt.want, res.SanitizedText)
			require.Len(t, res.Warnings, 1)
			assert.Equal(t, WarningBankAccount, res.Warnings[0])
		})
	}
}

// A number that is checksum-valid under both schemes must be reported as a
// personal number only, never as a bank account.
func TestSanitizePersonalNumberPrecedenceOverBankAccount(t *testing.T) {
	s := newTestSanitizer()
	res := s.Sanitize("01129500197")
	assert.Equal(t, "***********", res.SanitizedText)
	assert.Equal(t, []string{WarningPersonalNumber}, res.Warnings)
	assert.Equal(t, []string{CategoryPersonalNumber}, res.Categories)
}

// An eleven-digit run that fails the personal-number validation must reach
// the bank-account pass untouched and still be masked there. The birth-date
// portion here looks plausible (01.12), only the first control digit fails.
func TestSanitizeFailedPersonalNumberStillCheckedAsBankAccount(t *testing.T) {
	s := newTestSanitizer()
	res := s.Sanitize("01129500294")
	assert.Equal(t, "***********", res.SanitizedText)
	assert.Equal(t, []string{WarningBankAccount}, res.Warnings)
}

func TestSanitizeMultipleCategories(t *testing.T) {
	s := newTestSanitizer()
	res := s.Sanitize("Kortnummeret 4111 1111 1111 1111 tilhører person 01129500197.")
	assert.Equal(t, "Kortnummeret **** **** **** **** tilhører person ***********.", res.SanitizedText)
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, WarningCreditCard, res.Warnings[0])
	assert.Equal(t, WarningPersonalNumber, res.Warnings[1])
	assert.True(t, res.ContainsPII())
}

func TestSanitizeMixedIdentifiersInProse(t *testing.T) {
	s := newTestSanitizer()
	res := s.Sanitize("fnr 01129500197 og konto 35301386611")
	assert.Equal(t, "fnr *********** og konto ***********", res.SanitizedText)
	assert.Equal(t, []string{WarningPersonalNumber, WarningBankAccount}, res.Warnings)
}

func TestSanitizeLeavesBenignNumbersAlone(t *testing.T) {
	s := newTestSanitizer()
	in := "Ring oss på 22 86 55 00 mellom kl. 08 og 16, sak 2024-118."
	res := s.Sanitize(in)
	assert.Equal(t, in, res.SanitizedText)
	assert.Empty(t, res.Warnings)
}

func TestSanitizeLengthInvariance(t *testing.T) {
	s := newTestSanitizer()
	inputs := []string{
		"",
		"   ",
		"4111 1111 1111 1111",
		"01.12.95 00197",
		"3530.13.86611",
		"fødselsnummeret 01129500197 er registrert på kontoen 3530.13.86611",
		"ingen sensitive tall her",
	}
	for _, in := range inputs {
		res := s.Sanitize(in)
		assert.Equal(t, len(in), len(res.SanitizedText), "input %q", in)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	s := newTestSanitizer()
	inputs := []string{
		"4111 1111 1111 1111",
		"01129500197",
		"3530.13.86611",
		"Kortnummeret 4111 1111 1111 1111 tilhører person 01129500197.",
		"ingen treff 12345678901",
	}
	for _, in := range inputs {
		first := s.Sanitize(in)
		second := s.Sanitize(first.SanitizedText)
		assert.Equal(t, first.SanitizedText, second.SanitizedText, "input %q", in)
		assert.Empty(t, second.Warnings, "re-sanitizing %q must not warn again", in)
	}
}

func TestSanitizeConcurrentUse(t *testing.T) {
	s := newTestSanitizer()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				res := s.Sanitize("betaling fra 01129500197 til 3530.13.86611")
				assert.Equal(t, "betaling fra *********** til ****.**.*****", res.SanitizedText)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
