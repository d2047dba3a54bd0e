package employee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseSalaryType(t *testing.T) {
	cases := []struct {
		input string
		want  SalaryType
	}{
		{"Monthly", SalaryTypeMonthly},
		{"Hourly", SalaryTypeHourly},
		{"Fixed", SalaryTypeFixed},
		{"", SalaryTypeMonthly},
		{"weekly", SalaryTypeMonthly},
	}
	for _, c := range cases {
		got := ParseSalaryType(c.input)
		if got != c.want {
			t.Errorf("ParseSalaryType(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestDailyHourlyRate(t *testing.T) {
	base := decimal.NewFromInt(41600) // 208 * 200

	assert.True(t, decimal.NewFromInt(200).Equal(SalaryTypeMonthly.DailyHourlyRate(base)))
	assert.True(t, base.Equal(SalaryTypeHourly.DailyHourlyRate(base)))
	assert.True(t, decimal.Zero.Equal(SalaryTypeFixed.DailyHourlyRate(base)))
}

func TestBonusHourlyRate(t *testing.T) {
	base := decimal.NewFromInt(41600)

	// Fixed employees are paid for bonus hours even though their
	// daily rate is zero.
	assert.True(t, decimal.NewFromInt(200).Equal(SalaryTypeFixed.BonusHourlyRate(base)))
	assert.True(t, decimal.NewFromInt(200).Equal(SalaryTypeMonthly.BonusHourlyRate(base)))
	assert.True(t, base.Equal(SalaryTypeHourly.BonusHourlyRate(base)))
}
