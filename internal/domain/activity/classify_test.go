package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubRecord struct {
	icon   IconKey
	status string
}

func (s stubRecord) Icon() IconKey       { return s.icon }
func (s stubRecord) StatusValue() string { return s.status }

func TestIconForMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    IconKey
	}{
		{name: "bank account wins over request", message: "New Bank Account Request from Jane", want: IconAccount},
		{name: "withdrawal", message: "Withdrawal approved", want: IconTrend},
		{name: "user", message: "User Jane registered", want: IconPerson},
		{name: "team", message: "Team invite accepted", want: IconPerson},
		{name: "request", message: "Deposit Request received", want: IconDocument},
		{name: "withdrawal before request", message: "Withdrawal Request pending", want: IconTrend},
		{name: "case sensitive", message: "bank account added", want: IconBell},
		{name: "empty", message: "", want: IconBell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IconForMessage(tt.message))
		})
	}
}

func TestIconForType(t *testing.T) {
	assert.Equal(t, IconArrowIn, IconForType("deposit"))
	assert.Equal(t, IconArrowOut, IconForType("withdrawal"))
	assert.Equal(t, IconArrowOut, IconForType(""))
}

func TestColorForStatus(t *testing.T) {
	tests := map[string]ColorKey{
		"approved":   ColorGreen,
		"Active":     ColorGreen,
		"rejected":   ColorRed,
		"Inactive":   ColorRed,
		"pending":    ColorYellow,
		"Onboarding": ColorYellow,
		"code_sent":  ColorYellow,
		"APPROVED":   ColorGray,
		"archived":   ColorGray,
		"":           ColorGray,
	}

	for status, want := range tests {
		t.Run(status, func(t *testing.T) {
			assert.Equal(t, want, ColorForStatus(status))
		})
	}
}

func TestClassify(t *testing.T) {
	got := Classify(stubRecord{icon: IconArrowIn, status: "rejected"})
	assert.Equal(t, Classification{IconKey: IconArrowIn, ColorKey: ColorRed}, got)
}
