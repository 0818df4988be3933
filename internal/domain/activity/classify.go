package activity

import "strings"

// IconKey names the icon a client renders next to a record.
type IconKey string

// ColorKey names the badge color a client renders for a status.
type ColorKey string

const (
	IconAccount  IconKey = "account"
	IconTrend    IconKey = "trend"
	IconPerson   IconKey = "person"
	IconDocument IconKey = "document"
	IconBell     IconKey = "bell"
	IconArrowIn  IconKey = "arrow_in"
	IconArrowOut IconKey = "arrow_out"
)

const (
	ColorGreen  ColorKey = "green"
	ColorRed    ColorKey = "red"
	ColorYellow ColorKey = "yellow"
	ColorGray   ColorKey = "gray"
)

// TypeDeposit is the only record type shown with an inbound arrow.
const TypeDeposit = "deposit"

// messageIcons is evaluated in order; the first keyword contained in the
// message wins.
var messageIcons = []struct {
	keywords []string
	icon     IconKey
}{
	{keywords: []string{"Bank Account"}, icon: IconAccount},
	{keywords: []string{"Withdrawal"}, icon: IconTrend},
	{keywords: []string{"User", "Team"}, icon: IconPerson},
	{keywords: []string{"Request"}, icon: IconDocument},
}

var statusColors = map[string]ColorKey{
	"approved":   ColorGreen,
	"Active":     ColorGreen,
	"rejected":   ColorRed,
	"Inactive":   ColorRed,
	"pending":    ColorYellow,
	"Onboarding": ColorYellow,
	"code_sent":  ColorYellow,
}

// Classification is the derived display category of a record.
type Classification struct {
	IconKey  IconKey  `json:"icon"`
	ColorKey ColorKey `json:"color"`
}

// Classifiable is implemented by records that can be shown with an icon and a
// status badge.
type Classifiable interface {
	Icon() IconKey
	StatusValue() string
}

// IconForMessage picks an icon from keywords in a free-text message.
func IconForMessage(message string) IconKey {
	for _, rule := range messageIcons {
		for _, kw := range rule.keywords {
			if strings.Contains(message, kw) {
				return rule.icon
			}
		}
	}
	return IconBell
}

// IconForType picks the direction arrow for a transaction or request type.
func IconForType(recordType string) IconKey {
	if recordType == TypeDeposit {
		return IconArrowIn
	}
	return IconArrowOut
}

// ColorForStatus maps a status or user status label to a badge color.
// Unknown values fall through to gray.
func ColorForStatus(status string) ColorKey {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return ColorGray
}

// Classify pairs a record's icon with the badge color of its status.
func Classify(c Classifiable) Classification {
	return Classification{
		IconKey:  c.Icon(),
		ColorKey: ColorForStatus(c.StatusValue()),
	}
}
