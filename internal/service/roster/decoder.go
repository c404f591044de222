package roster

import (
	"strings"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/roster"
)

const medicalCheckNote = "MC"

type cellRule struct {
	name   string
	match  func(text string) bool
	decode func(text string) roster.DecodedCell
}

// cellRules is evaluated top to bottom; the first matching rule wins.
var cellRules = []cellRule{
	{
		name:   "availability off",
		match:  equals("OFF"),
		decode: dayOnly(roster.DayTypeAvailabilityOff),
	},
	{
		name:   "non working day",
		match:  equals("W"),
		decode: dayOnly(roster.DayTypeNonWorkingDay),
	},
	{
		name:   "vacation",
		match:  contains("U"),
		decode: timeRange("U", roster.DayTypeVacation, ""),
	},
	{
		name:   "work",
		match:  contains("-"),
		decode: timeRange("-", roster.DayTypeWork, ""),
	},
	{
		name:   "medical check",
		match:  contains(medicalCheckNote),
		decode: timeRange(medicalCheckNote, roster.DayTypeWork, medicalCheckNote),
	},
}

// DecodeCell reads one roster cell. Text no rule recognizes is kept as the note.
func DecodeCell(raw string) roster.DecodedCell {
	text := strings.TrimSpace(raw)
	for _, rule := range cellRules {
		if rule.match(text) {
			return rule.decode(text)
		}
	}
	return roster.DecodedCell{AdditionalInfo: strPtr(text)}
}

func equals(token string) func(string) bool {
	return func(text string) bool { return text == token }
}

func contains(sep string) func(string) bool {
	return func(text string) bool { return strings.Contains(text, sep) }
}

func dayOnly(dayType roster.DayType) func(string) roster.DecodedCell {
	return func(string) roster.DecodedCell {
		return roster.DecodedCell{DayType: dayType.Ptr()}
	}
}

// timeRange splits on the first sep; the remainder stays on the right.
func timeRange(sep string, dayType roster.DayType, note string) func(string) roster.DecodedCell {
	return func(text string) roster.DecodedCell {
		start, end, _ := strings.Cut(text, sep)
		start, end = strings.TrimSpace(start), strings.TrimSpace(end)
		cell := roster.DecodedCell{
			TimeStart: &start,
			TimeEnd:   &end,
			DayType:   dayType.Ptr(),
		}
		if note != "" {
			cell.AdditionalInfo = strPtr(note)
		}
		return cell
	}
}

func strPtr(s string) *string {
	return &s
}
