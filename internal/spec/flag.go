package spec

import "strings"

// Flag keeps a yes/no attribute as written in the source. Absent or empty
// values become FlagNo.
type Flag string

const (
	FlagYes Flag = "yes"
	FlagNo  Flag = "no"
)

func NewFlag(value string) Flag {
	if value == "" {
		return FlagNo
	}
	return Flag(value)
}

// Bool reports whether the flag reads as true: yes, true, 1 or on, any case.
func (f Flag) Bool() bool {
	switch strings.ToLower(strings.TrimSpace(string(f))) {
	case "yes", "true", "1", "on":
		return true
	}
	return false
}
