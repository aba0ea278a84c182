package model

import "strings"

// SessionKind tags one weekly occurrence of a course component.
type SessionKind int

const (
	KindLecture SessionKind = iota
	KindTutorial
	KindLab
	KindMinor
)

func (k SessionKind) String() string {
	switch k {
	case KindLecture:
		return "Lecture"
	case KindTutorial:
		return "Tutorial"
	case KindLab:
		return "Lab"
	case KindMinor:
		return "Minor"
	}
	return "Unknown"
}

// Category decides which placement phase handles a course.
type Category int

const (
	CategoryCore Category = iota
	CategoryElective
	CategoryMinor
)

func (c Category) String() string {
	switch c {
	case CategoryElective:
		return "elective"
	case CategoryMinor:
		return "minor"
	}
	return "core"
}

// ParseCategory maps the raw Type column onto a category. Anything that is
// not an elective or a minor is scheduled as core.
func ParseCategory(raw string) Category {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "elective":
		return CategoryElective
	case "minor":
		return CategoryMinor
	}
	return CategoryCore
}
