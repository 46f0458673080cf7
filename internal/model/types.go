// Package model holds the precomputed astrological data consumed by the chart renderer:
// subjects with their celestial points and house cusps, and aspect records.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Zodiac types
const (
	ZodiacTropic   = "Tropic"
	ZodiacSidereal = "Sidereal"
)

// Point is a celestial point or house cusp computed by the ephemeris layer
type Point struct {
	Name       string  `yaml:"name" json:"name"`
	AbsPos     float64 `yaml:"abs_pos" json:"abs_pos"`
	Position   float64 `yaml:"position" json:"position"`
	Sign       string  `yaml:"sign" json:"sign"`
	SignNum    int     `yaml:"sign_num" json:"sign_num"`
	House      string  `yaml:"house,omitempty" json:"house,omitempty"`
	Retrograde bool    `yaml:"retrograde" json:"retrograde"`
}

// LunarPhase describes the sun/moon relationship of a subject
type LunarPhase struct {
	DegreesBetweenSunMoon float64 `yaml:"degrees_between_s_m" json:"degrees_between_s_m"`
	MoonPhase             int     `yaml:"moon_phase" json:"moon_phase"`
	MoonPhaseName         string  `yaml:"moon_phase_name" json:"moon_phase_name"`
}

// Subject is a person or moment with its computed points and houses
type Subject struct {
	Name   string `yaml:"name" json:"name"`
	Year   int    `yaml:"year" json:"year"`
	Month  int    `yaml:"month" json:"month"`
	Day    int    `yaml:"day" json:"day"`
	Hour   int    `yaml:"hour" json:"hour"`
	Minute int    `yaml:"minute" json:"minute"`

	City     string  `yaml:"city" json:"city"`
	Nation   string  `yaml:"nation" json:"nation"`
	Lat      float64 `yaml:"lat" json:"lat"`
	Lng      float64 `yaml:"lng" json:"lng"`
	Timezone string  `yaml:"tz_str" json:"tz_str"`

	// ISOLocalDatetime is the local time with offset, e.g. 1940-10-09T18:30:00+01:00
	ISOLocalDatetime string `yaml:"iso_formatted_local_datetime" json:"iso_formatted_local_datetime"`

	ZodiacType             string `yaml:"zodiac_type" json:"zodiac_type"`
	SiderealMode           string `yaml:"sidereal_mode,omitempty" json:"sidereal_mode,omitempty"`
	HousesSystemIdentifier string `yaml:"houses_system_identifier" json:"houses_system_identifier"`
	HousesSystemName       string `yaml:"houses_system_name" json:"houses_system_name"`
	PerspectiveType        string `yaml:"perspective_type" json:"perspective_type"`

	LunarPhase LunarPhase `yaml:"lunar_phase" json:"lunar_phase"`

	Points []Point `yaml:"points" json:"points"`
	Houses []Point `yaml:"houses" json:"houses"`
}

// ChartSubject is anything the renderer can draw as the primary subject
type ChartSubject interface {
	Base() *Subject
}

// Base returns the subject itself
func (s *Subject) Base() *Subject {
	return s
}

// Point looks up a point by name, ignoring case
func (s *Subject) Point(name string) (Point, bool) {
	for _, p := range s.Points {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Point{}, false
}

// House returns the cusp of the given house (1-12)
func (s *Subject) House(n int) Point {
	if n < 1 || n > len(s.Houses) {
		return Point{}
	}
	return s.Houses[n-1]
}

// FirstHouse returns the first house cusp
func (s *Subject) FirstHouse() Point {
	return s.House(1)
}

// SeventhHouse returns the seventh house cusp, the rotational reference of every chart
func (s *Subject) SeventhHouse() Point {
	return s.House(7)
}

// LocalTime parses the ISO local datetime
func (s *Subject) LocalTime() (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s.ISOLocalDatetime)
	if err != nil {
		// Naive timestamps carry no offset
		t, err = time.Parse("2006-01-02T15:04:05", s.ISOLocalDatetime)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse local datetime %q: %w", s.ISOLocalDatetime, err)
		}
	}
	return t, nil
}

// Validate checks the subject for structural problems, reporting all of them
func (s *Subject) Validate() error {
	var result *multierror.Error

	if s.Name == "" {
		result = multierror.Append(result, fmt.Errorf("subject name cannot be empty"))
	}
	if len(s.Houses) != 12 {
		result = multierror.Append(result, fmt.Errorf("subject %q has %d houses, expected 12", s.Name, len(s.Houses)))
	}
	if s.Lat < -90 || s.Lat > 90 {
		result = multierror.Append(result, fmt.Errorf("latitude %v out of range", s.Lat))
	}
	if s.Lng < -180 || s.Lng > 180 {
		result = multierror.Append(result, fmt.Errorf("longitude %v out of range", s.Lng))
	}
	for _, p := range append(append([]Point{}, s.Points...), s.Houses...) {
		if p.AbsPos < 0 || p.AbsPos >= 360 {
			result = multierror.Append(result, fmt.Errorf("point %s: abs_pos %v out of range [0,360)", p.Name, p.AbsPos))
		}
		if p.SignNum < 0 || p.SignNum > 11 {
			result = multierror.Append(result, fmt.Errorf("point %s: sign_num %d out of range [0,11]", p.Name, p.SignNum))
		}
	}
	if s.ISOLocalDatetime != "" {
		if _, err := s.LocalTime(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// CompositeSubject is a midpoint composite of two subjects
type CompositeSubject struct {
	Subject       `yaml:",inline"`
	FirstSubject  Subject `yaml:"first_subject" json:"first_subject"`
	SecondSubject Subject `yaml:"second_subject" json:"second_subject"`
}

// Validate checks the midpoint model and both source subjects
func (c *CompositeSubject) Validate() error {
	var result *multierror.Error
	if err := c.Subject.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if c.FirstSubject.Name == "" || c.SecondSubject.Name == "" {
		result = multierror.Append(result, fmt.Errorf("composite subject requires both first_subject and second_subject"))
	}
	return result.ErrorOrNil()
}

// Aspect is a precomputed angular relationship between two points
type Aspect struct {
	P1Name        string  `yaml:"p1_name" json:"p1_name"`
	P1AbsPos      float64 `yaml:"p1_abs_pos" json:"p1_abs_pos"`
	P2Name        string  `yaml:"p2_name" json:"p2_name"`
	P2AbsPos      float64 `yaml:"p2_abs_pos" json:"p2_abs_pos"`
	Kind          string  `yaml:"aspect" json:"aspect"`
	Orbit         float64 `yaml:"orbit" json:"orbit"`
	AspectDegrees int     `yaml:"aspect_degrees" json:"aspect_degrees"`
	Diff          float64 `yaml:"diff,omitempty" json:"diff,omitempty"`
	P1            int     `yaml:"p1" json:"p1"`
	P2            int     `yaml:"p2" json:"p2"`
}
