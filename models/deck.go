package models

import (
	"fmt"
	"unicode/utf8"
)

const (
	// MaxSlides caps how many slides a deck may carry.
	MaxSlides = 20
	// MaxTitleLen caps deck and slide titles.
	MaxTitleLen = 200
)

// Slide is a single generated slide. ImageKeyword is the short search phrase
// proposed during generation; ImageURL is filled in once the keyword has been
// resolved against the image catalog.
type Slide struct {
	SlideTitle   string   `bson:"slideTitle" json:"slideTitle"`
	Points       []string `bson:"points" json:"points"`
	ImageKeyword string   `bson:"imageKeyword,omitempty" json:"imageKeyword,omitempty"`
	ImageURL     string   `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// SlideDeck is the structured deck produced by generation and consumed by the
// renderer.
type SlideDeck struct {
	Title  string  `bson:"title" json:"title"`
	Slides []Slide `bson:"slides" json:"slides"`
}

// Validate reports whether the deck is renderable. It returns an error naming
// the first violation found, including the offending slide index.
func (d *SlideDeck) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("deck title is empty")
	}
	if utf8.RuneCountInString(d.Title) > MaxTitleLen {
		return fmt.Errorf("deck title exceeds %d characters", MaxTitleLen)
	}
	if len(d.Slides) == 0 {
		return fmt.Errorf("deck has no slides")
	}
	if len(d.Slides) > MaxSlides {
		return fmt.Errorf("deck has %d slides, maximum is %d", len(d.Slides), MaxSlides)
	}
	for i, slide := range d.Slides {
		if slide.SlideTitle == "" {
			return fmt.Errorf("slide %d has an empty title", i)
		}
	}
	return nil
}
