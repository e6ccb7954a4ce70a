// Package story holds the campaign: an ordered list of dialog segments, each
// paired with the opponent HP and time limit of the match that follows it.
package story

import "fmt"

// Segment is one stop in the campaign. A segment with no opponent HP is the
// epilogue and has no match.
type Segment struct {
	Lines      []string `yaml:"lines"`
	OpponentHP int      `yaml:"opponent_hp"`
	TimeLimit  float64  `yaml:"time_limit"`
}

// Epilogue reports whether the segment ends the campaign without a match.
func (s Segment) Epilogue() bool {
	return s.OpponentHP <= 0
}

// DefaultSegments returns the built-in campaign.
func DefaultSegments() []Segment {
	return []Segment{
		{
			OpponentHP: 25,
			TimeLimit:  90,
			Lines: []string{
				"Hey! I bet I can beat you at this puzzle game today!",
				"Don't worry, I'll share a few tricks along the way.\nJust know I'm not going easy on you.",
			},
		},
		{
			OpponentHP: 50,
			TimeLimit:  140,
			Lines: []string{
				"Well, well! Ready to get schooled? I may not be the best, but I'm no beginner either.",
				"Bring on the next round!",
			},
		},
		{
			OpponentHP: 75,
			TimeLimit:  200,
			Lines: []string{
				"I've heard of you, Boy. But reputation means nothing here.",
				"Understand this: I don't play for fun, and I certainly don't lose.",
				"Only one of us leaves this game victorious, and I have no intention of it being you.",
			},
		},
		{
			Lines: []string{
				"Congratulations!",
				"You've completed your journey!",
			},
		},
	}
}

// Validate checks that every match segment has a positive time limit and
// that the campaign is not empty.
func Validate(segments []Segment) error {
	if len(segments) == 0 {
		return fmt.Errorf("story: campaign has no segments")
	}
	for i, s := range segments {
		if len(s.Lines) == 0 {
			return fmt.Errorf("story: segment %d has no lines", i)
		}
		if !s.Epilogue() && s.TimeLimit <= 0 {
			return fmt.Errorf("story: segment %d has opponent HP %d but time limit %v", i, s.OpponentHP, s.TimeLimit)
		}
	}
	return nil
}

// Campaign tracks progress through the segments.
type Campaign struct {
	segments []Segment
	index    int
}

func NewCampaign(segments []Segment) *Campaign {
	return &Campaign{segments: segments}
}

// Current returns the active segment, or nil for an empty campaign.
func (c *Campaign) Current() *Segment {
	if c.index >= len(c.segments) {
		return nil
	}
	return &c.segments[c.index]
}

func (c *Campaign) Index() int {
	return c.index
}

func (c *Campaign) Len() int {
	return len(c.segments)
}

// Advance moves to the next segment and reports whether one exists.
func (c *Campaign) Advance() bool {
	if c.index+1 >= len(c.segments) {
		return false
	}
	c.index++
	return true
}

// Finished reports whether the current segment is the last one.
func (c *Campaign) Finished() bool {
	return c.index >= len(c.segments)-1
}

func (c *Campaign) Reset() {
	c.index = 0
}
