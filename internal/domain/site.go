package domain

import "time"

// Countdown is the time left until the next flagship event.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Done is true once the target instant has passed.
func (c Countdown) Done() bool {
	return c == Countdown{}
}

// CountdownUntil splits the time between now and target into whole units.
// All fields are zero once target is reached.
func CountdownUntil(target, now time.Time) Countdown {
	d := target.Sub(now)
	if d <= 0 {
		return Countdown{}
	}
	secs := int(d / time.Second)
	return Countdown{
		Days:    secs / 86400,
		Hours:   secs % 86400 / 3600,
		Minutes: secs % 3600 / 60,
		Seconds: secs % 60,
	}
}

// Stat is a headline number on the home page.
type Stat struct {
	Number string
	Label  string
}

// TeamMember is a club officer shown on the home page.
type TeamMember struct {
	Name   string
	Role   string
	Avatar string
}

// Step is one item of the getting-started section.
type Step struct {
	Number      string
	Title       string
	Description string
}

// SiteContent is the static copy of the marketing home page.
type SiteContent struct {
	Tagline    string
	Highlight  string
	About      string
	WhatWeAre  string
	WhyJoin    []string
	Activities []string
	Stats      []Stat
	Team       []TeamMember
	Steps      []Step
}

// DefaultSiteContent returns the community's home page copy.
func DefaultSiteContent() SiteContent {
	return SiteContent{
		Tagline:   "Fueling the Next Generation of Developers",
		Highlight: "Dev Catalyst community has grown to over 500 active members across all platforms!",
		About: "DevCatalyst is a student-led developer community focused on learning-by-building. " +
			"We bring together curious minds to explore modern technologies, collaborate on real projects, " +
			"and become industry-ready through practice, mentorship, and events.",
		WhatWeAre: "A welcoming space for developers of all levels, beginners to advanced, to learn, " +
			"experiment, and ship ideas together across web, mobile, AI/ML, and cloud.",
		WhyJoin: []string{
			"Hands-on workshops and guided learning paths",
			"Real project experience for your portfolio",
			"Mentorship from peers, seniors, and industry guests",
			"Networking, internships, and referral opportunities",
			"Teamwork, leadership, and public speaking practice",
		},
		Activities: []string{
			"Weekly workshops and code-alongs",
			"Hackathons, coding challenges, and demo days",
			"Speaker sessions and tech talks",
			"Open-source sprints and study groups",
			"Community projects with real users",
		},
		Stats: []Stat{
			{Number: "500+", Label: "Members"},
			{Number: "25+", Label: "Events"},
			{Number: "40+", Label: "Projects"},
		},
		Team: []TeamMember{
			{Name: "Divyansh Teja Edla", Role: "President", Avatar: "D"},
			{Name: "Dhruv Gannaram", Role: "Vice President", Avatar: "DG"},
			{Name: "Parimitha", Role: "Event Planner", Avatar: "P"},
			{Name: "Hemaditya Kalakota", Role: "Technical Lead", Avatar: "HK"},
		},
		Steps: []Step{
			{Number: "01", Title: "Join the Community", Description: "Hop into Discord/WhatsApp for updates and support."},
			{Number: "02", Title: "Attend a Workshop", Description: "Pick a beginner-friendly session this month."},
			{Number: "03", Title: "Build a Project", Description: "Team up and ship something real for your portfolio."},
		},
	}
}
