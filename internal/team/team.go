// Package team holds the static roster shown on the About page.
package team

// Placeholder marks a link that has not been filled in. Links equal to it
// are never rendered.
const Placeholder = "#"

// Member is one person on the roster.
type Member struct {
	Name     string
	Role     string
	LinkedIn string
	GitHub   string
	YouTube  string
}

// Link is a labelled profile URL.
type Link struct {
	Label string
	URL   string
}

// Links returns the member's profile links in display order, skipping
// empty and placeholder URLs.
func (m Member) Links() []Link {
	candidates := []Link{
		{Label: "LinkedIn", URL: m.LinkedIn},
		{Label: "GitHub", URL: m.GitHub},
		{Label: "YouTube", URL: m.YouTube},
	}
	links := make([]Link, 0, len(candidates))
	for _, l := range candidates {
		if l.URL == "" || l.URL == Placeholder {
			continue
		}
		links = append(links, l)
	}
	return links
}

var roster = []Member{
	{
		Name:     "Manish S Khandagale",
		Role:     "Full-Stack Developer",
		LinkedIn: "https://linkedin.com/in/yourprofile",
		GitHub:   "https://github.com/manishk",
		YouTube:  "https://youtube.com/@yourchannel",
	},
	{
		Name:     "Akshay B Satoute",
		Role:     "Data Scientist",
		LinkedIn: "https://linkedin.com/in/yourprofile",
		GitHub:   "https://github.com/manishk",
		YouTube:  "https://youtube.com/@yourchannel",
	},
	{
		Name:     "Pradeep Rathod",
		Role:     "Data Analyst/Backend Developer",
		LinkedIn: "https://linkedin.com/in/yourprofile",
		GitHub:   "https://github.com/manishk",
		YouTube:  "https://youtube.com/@yourchannel",
	},
}

// Roster returns a copy of the team.
func Roster() []Member {
	out := make([]Member, len(roster))
	copy(out, roster)
	return out
}
