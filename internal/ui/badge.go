package ui

import "fmt"

type Tone int

const (
	ToneGray Tone = iota
	ToneGreen
	ToneYellow
	ToneRed
)

// Badge is a short colored status label.
type Badge struct {
	Text string
	Tone Tone
	Bold bool
}

// DeadlineBadge describes a deadline daysLeft days away. Past deadlines are
// red, the coming three days yellow, the coming week green.
func DeadlineBadge(daysLeft int) Badge {
	switch {
	case daysLeft < 0:
		return Badge{Text: fmt.Sprintf("Expired %dd ago", -daysLeft), Tone: ToneRed}
	case daysLeft == 0:
		return Badge{Text: "Today!", Tone: ToneYellow, Bold: true}
	case daysLeft == 1:
		return Badge{Text: "Tomorrow", Tone: ToneYellow}
	case daysLeft <= 3:
		return Badge{Text: fmt.Sprintf("%dd left", daysLeft), Tone: ToneYellow}
	case daysLeft <= 7:
		return Badge{Text: fmt.Sprintf("%dd left", daysLeft), Tone: ToneGreen}
	default:
		return Badge{Text: fmt.Sprintf("%dd left", daysLeft), Tone: ToneGray}
	}
}

func NoDeadlineBadge() Badge {
	return Badge{Text: "No deadline", Tone: ToneGray}
}

// Render styles b for the UI's stdout.
func (u *UI) Render(b Badge) string {
	color := colorGray
	switch b.Tone {
	case ToneGreen:
		color = colorGreen
	case ToneYellow:
		color = colorYellow
	case ToneRed:
		color = colorRed
	}
	return u.paint(u.Output, b.Text, color, b.Bold)
}
