package generate

import (
	"strings"
	"time"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/design"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/shared/id"
)

// Fallback builds a usable starter design from keywords in the prompt when
// the model is unreachable or returns garbage. The result always has one
// screen and at least a title and a button, so the downstream compile and
// repair passes have something to work with.
func Fallback(prompt string) *design.Design {
	p := strings.ToLower(prompt)
	now := time.Now().UTC()

	d := &design.Design{
		ID:        id.NewPackageID().String(),
		Category:  "utility",
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch {
	case containsAny(p, "counter", "tally", "count"):
		d.Name = "Counter"
		d.Description = "Tap to count."
		d.Screens = []design.Screen{counterScreen()}
	case containsAny(p, "timer", "stopwatch", "countdown"):
		d.Name = "Timer"
		d.Description = "A simple timer."
		d.Screens = []design.Screen{timerScreen()}
	case containsAny(p, "quiz", "trivia", "flashcard"):
		d.Name = "Quiz"
		d.Description = "Answer questions."
		d.Screens = []design.Screen{quizScreen()}
		d.Category = "learning"
	case containsAny(p, "note", "todo", "list", "checklist"):
		d.Name = "Notes"
		d.Description = "Keep short notes."
		d.Screens = []design.Screen{notesScreen()}
		d.Category = "productivity"
	default:
		d.Name = "My App"
		d.Description = prompt
		d.Screens = []design.Screen{genericScreen()}
	}

	return d
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func heading(text string) design.Component {
	size := 28.0
	return design.Component{
		ID:     newNodeID(),
		Type:   design.TypeText,
		Text:   text,
		Width:  320,
		Height: 40,
		Style:  design.Style{FontSize: &size, FontWeight: "bold", TextColor: "#0F172A"},
	}
}

func button(label string) design.Component {
	radius := 14.0
	return design.Component{
		ID:     newNodeID(),
		Type:   design.TypeButton,
		Text:   label,
		Width:  200,
		Height: 48,
		Style: design.Style{
			BackgroundColor: "#2563EB",
			TextColor:       "#FFFFFF",
			CornerRadius:    &radius,
		},
	}
}

func counterScreen() design.Screen {
	size := 48.0
	display := design.Component{
		ID:     newNodeID(),
		Type:   design.TypeText,
		Text:   "0",
		Width:  320,
		Height: 64,
		Style:  design.Style{FontSize: &size, FontWeight: "bold"},
	}
	return design.Screen{
		ID:         id.NewPageID().String(),
		Title:      "Counter",
		Components: []design.Component{heading("Counter"), display, button("Increment")},
	}
}

func timerScreen() design.Screen {
	size := 44.0
	display := design.Component{
		ID:     newNodeID(),
		Type:   design.TypeText,
		Text:   "00:00",
		Width:  320,
		Height: 60,
		Style:  design.Style{FontSize: &size},
	}
	return design.Screen{
		ID:         id.NewPageID().String(),
		Title:      "Timer",
		Components: []design.Component{heading("Timer"), display, button("Start"), button("Reset")},
	}
}

func quizScreen() design.Screen {
	question := design.Component{
		ID:     newNodeID(),
		Type:   design.TypeText,
		Text:   "Ready for the first question?",
		Width:  320,
		Height: 48,
	}
	return design.Screen{
		ID:         id.NewPageID().String(),
		Title:      "Quiz",
		Components: []design.Component{heading("Quiz"), question, button("Start Quiz")},
	}
}

func notesScreen() design.Screen {
	input := design.Component{
		ID:     newNodeID(),
		Type:   design.TypeInput,
		Text:   "Write a note",
		Width:  320,
		Height: 44,
	}
	list := design.Component{
		ID:     newNodeID(),
		Type:   design.TypeList,
		Items:  []string{"Welcome! Add your first note."},
		Width:  320,
		Height: 200,
	}
	return design.Screen{
		ID:         id.NewPageID().String(),
		Title:      "Notes",
		Components: []design.Component{heading("Notes"), input, list, button("Add Note")},
	}
}

func genericScreen() design.Screen {
	return design.Screen{
		ID:         id.NewPageID().String(),
		Title:      "Home",
		Components: []design.Component{heading("My App"), button("Get Started")},
	}
}

func newNodeID() string {
	return id.NewComponentID().String()
}
