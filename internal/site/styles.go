package site

// StyleButton is one toggle in the style filter bar.
type StyleButton struct {
	Value     string `json:"value"`
	Character string `json:"character"`
	Active    bool   `json:"-"`
}

// Label is the button text, e.g. "★ regular".
func (s StyleButton) Label() string {
	return s.Character + " " + s.Value
}

// styleButtons are the style filters offered on the icons page.
var styleButtons = []StyleButton{
	{Value: "solid", Character: "\U000F428B"},
	{Value: "regular", Character: "★"},
	{Value: "circle", Character: "⬤"},
	{Value: "square", Character: "■"},
}

// StyleButtons returns the style filters, marking the selected ones.
func StyleButtons(selected []string) []StyleButton {
	set := make(map[string]bool, len(selected))
	for _, s := range selected {
		set[s] = true
	}
	out := make([]StyleButton, len(styleButtons))
	for i, b := range styleButtons {
		b.Active = set[b.Value]
		out[i] = b
	}
	return out
}
