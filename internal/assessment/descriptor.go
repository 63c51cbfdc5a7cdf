package assessment

// Descriptor is what the page shows for a band.
type Descriptor struct {
	Band       Band   `json:"band"`
	Icon       string `json:"icon"`
	ColorToken string `json:"colorToken"`
	Class      string `json:"class"`
	Message    string `json:"message"`
}

// Text is the icon followed by the message, as written in the assessment line.
func (d Descriptor) Text() string {
	if d.Icon == "" {
		return d.Message
	}
	return d.Icon + " " + d.Message
}

var descriptors = map[Band]Descriptor{
	BandExcellent: {
		Band:       BandExcellent,
		Icon:       "✅",
		ColorToken: "var(--color-success)",
		Class:      "green",
		Message:    "Excellent investissement",
	},
	BandGood: {
		Band:       BandGood,
		Icon:       "✓",
		ColorToken: "var(--color-warning)",
		Class:      "warning",
		Message:    "Bon investissement",
	},
	BandRisky: {
		Band:       BandRisky,
		Icon:       "⚠️",
		ColorToken: "var(--color-danger)",
		Class:      "danger",
		Message:    "À étudier selon votre situation",
	},
}

// Describe returns the descriptor of b. BandNone has an empty descriptor.
func Describe(b Band) Descriptor {
	if d, ok := descriptors[b]; ok {
		return d
	}
	return Descriptor{Band: BandNone}
}
