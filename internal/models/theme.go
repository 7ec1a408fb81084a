package models

// Theme is a presentation color scheme selectable on a profile. The
// gradient colors the profile card hero, the accent re-colors the
// companion lookup widget.
type Theme struct {
	ID       string `json:"id"`
	Gradient string `json:"gradient"`
	Accent   string `json:"accent"`
}

// DefaultThemeID is applied when a profile has no theme or an
// unrecognized one.
const DefaultThemeID = "ocean"

// Themes is the fixed catalog of selectable themes.
var Themes = []Theme{
	{ID: "ocean", Gradient: "linear-gradient(135deg, #2563eb, #0ea5e9)", Accent: "#6377cb"},
	{ID: "sunset", Gradient: "linear-gradient(135deg, #f97316, #fb7185)", Accent: "#e08a24"},
	{ID: "forest", Gradient: "linear-gradient(135deg, #059669, #22c55e)", Accent: "#17995a"},
	{ID: "twilight", Gradient: "linear-gradient(135deg, #7c3aed, #2563eb)", Accent: "#6a3bc0"},
}

// ThemeByID looks up a theme in the catalog.
func ThemeByID(id string) (Theme, bool) {
	for _, theme := range Themes {
		if theme.ID == id {
			return theme, true
		}
	}
	return Theme{}, false
}

// NormalizeThemeID maps empty or unknown theme ids to the default.
func NormalizeThemeID(id string) string {
	if _, ok := ThemeByID(id); ok {
		return id
	}
	return DefaultThemeID
}
