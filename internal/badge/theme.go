package badge

// Theme selects the badge palette and logo.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// ParseTheme maps a query value to a Theme. Anything but "light" is dark,
// so unknown values such as "neon" render dark where the old site drew
// them light.
func ParseTheme(s string) Theme {
	if s == string(Light) {
		return Light
	}
	return Dark
}

type palette struct {
	Background    string
	Border        string
	TextPrimary   string
	TextSecondary string
}

type logo struct {
	File     string
	MIMEType string
	Size     int
	X, Y     int
}

type medal struct {
	Main   string
	Shadow string
	Digit  string
}

var palettes = map[Theme]palette{
	Dark:  {Background: "#1a1a1a", Border: "#2a2a2a", TextPrimary: "#ffffff", TextSecondary: "#9CA3AF"},
	Light: {Background: "#ffffff", Border: "#e5e5e5", TextPrimary: "#1a1a1a", TextSecondary: "#6B7280"},
}

var logos = map[Theme]logo{
	Dark:  {File: "logo-white.svg", MIMEType: "image/svg+xml", Size: 24, X: 16, Y: 18},
	Light: {File: "logo-tp.png", MIMEType: "image/png", Size: 36, X: 10, Y: 12},
}

// gold, silver, bronze
var medals = map[int]medal{
	1: {Main: "#FFD700", Shadow: "#DAA520", Digit: "1"},
	2: {Main: "#C0C0C0", Shadow: "#A8A8A8", Digit: "2"},
	3: {Main: "#CD7F32", Shadow: "#B8732D", Digit: "3"},
}
