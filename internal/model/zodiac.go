package model

// Element is one of the four classical elements
type Element string

const (
	ElementFire  Element = "fire"
	ElementEarth Element = "earth"
	ElementAir   Element = "air"
	ElementWater Element = "water"
)

// Sign describes a zodiac sign in Aries..Pisces order
type Sign struct {
	Abbr    string
	Name    string
	Element Element
	Glyph   string
}

// Signs is the fixed zodiac order. Index equals sign_num.
var Signs = [12]Sign{
	{Abbr: "Ari", Name: "Aries", Element: ElementFire, Glyph: "♈"},
	{Abbr: "Tau", Name: "Taurus", Element: ElementEarth, Glyph: "♉"},
	{Abbr: "Gem", Name: "Gemini", Element: ElementAir, Glyph: "♊"},
	{Abbr: "Can", Name: "Cancer", Element: ElementWater, Glyph: "♋"},
	{Abbr: "Leo", Name: "Leo", Element: ElementFire, Glyph: "♌"},
	{Abbr: "Vir", Name: "Virgo", Element: ElementEarth, Glyph: "♍"},
	{Abbr: "Lib", Name: "Libra", Element: ElementAir, Glyph: "♎"},
	{Abbr: "Sco", Name: "Scorpio", Element: ElementWater, Glyph: "♏"},
	{Abbr: "Sag", Name: "Sagittarius", Element: ElementFire, Glyph: "♐"},
	{Abbr: "Cap", Name: "Capricorn", Element: ElementEarth, Glyph: "♑"},
	{Abbr: "Aqu", Name: "Aquarius", Element: ElementAir, Glyph: "♒"},
	{Abbr: "Pis", Name: "Pisces", Element: ElementWater, Glyph: "♓"},
}

// SignElement returns the element of the sign at index n
func SignElement(n int) Element {
	if n < 0 || n > 11 {
		return ""
	}
	return Signs[n].Element
}

// SignIndex returns the index of a sign abbreviation, or -1
func SignIndex(abbr string) int {
	for i, s := range Signs {
		if s.Abbr == abbr {
			return i
		}
	}
	return -1
}

var ayanamsaNames = map[string]string{
	"FAGAN_BRADLEY":     "Fagan/Bradley",
	"LAHIRI":            "Lahiri",
	"DELUCE":            "De Luce",
	"RAMAN":             "Raman",
	"USHASHASHI":        "Usha/Shashi",
	"KRISHNAMURTI":      "Krishnamurti",
	"DJWHAL_KHUL":       "Djwhal Khul",
	"YUKTESHWAR":        "Yukteshwar",
	"JN_BHASIN":         "J.N. Bhasin",
	"BABYL_KUGLER1":     "Babylonian/Kugler 1",
	"BABYL_KUGLER2":     "Babylonian/Kugler 2",
	"BABYL_KUGLER3":     "Babylonian/Kugler 3",
	"BABYL_HUBER":       "Babylonian/Huber",
	"BABYL_ETPSC":       "Babylonian/Eta Piscium",
	"ALDEBARAN_15TAU":   "Babylonian/Aldebaran = 15 Tau",
	"HIPPARCHOS":        "Hipparchos",
	"SASSANIAN":         "Sassanian",
	"J2000":             "J2000",
	"J1900":             "J1900",
	"B1950":             "B1950",
	"TRUE_CITRA":        "True Citra",
	"TRUE_REVATI":       "True Revati",
	"TRUE_PUSHYA":       "True Pushya",
	"GALCENT_0SAG":      "Galactic Center = 0 Sag",
	"GALCENT_RGILBRAND": "Galactic Center (Gil Brand)",
}

// AyanamsaName returns the display name of a sidereal mode, or the mode itself
func AyanamsaName(mode string) string {
	if name, ok := ayanamsaNames[mode]; ok {
		return name
	}
	return mode
}
