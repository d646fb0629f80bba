package symbols

import (
	"github.com/nekodev/skillring/pkg/errors"
)

// Symbol identifies one icon. The zero value is None.
type Symbol uint8

// Icon symbols. Prefixes follow the icon families the content was authored
// against: Fa (Font Awesome), Gi (Game Icons), Si (Simple Icons), Io (Ionicons).
const (
	None Symbol = iota
	FaBookOpen
	FaGlobeAmericas
	FaJava
	FaLanguage
	FaRocket
	FaSkull
	GiEarthAfricaEurope
	GiJapan
	GiStiletto
	GiSwordsPower
	IoGameController
	SiArchlinux
	SiDocker
	SiExcalidraw
	SiGit
	SiJavascript
	SiMysql
	SiNodedotjs
	SiPython
	SiReact
	SiSpringboot
	SiSteam
	SiTypescript

	count
)

type info struct {
	name  string
	glyph string
}

var table = [count]info{
	None:                {"", "·"},
	FaBookOpen:          {"FaBookOpen", "📖"},
	FaGlobeAmericas:     {"FaGlobeAmericas", "🌎"},
	FaJava:              {"FaJava", "☕"},
	FaLanguage:          {"FaLanguage", "🈂"},
	FaRocket:            {"FaRocket", "🚀"},
	FaSkull:             {"FaSkull", "💀"},
	GiEarthAfricaEurope: {"GiEarthAfricaEurope", "🌍"},
	GiJapan:             {"GiJapan", "🗾"},
	GiStiletto:          {"GiStiletto", "🗡"},
	GiSwordsPower:       {"GiSwordsPower", "⚔"},
	IoGameController:    {"IoGameController", "🎮"},
	SiArchlinux:         {"SiArchlinux", "🐧"},
	SiDocker:            {"SiDocker", "🐳"},
	SiExcalidraw:        {"SiExcalidraw", "✏"},
	SiGit:               {"SiGit", "⎇"},
	SiJavascript:        {"SiJavascript", "JS"},
	SiMysql:             {"SiMysql", "🐬"},
	SiNodedotjs:         {"SiNodedotjs", "⬢"},
	SiPython:            {"SiPython", "🐍"},
	SiReact:             {"SiReact", "⚛"},
	SiSpringboot:        {"SiSpringboot", "🌱"},
	SiSteam:             {"SiSteam", "♨"},
	SiTypescript:        {"SiTypescript", "TS"},
}

var byName = func() map[string]Symbol {
	m := make(map[string]Symbol, count)
	for s := None + 1; s < count; s++ {
		m[table[s].name] = s
	}
	return m
}()

// Parse resolves an icon name. The empty string parses to None.
func Parse(name string) (Symbol, error) {
	if name == "" {
		return None, nil
	}
	if s, ok := byName[name]; ok {
		return s, nil
	}
	return None, errors.New(errors.ErrCodeInvalidSymbol, "unknown icon %q", name)
}

// MustParse is like Parse but panics on unknown names. Intended for tests
// and package-level tables.
func MustParse(name string) Symbol {
	s, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return s
}

// All returns every defined symbol except None, in declaration order.
func All() []Symbol {
	out := make([]Symbol, 0, count-1)
	for s := None + 1; s < count; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is a defined symbol (None included).
func (s Symbol) Valid() bool { return s < count }

// String returns the icon name, or "" for None.
func (s Symbol) String() string {
	if !s.Valid() {
		return "Symbol(invalid)"
	}
	return table[s].name
}

// Glyph returns a short terminal-safe rendering of the icon.
func (s Symbol) Glyph() string {
	if !s.Valid() {
		return table[None].glyph
	}
	return table[s].glyph
}

// MarshalText implements encoding.TextMarshaler.
func (s Symbol) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidSymbol, "invalid symbol value %d", uint8(s))
	}
	return []byte(table[s].name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Symbol) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
