package symbols

import (
	"encoding/json"
	"testing"

	"github.com/nekodev/skillring/pkg/errors"
)

func TestParseRoundTripsEveryName(t *testing.T) {
	for _, s := range All() {
		got, err := Parse(s.String())
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", s.String(), err)
		}
		if got != s {
			t.Errorf("Parse(%q) = %v, want %v", s.String(), got, s)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     Symbol
		wantCode errors.Code
	}{
		{"docker", "SiDocker", SiDocker, ""},
		{"java", "FaJava", FaJava, ""},
		{"empty is none", "", None, ""},
		{"unknown", "FaCobol", None, errors.ErrCodeInvalidSymbol},
		{"wrong case", "sidocker", None, errors.ErrCodeInvalidSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if code := errors.GetCode(err); code != tt.wantCode {
				t.Errorf("Parse(%q) code = %q, want %q", tt.input, code, tt.wantCode)
			}
		})
	}
}

func TestGlyphsAreDefined(t *testing.T) {
	for _, s := range All() {
		if s.Glyph() == "" {
			t.Errorf("%v has no glyph", s)
		}
	}
	if Symbol(200).Glyph() != None.Glyph() {
		t.Error("invalid symbol should fall back to the None glyph")
	}
}

func TestJSONField(t *testing.T) {
	type card struct {
		Icon Symbol `json:"icon"`
	}

	var c card
	if err := json.Unmarshal([]byte(`{"icon":"SiReact"}`), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c.Icon != SiReact {
		t.Errorf("Icon = %v, want SiReact", c.Icon)
	}

	if err := json.Unmarshal([]byte(`{"icon":"NotAnIcon"}`), &c); err == nil {
		t.Error("Unmarshal should reject unknown icons")
	}

	out, err := json.Marshal(card{Icon: SiGit})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"icon":"SiGit"}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on unknown names")
		}
	}()
	MustParse("Nope")
}
