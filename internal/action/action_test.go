package action

import "testing"

func TestCodeStringRoundTrip(t *testing.T) {
	codes := []Code{
		FocusUp, FocusDown, FocusLeft, FocusRight,
		ParentFrame, ChildFrame, RootFrame,
		NextWindow, PreviousWindow, ToggleFocus,
		SplitHorizontally, SplitVertically, RemoveFrame,
		ExchangeUp, ExchangeDown, ExchangeLeft, ExchangeRight,
		ResizeBy, MinimizeWindow, CloseWindow,
		InitiateMove, InitiateResize,
		ToggleTiling, ToggleFullscreen,
		ReloadConfiguration, ShowWindowList, Run, Quit,
	}
	for _, c := range codes {
		name := c.String()
		got, ok := ParseCode(name)
		if !ok {
			t.Errorf("ParseCode(%q) not found for %v", name, c)
			continue
		}
		if got != c {
			t.Errorf("ParseCode(%q) = %v, want %v", name, got, c)
		}
	}
}

func TestParseCodeUnknownName(t *testing.T) {
	if _, ok := ParseCode("not_a_real_action"); ok {
		t.Errorf("ParseCode should fail for an unknown name")
	}
}

func TestNoneStringIsNone(t *testing.T) {
	if got := None.String(); got != "none" {
		t.Errorf("None.String() = %q, want %q", got, "none")
	}
	if got := Code(9999).String(); got != "none" {
		t.Errorf("unrecognized Code.String() = %q, want %q", got, "none")
	}
}

func TestCloneAllIndependentCopies(t *testing.T) {
	src := []Action{
		{Code: ResizeBy, Parameter: QuadValue(1, 2, 3, 4)},
		{Code: Run, Parameter: StringValue("xterm")},
	}
	out := CloneAll(src)

	out[0].Parameter.Quad[0] = 99
	out[1].Parameter.Str = "mutated"

	if src[0].Parameter.Quad[0] != 1 {
		t.Errorf("CloneAll should not alias the source Quad array")
	}
	if src[1].Parameter.Str != "xterm" {
		t.Errorf("CloneAll should not alias the source string")
	}
}

func TestDataValueConstructors(t *testing.T) {
	if v := NoneValue(); v.Kind != KindNone {
		t.Errorf("NoneValue().Kind = %v, want KindNone", v.Kind)
	}
	if v := IntegerValue(3); v.Kind != KindInteger || v.Integer != 3 {
		t.Errorf("IntegerValue(3) = %+v", v)
	}
	if v := QuadValue(1, 2, 3, 4); v.Kind != KindQuad || v.Quad != [4]int32{1, 2, 3, 4} {
		t.Errorf("QuadValue(1,2,3,4) = %+v", v)
	}
	if v := StringValue("xterm"); v.Kind != KindString || v.Str != "xterm" {
		t.Errorf("StringValue(xterm) = %+v", v)
	}
}
