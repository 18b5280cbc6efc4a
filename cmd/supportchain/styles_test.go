package main

import "testing"

func TestNewStyles_PlainWhenUncolored(t *testing.T) {
	st := newStyles(false)

	for name, rendered := range map[string]string{
		"header":     st.header.Render("plain"),
		"stageLabel": st.stageLabel.Render("plain"),
		"errText":    st.errText.Render("plain"),
		"muted":      st.muted.Render("plain"),
	} {
		if rendered != "plain" {
			t.Errorf("%s style must pass text through unstyled, got %q", name, rendered)
		}
	}
}

func TestColorEnabled_RespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if colorEnabled() {
		t.Error("NO_COLOR must disable color output")
	}
}
