package theme

import "testing"

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"Success", "success"},
		{"created", "success"},
		{"target-attached", "success"},
		{"Failed", "error"},
		{"already-present", "warning"},
		{"rule-created", "warning"},
		{"something-random", "muted"},
	}

	named := map[string]any{"success": Success, "error": Error, "warning": Warning, "muted": Muted}
	for _, tt := range tests {
		if c := StatusColor(tt.status); c != named[tt.want] {
			t.Errorf("%s: got %v, want %s", tt.status, c, tt.want)
		}
	}
}

func TestRenderStatus_ContainsBullet(t *testing.T) {
	r := RenderStatus("Success")
	if !containsRune(r, '●') {
		t.Error("RenderStatus should contain bullet ●")
	}
}

func TestAccountStyle_Pads(t *testing.T) {
	rendered := AccountStyle.Render("1")
	if len([]rune(rendered)) < 14 {
		t.Errorf("expected padded account column, got %q", rendered)
	}
}
