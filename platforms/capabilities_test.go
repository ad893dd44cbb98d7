package platforms

import (
	"testing"

	"github.com/kart-io/metahub/core"
)

func TestSupports(t *testing.T) {
	tests := []struct {
		platform  core.Platform
		operation core.Operation
		want      bool
	}{
		{core.PlatformFacebook, core.OpSendMessage, true},
		{core.PlatformFacebook, core.OpGetMessages, true},
		{core.PlatformFacebook, core.OpPostContent, true},
		{core.PlatformFacebook, core.OpGetAnalytics, true},
		{core.PlatformInstagram, core.OpSendMessage, true},
		{core.PlatformInstagram, core.OpGetMessages, true},
		{core.PlatformInstagram, core.OpPostContent, true},
		{core.PlatformInstagram, core.OpGetAnalytics, true},
		{core.PlatformWhatsApp, core.OpSendMessage, true},
		{core.PlatformWhatsApp, core.OpGetMessages, false},
		{core.PlatformWhatsApp, core.OpPostContent, false},
		{core.PlatformWhatsApp, core.OpGetAnalytics, false},
		{core.Platform("telegram"), core.OpSendMessage, false},
		{core.PlatformFacebook, core.Operation("delete_message"), false},
	}

	for _, tt := range tests {
		t.Run(tt.platform.String()+"/"+tt.operation.String(), func(t *testing.T) {
			if got := Supports(tt.platform, tt.operation); got != tt.want {
				t.Errorf("Supports(%s, %s) = %v, want %v", tt.platform, tt.operation, got, tt.want)
			}
		})
	}
}

func TestSupportedOperations(t *testing.T) {
	ops := SupportedOperations(core.PlatformWhatsApp)
	if len(ops) != 1 || ops[0] != core.OpSendMessage {
		t.Errorf("whatsapp operations = %v, want [send_message]", ops)
	}

	if got := len(SupportedOperations(core.PlatformFacebook)); got != 4 {
		t.Errorf("facebook supports %d operations, want 4", got)
	}

	if got := SupportedOperations(core.Platform("unknown")); got != nil {
		t.Errorf("unknown platform operations = %v, want none", got)
	}
}
