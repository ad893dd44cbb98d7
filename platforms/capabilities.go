package platforms

import "github.com/kart-io/metahub/core"

// capabilityMatrix is the fixed (platform, operation) support table. It is
// set at package init and read-only thereafter; pairs absent from the table
// resolve to unsupported. WhatsApp's Cloud API is webhook-driven and offers
// no history read, no feed, and no insights, so it supports only sends.
var capabilityMatrix = map[core.Platform]map[core.Operation]bool{
	core.PlatformFacebook: {
		core.OpSendMessage:  true,
		core.OpGetMessages:  true,
		core.OpPostContent:  true,
		core.OpGetAnalytics: true,
	},
	core.PlatformInstagram: {
		core.OpSendMessage:  true,
		core.OpGetMessages:  true,
		core.OpPostContent:  true,
		core.OpGetAnalytics: true,
	},
	core.PlatformWhatsApp: {
		core.OpSendMessage: true,
	},
}

// Supports reports whether platform can service operation. Pure and total:
// unknown platforms or operations are simply unsupported.
func Supports(platform core.Platform, operation core.Operation) bool {
	return capabilityMatrix[platform][operation]
}

// SupportedOperations returns the operations platform can service, in the
// canonical operation order.
func SupportedOperations(platform core.Platform) []core.Operation {
	all := []core.Operation{core.OpSendMessage, core.OpGetMessages, core.OpPostContent, core.OpGetAnalytics}
	var ops []core.Operation
	for _, op := range all {
		if Supports(platform, op) {
			ops = append(ops, op)
		}
	}
	return ops
}
