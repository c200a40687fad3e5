package liquid

// RegisterBuiltinTags wires every control-flow tag (§4.4) into reg. An
// Engine calls this once, at setup, before any render.
func RegisterBuiltinTags(reg *TagRegistry) {
	registerIfTags(reg)
	registerUnlessTags(reg)
	registerCaseTags(reg)
	registerForTags(reg)
	registerTablerowTags(reg)
	registerLoopControlTags(reg)
	registerAssignTags(reg)
	registerCaptureTags(reg)
	registerCounterTags(reg)
	registerCycleTags(reg)
	registerCommentTags(reg)
	registerRawTag(reg)
}
