package liquid

// raw (§4.1 lexer, §4.4): the lexer's scanRaw already captures everything
// up to {% endraw %} as a single literal Text token, so by the time the
// parser sees a "raw" Tag token it has nothing left to do — no body tokens
// follow, there is no matching "endraw" token to close against, and the
// keyword is registered only so an unknown-tag warning isn't logged for it.
func registerRawTag(reg *TagRegistry) {
	reg.Register(&TagClass{
		Keyword: "raw",
		Variant: VariantPlain,
	})
}
