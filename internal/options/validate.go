// Package options holds the input-source check shared by the parser, the
// differ and the MCP tools.
package options

// CountSet returns how many of the given input-source flags are set.
func CountSet(sources ...bool) int {
	n := 0
	for _, set := range sources {
		if set {
			n++
		}
	}
	return n
}

// RequireOne returns none when no source is set and many when more than one
// is. It returns nil when exactly one source is set.
func RequireOne(none, many error, sources ...bool) error {
	switch CountSet(sources...) {
	case 0:
		return none
	case 1:
		return nil
	default:
		return many
	}
}
