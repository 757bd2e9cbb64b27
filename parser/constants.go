package parser

// HTTP methods that may appear as operations in a path item, in the order
// they are reported.
const (
	MethodGet     = "get"
	MethodPost    = "post"
	MethodPut     = "put"
	MethodDelete  = "delete"
	MethodPatch   = "patch"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodTrace   = "trace"
)

// HTTPMethods lists every operation key a path item may hold.
var HTTPMethods = []string{
	MethodGet, MethodPost, MethodPut, MethodDelete,
	MethodPatch, MethodOptions, MethodHead, MethodTrace,
}
