package checker

import (
	"go.uber.org/multierr"

	"github.com/wshca/simit/hir"
	"github.com/wshca/simit/ir"
)

// checkEndpoints lowers an edge-set type's endpoint list, resolving each
// endpoint's set symbol independently and accumulating every failure
// with multierr rather than stopping at the first bad endpoint: an edge
// set with several malformed endpoints should surface a diagnostic per
// endpoint, in one pass (spec §4 error-recovery model).
func (c *Context) checkEndpoints(endpoints []*hir.Endpoint) ([]ir.Type, error) {
	var errs error
	types := make([]ir.Type, 0, len(endpoints))
	for _, ep := range endpoints {
		if !c.symbols.has(ep.SetName, false) {
			errs = multierr.Append(errs, c.undeclaredSetErr(ep))
			continue
		}
		v, _ := c.symbols.get(ep.SetName)
		set, ok := v.Type.(*ir.SetType)
		if !ok {
			errs = multierr.Append(errs, c.notASetErr(ep))
			continue
		}
		types = append(types, set.Elem)
	}
	if errs != nil {
		return nil, errs
	}
	return types, nil
}

// undeclaredSetErr reports (and represents, for multierr's aggregation)
// an endpoint naming a set that was never declared.
func (c *Context) undeclaredSetErr(ep *hir.Endpoint) error {
	c.appender.Undeclared(ep.Span(), "set", ep.SetName)
	return &diagError{ep.SetName}
}

func (c *Context) notASetErr(ep *hir.Endpoint) error {
	c.appender.Appendf(ep.Span(), "'%s' is not a set", ep.SetName)
	return &diagError{ep.SetName}
}

// diagError is a sentinel error value used only so multierr.Append has
// something non-nil to accumulate; the user-facing message was already
// appended to the diagnostic sink at the call site.
type diagError struct{ name string }

func (e *diagError) Error() string { return "invalid endpoint: " + e.name }
