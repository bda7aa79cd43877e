// SPDX-License-Identifier: Apache-2.0

package predicate

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/mountebank-go/predicate/internal/value"
)

// runXPath implements the XPath selector (spec.md §4.2): evaluate
// selector against the textual form of input under the given namespace
// bindings, collapsing to a String when exactly one node matches and to
// a Sequence of String otherwise (empty on no match).
func runXPath(sel XPathSelector, input string, caseSensitive bool) (value.Value, error) {
	selector := sel.Selector
	ns := sel.NS

	if !caseSensitive {
		selector = lowercase(selector)
		ns = lowercaseNS(ns)
	}

	doc, err := xmlquery.Parse(strings.NewReader(input))
	if err != nil {
		return value.Value{}, NewValidationError("invalid xpath input: "+err.Error(), value.StringValue(sel.Selector))
	}

	var nodes []*xmlquery.Node

	if len(ns) > 0 {
		expr, err := xpath.CompileWithNS(selector, ns)
		if err != nil {
			return value.Value{}, NewValidationError(
				"invalid xpath selector: "+err.Error(), value.StringValue(sel.Selector))
		}

		nodes = xmlquery.QuerySelectorAll(doc, expr)
	} else {
		nodes, err = xmlquery.QueryAll(doc, selector)
		if err != nil {
			return value.Value{}, NewValidationError(
				"invalid xpath selector: "+err.Error(), value.StringValue(sel.Selector))
		}
	}

	return collapseXPathResults(nodes), nil
}

func collapseXPathResults(nodes []*xmlquery.Node) value.Value {
	if len(nodes) == 1 {
		return value.StringValue(nodes[0].InnerText())
	}

	items := make([]value.Value, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, value.StringValue(n.InnerText()))
	}

	return value.SequenceValue(items)
}

func lowercaseNS(ns map[string]string) map[string]string {
	if ns == nil {
		return nil
	}

	out := make(map[string]string, len(ns))
	for k, v := range ns {
		out[lowercase(k)] = lowercase(v)
	}

	return out
}
