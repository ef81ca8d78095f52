package config

import (
	"fmt"
	"strings"
)

// Variant names one of the preset feature combinations of the result list
type Variant string

const (
	VariantPaginated Variant = "paginated" // "More" button only
	VariantLoading   Variant = "loading"   // plus loading indicator
	VariantError     Variant = "error"     // plus error message and retry
	VariantInfinite  Variant = "infinite"  // scroll trigger instead of the button
	VariantComposed  Variant = "composed"  // everything
)

// Variants lists the presets in the order they build on each other
var Variants = []Variant{VariantPaginated, VariantLoading, VariantError, VariantInfinite, VariantComposed}

// Features are the independent behaviors a variant switches on
type Features struct {
	Loading        bool
	More           bool
	ErrorRetry     bool
	InfiniteScroll bool
}

// Features resolves the variant preset
func (v Variant) Features() (Features, error) {
	switch Variant(strings.ToLower(string(v))) {
	case VariantPaginated:
		return Features{More: true}, nil
	case VariantLoading:
		return Features{Loading: true, More: true}, nil
	case VariantError:
		return Features{Loading: true, More: true, ErrorRetry: true}, nil
	case VariantInfinite:
		return Features{Loading: true, ErrorRetry: true, InfiniteScroll: true}, nil
	case VariantComposed, "":
		return Features{Loading: true, More: true, ErrorRetry: true, InfiniteScroll: true}, nil
	}
	return Features{}, fmt.Errorf("unknown variant %q (want one of %v)", string(v), Variants)
}
