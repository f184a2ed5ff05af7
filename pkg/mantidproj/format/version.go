package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CurrentVersion is the format version written by this package (0.9.5).
const CurrentVersion = 95

// Latest is an upper bound for open-ended version ranges.
const Latest = 1 << 30

// ProductMantidPlot and ProductQtiPlot are the accepted header products.
const (
	ProductMantidPlot = "MantidPlot"
	ProductQtiPlot    = "QtiPlot"
)

// DefaultProducts are the header products accepted when none are configured.
var DefaultProducts = []string{ProductMantidPlot, ProductQtiPlot}

// ErrMalformedHeader indicates that the first record is not a project header
// of an accepted product.
var ErrMalformedHeader = errors.New("malformed project header")

// Header is the decoded first record of a project file.
type Header struct {
	Product string
	Major   int
	Minor   int
	Patch   int
}

// Version returns the comparable integer 100*major + 10*minor + patch.
func (h Header) Version() int {
	return 100*h.Major + 10*h.Minor + h.Patch
}

// String renders the header record.
func (h Header) String() string {
	return fmt.Sprintf("%s %d.%d.%d project file", h.Product, h.Major, h.Minor, h.Patch)
}

// HeaderFor returns the header that encodes version for product.
func HeaderFor(product string, version int) Header {
	return Header{
		Product: product,
		Major:   version / 100,
		Minor:   (version / 10) % 10,
		Patch:   version % 10,
	}
}

// ParseHeader decodes "<product> <major>.<minor>.<patch> project file".
func ParseHeader(line string, accepted []string) (Header, error) {
	if len(accepted) == 0 {
		accepted = DefaultProducts
	}
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return Header{}, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}
	known := false
	for _, p := range accepted {
		if parts[0] == p {
			known = true
			break
		}
	}
	if !known {
		return Header{}, fmt.Errorf("%w: unknown product %q", ErrMalformedHeader, parts[0])
	}

	triple := strings.Split(parts[1], ".")
	if len(triple) != 3 {
		return Header{}, fmt.Errorf("%w: bad version %q", ErrMalformedHeader, parts[1])
	}
	var nums [3]int
	for i, s := range triple {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return Header{}, fmt.Errorf("%w: bad version %q", ErrMalformedHeader, parts[1])
		}
		nums[i] = n
	}
	return Header{Product: parts[0], Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}
