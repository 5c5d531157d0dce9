package types

import (
	"fmt"
	"math"
	"strings"

	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
)

// SigmaBoolean is a node of a sigma proposition tree.
type SigmaBoolean interface {
	isSigmaBoolean()
}

// ProveDlog is knowledge of the discrete log of H.
type ProveDlog struct {
	H GroupElement
}

// ProveDHTuple is knowledge of x with H = G^x and V = U^x.
type ProveDHTuple struct {
	G, H, U, V GroupElement
}

type CAND struct {
	Children []SigmaBoolean
}

type COR struct {
	Children []SigmaBoolean
}

// CThreshold holds when at least K of the children hold.
type CThreshold struct {
	K        uint16
	Children []SigmaBoolean
}

func (ProveDlog) isSigmaBoolean()    {}
func (ProveDHTuple) isSigmaBoolean() {}
func (CAND) isSigmaBoolean()         {}
func (COR) isSigmaBoolean()          {}
func (CThreshold) isSigmaBoolean()   {}

// SigmaProp is the value of type SigmaProp.
type SigmaProp struct {
	Prop SigmaBoolean
}

func (SigmaProp) Kind() TypeKind { return KindSigmaProp }

func (s SigmaProp) String() string {
	return formatSigma(s.Prop)
}

// ValidateSigma checks the shape of a proposition tree: conjectures carry at
// least one child and fit a 16-bit count, a threshold does not exceed it, and
// every point lies on Secp256k1.
func ValidateSigma(sb SigmaBoolean) error {
	return validateSigma(sb, true)
}

func validateSigma(sb SigmaBoolean, points bool) error {
	switch sb := sb.(type) {
	case ProveDlog:
		if points {
			return Secp256k1.ValidatePoint(sb.H[:])
		}
		return nil
	case ProveDHTuple:
		if !points {
			return nil
		}
		for _, g := range []GroupElement{sb.G, sb.H, sb.U, sb.V} {
			if err := Secp256k1.ValidatePoint(g[:]); err != nil {
				return err
			}
		}
		return nil
	case CAND:
		return validateChildren(sb.Children, points)
	case COR:
		return validateChildren(sb.Children, points)
	case CThreshold:
		if int(sb.K) > len(sb.Children) {
			return fmt.Errorf("%w: threshold %d over %d children", sigmaerrors.ErrTypeMismatch, sb.K, len(sb.Children))
		}
		return validateChildren(sb.Children, points)
	default:
		return fmt.Errorf("%w: %T", sigmaerrors.ErrUnknownSigmaProp, sb)
	}
}

func validateChildren(children []SigmaBoolean, points bool) error {
	if len(children) == 0 || len(children) > math.MaxUint16 {
		return fmt.Errorf("%w: conjecture with %d children", sigmaerrors.ErrTypeMismatch, len(children))
	}
	for _, c := range children {
		if err := validateSigma(c, points); err != nil {
			return err
		}
	}
	return nil
}

// sigmaHeight is the number of nodes on the longest root-to-leaf path.
func sigmaHeight(sb SigmaBoolean) int {
	var children []SigmaBoolean
	switch sb := sb.(type) {
	case CAND:
		children = sb.Children
	case COR:
		children = sb.Children
	case CThreshold:
		children = sb.Children
	}
	max := 0
	for _, c := range children {
		if h := sigmaHeight(c); h > max {
			max = h
		}
	}
	return 1 + max
}

func cloneSigma(sb SigmaBoolean) SigmaBoolean {
	switch sb := sb.(type) {
	case CAND:
		return CAND{Children: cloneChildren(sb.Children)}
	case COR:
		return COR{Children: cloneChildren(sb.Children)}
	case CThreshold:
		return CThreshold{K: sb.K, Children: cloneChildren(sb.Children)}
	default:
		return sb
	}
}

func cloneChildren(children []SigmaBoolean) []SigmaBoolean {
	out := make([]SigmaBoolean, len(children))
	for i, c := range children {
		out[i] = cloneSigma(c)
	}
	return out
}

func sigmaEqual(a, b SigmaBoolean) bool {
	switch a := a.(type) {
	case CAND:
		b, ok := b.(CAND)
		return ok && childrenEqual(a.Children, b.Children)
	case COR:
		b, ok := b.(COR)
		return ok && childrenEqual(a.Children, b.Children)
	case CThreshold:
		b, ok := b.(CThreshold)
		return ok && a.K == b.K && childrenEqual(a.Children, b.Children)
	default:
		return a == b
	}
}

func childrenEqual(a, b []SigmaBoolean) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sigmaEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func formatSigma(sb SigmaBoolean) string {
	switch sb := sb.(type) {
	case ProveDlog:
		return "proveDlog(" + sb.H.String() + ")"
	case ProveDHTuple:
		return fmt.Sprintf("proveDHTuple(%s, %s, %s, %s)", sb.G, sb.H, sb.U, sb.V)
	case CAND:
		return "allOf(" + formatChildren(sb.Children) + ")"
	case COR:
		return "anyOf(" + formatChildren(sb.Children) + ")"
	case CThreshold:
		return fmt.Sprintf("atLeast(%d, %s)", sb.K, formatChildren(sb.Children))
	default:
		return "<invalid sigma>"
	}
}

func formatChildren(children []SigmaBoolean) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = formatSigma(c)
	}
	return strings.Join(parts, ", ")
}
