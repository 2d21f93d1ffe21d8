package ipv6

// Classification is the RFC address category of an address. Exactly one
// classification applies to any address.
type Classification string

// Classifications, in decision-list priority order.
const (
	ClassUnspecified    Classification = "Unspecified"
	ClassLoopback       Classification = "Loopback"
	ClassLinkLocal      Classification = "LinkLocal"
	ClassUniqueLocal    Classification = "UniqueLocal"
	ClassMulticast      Classification = "Multicast"
	ClassIPv4Mapped     Classification = "IPv4Mapped"
	ClassIPv4Compatible Classification = "IPv4Compatible"
	ClassTeredo         Classification = "Teredo"
	ClassSixToFour      Classification = "SixToFour"
	ClassDocumentation  Classification = "Documentation"
	ClassGlobalUnicast  Classification = "GlobalUnicast"
	ClassReserved       Classification = "Reserved"
)

// Scope is the topological reach of an address's validity.
type Scope string

// Scopes.
const (
	ScopeInterfaceLocal    Scope = "InterfaceLocal"
	ScopeLinkLocal         Scope = "LinkLocal"
	ScopeAdminLocal        Scope = "AdminLocal"
	ScopeSiteLocal         Scope = "SiteLocal"
	ScopeOrganizationLocal Scope = "OrganizationLocal"
	ScopeGlobal            Scope = "Global"
)

// classRules is the fixed-priority decision list: the first matching
// predicate wins. The catch-all Reserved classification is applied by
// Classify when nothing matches.
var classRules = []struct {
	class Classification
	match func(Word128) bool
}{
	{ClassUnspecified, func(w Word128) bool { return w.IsZero() }},
	{ClassLoopback, isLoopback},
	{ClassLinkLocal, func(w Word128) bool { return w[0]&0xffc0 == 0xfe80 }},   // fe80::/10
	{ClassUniqueLocal, func(w Word128) bool { return w[0]&0xfe00 == 0xfc00 }}, // fc00::/7
	{ClassMulticast, func(w Word128) bool { return w[0]&0xff00 == 0xff00 }},   // ff00::/8
	{ClassIPv4Mapped, isMappedPattern},
	{ClassIPv4Compatible, isCompatiblePattern},
	{ClassTeredo, func(w Word128) bool { return w[0] == 0x2001 && w[1] == 0 }},
	{ClassSixToFour, func(w Word128) bool { return w[0] == 0x2002 }},
	{ClassDocumentation, func(w Word128) bool { return w[0] == 0x2001 && w[1] >= 0x0db8 && w[1] <= 0x0dbf }},
	{ClassGlobalUnicast, func(w Word128) bool { return w[0]&0xe000 == 0x2000 }}, // 2000::/3
}

// Classify maps an address to its single classification by evaluating
// the decision list top to bottom.
func Classify(w Word128) Classification {
	for _, r := range classRules {
		if r.match(w) {
			return r.class
		}
	}
	return ClassReserved
}

func isLoopback(w Word128) bool {
	for i := 0; i < Words-1; i++ {
		if w[i] != 0 {
			return false
		}
	}
	return w[Words-1] == 1
}

// isMappedPattern matches ::ffff:0:0/96.
func isMappedPattern(w Word128) bool {
	for i := 0; i < 5; i++ {
		if w[i] != 0 {
			return false
		}
	}
	return w[5] == 0xffff
}

// isCompatiblePattern matches the deprecated ::/96 embedding. Loopback
// and unspecified are excluded by earlier rules in the decision list;
// standalone flag derivation excludes them explicitly.
func isCompatiblePattern(w Word128) bool {
	for i := 0; i < 6; i++ {
		if w[i] != 0 {
			return false
		}
	}
	return true
}

// multicastScopes decodes the 4-bit scope field in the low nibble of
// word 0 (RFC 4291 section 2.7). Unassigned values fall back to Global.
var multicastScopes = map[uint16]Scope{
	0x1: ScopeInterfaceLocal,
	0x2: ScopeLinkLocal,
	0x4: ScopeAdminLocal,
	0x5: ScopeSiteLocal,
	0x8: ScopeOrganizationLocal,
	0xe: ScopeGlobal,
}

// ScopeOf derives the address scope from its classification. Multicast
// scope is keyed by the scope field embedded in the address.
func ScopeOf(class Classification, w Word128) Scope {
	switch class {
	case ClassLoopback, ClassUnspecified:
		return ScopeInterfaceLocal
	case ClassLinkLocal:
		return ScopeLinkLocal
	case ClassUniqueLocal:
		return ScopeOrganizationLocal
	case ClassMulticast:
		if s, ok := multicastScopes[w[0]&0x000f]; ok {
			return s
		}
		return ScopeGlobal
	default:
		return ScopeGlobal
	}
}

// deriveFlags computes the per-address boolean properties. The mapped
// and compatible flags mirror the classification patterns but are
// evaluated independently of decision-list priority.
func deriveFlags(w Word128, plen int) AddressFlags {
	compatible := isCompatiblePattern(w)
	if compatible {
		// Requires a nonzero low 64 bits that is not loopback's ::1.
		lowZero := w[4] == 0 && w[5] == 0 && w[6] == 0 && w[7] == 0
		lowOne := w[4] == 0 && w[5] == 0 && w[6] == 0 && w[7] == 1
		compatible = !lowZero && !lowOne
	}
	return AddressFlags{
		IsIPv4Mapped:     isMappedPattern(w),
		IsIPv4Compatible: compatible,
		IsEUI64:          isEUI64(w),
		IsSLAACEligible:  plen == 64,
	}
}

// isEUI64 reports whether the interface identifier carries the ff:fe
// filler that EUI-64 expansion inserts between the halves of a 48-bit
// hardware address (RFC 4291 section 2.5.1: bytes 11 and 12 of the
// address).
func isEUI64(w Word128) bool {
	return w[5]&0x00ff == 0x00ff && w[6]&0xff00 == 0xfe00
}

// complianceNotes lists the RFCs the address conforms to. RFC 4291 and
// RFC 5952 apply to every valid address; range-specific RFCs are
// additive.
func complianceNotes(class Classification) []string {
	notes := []string{
		"RFC 4291: valid IPv6 addressing architecture representation",
		"RFC 5952: canonical text representation available",
	}
	switch class {
	case ClassUniqueLocal:
		notes = append(notes, "RFC 4193: unique local IPv6 unicast address")
	case ClassLinkLocal:
		notes = append(notes, "RFC 4007: link-local scope rules apply")
	}
	return notes
}
