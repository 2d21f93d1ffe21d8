package ipv6

// AddressFlags carries the per-address boolean properties derived
// during classification.
type AddressFlags struct {
	IsIPv4Mapped     bool `json:"is_ipv4_mapped"`
	IsIPv4Compatible bool `json:"is_ipv4_compatible"`
	IsEUI64          bool `json:"is_eui64"`
	IsSLAACEligible  bool `json:"is_slaac_eligible"`
}

// AddressRecord is the complete parse result for one textual input.
// A record is constructed once per Parse call and is immutable
// thereafter. Invalid input yields Valid=false with ErrorDetail set
// and every derived field left at its zero value.
type AddressRecord struct {
	RawInput    string `json:"raw_input"`
	Valid       bool   `json:"valid"`
	ErrorDetail string `json:"error_detail,omitempty"`

	Words        Word128 `json:"words"`
	PrefixLength int     `json:"prefix_length"`

	Classification  Classification `json:"classification,omitempty"`
	Scope           Scope          `json:"scope,omitempty"`
	Flags           AddressFlags   `json:"flags"`
	ComplianceNotes []string       `json:"compliance_notes,omitempty"`

	// Textual and binary views of the address value.
	Expanded   string `json:"expanded,omitempty"`
	Compressed string `json:"compressed,omitempty"`
	Binary     string `json:"binary,omitempty"`
	Hex        string `json:"hex,omitempty"`
	Integer    string `json:"integer,omitempty"`
	Base64     string `json:"base64,omitempty"`
	ReverseDNS string `json:"reverse_dns,omitempty"`

	// Network range for the parsed prefix.
	Network       string `json:"network,omitempty"`
	FirstAddress  string `json:"first_address,omitempty"`
	LastAddress   string `json:"last_address,omitempty"`
	HostCount     string `json:"host_count,omitempty"`
	HostCountPow2 string `json:"host_count_pow2,omitempty"`
}
