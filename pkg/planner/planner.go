// Package planner partitions an IPv6 prefix into an enumerable plan of
// equally-sized child subnets and merges adjacent prefixes into
// best-effort route summaries. It consumes already-valid network/prefix
// pairs through the ipv6 codec and never re-implements parsing.
package planner

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/sbanszky/advancedcalculator6/pkg/ipv6"
)

// DefaultMaxSubnets is the safety ceiling on generated subnet records
// when the caller supplies no limit. A /32 split to /64 would otherwise
// enumerate 2^32 records.
const DefaultMaxSubnets = 1 << 20

// Config configures a Planner.
type Config struct {
	// MaxSubnets caps the number of subnet records any single plan may
	// generate, regardless of the caller's limit. Zero selects
	// DefaultMaxSubnets.
	MaxSubnets int

	// Logger receives debug output. Nil selects a no-op logger.
	Logger *zap.Logger
}

// Planner generates subnet plans. Planners are stateless after
// construction and safe for concurrent use.
type Planner struct {
	maxSubnets int
	logger     *zap.Logger
}

// New creates a Planner.
func New(cfg Config) *Planner {
	maxSubnets := cfg.MaxSubnets
	if maxSubnets <= 0 {
		maxSubnets = DefaultMaxSubnets
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{maxSubnets: maxSubnets, logger: logger}
}

// SubnetRecord describes one child subnet of a plan. Immutable once
// generated.
type SubnetRecord struct {
	Network      string `json:"network"`
	PrefixLength int    `json:"prefix_length"`
	FirstAddress string `json:"first_address"`
	LastAddress  string `json:"last_address"`
	// BroadcastAddress duplicates LastAddress. IPv6 has no broadcast;
	// the field is kept for output symmetry only.
	BroadcastAddress string `json:"broadcast_address"`
	HostCount        string `json:"host_count"`
	HostCountPow2    string `json:"host_count_pow2"`
}

// SubnetPlan is an ordered enumeration of child subnets.
type SubnetPlan struct {
	OriginalPrefix     string         `json:"original_prefix"`
	BasePrefixLength   int            `json:"base_prefix_length"`
	TargetPrefixLength int            `json:"target_prefix_length"`
	Subnets            []SubnetRecord `json:"subnets"`
	// TotalPossibleSubnets is 2^(target-base) as a decimal string; the
	// value exceeds uint64 once the split spans more than 64 bits.
	TotalPossibleSubnets string `json:"total_possible_subnets"`
	GeneratedCount       int    `json:"generated_count"`
	Truncated            bool   `json:"truncated"`
}

// TotalSubnets returns 2^(targetPrefix-basePrefix), the number of
// child subnets a base prefix divides into at the target length. The
// base prefix is an explicit parameter rather than a fixed allocation
// boundary.
func TotalSubnets(basePrefix, targetPrefix int) (*big.Int, error) {
	if basePrefix < 0 || targetPrefix > ipv6.MaxPrefixLength || targetPrefix <= basePrefix {
		return nil, fmt.Errorf("%w: /%d within /%d", ErrInvalidTarget, targetPrefix, basePrefix)
	}
	return new(big.Int).Lsh(big.NewInt(1), uint(targetPrefix-basePrefix)), nil
}

// Plan partitions the network into child subnets of targetPrefixLen
// bits, enumerated in increasing numeric order of their network
// addresses. limit caps the number of generated records; a limit <= 0
// means "generate up to the total", subject to the planner's safety
// ceiling. The plan's Truncated field reports whether any subnets were
// omitted.
func (p *Planner) Plan(network string, targetPrefixLen, limit int) (*SubnetPlan, error) {
	rec := ipv6.Parse(network)
	if !rec.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPrefix, rec.ErrorDetail)
	}

	basePrefixLen := rec.PrefixLength
	total, err := TotalSubnets(basePrefixLen, targetPrefixLen)
	if err != nil {
		return nil, err
	}

	count := p.generationCount(total, limit)
	base := rec.Words.Network(basePrefixLen)
	subnetBits := targetPrefixLen - basePrefixLen

	subnets := make([]SubnetRecord, 0, count)
	for i := 0; i < count; i++ {
		// Write the subnet index into the bit range
		// [basePrefixLen, targetPrefixLen), MSB first.
		words := ipv6.WriteBits(base, basePrefixLen, subnetBits, uint64(i))
		subnets = append(subnets, newSubnetRecord(words, targetPrefixLen))
	}

	p.logger.Debug("subnet plan generated",
		zap.String("network", network),
		zap.Int("target_prefix", targetPrefixLen),
		zap.Int("generated", count),
		zap.String("total_possible", total.String()),
	)

	return &SubnetPlan{
		OriginalPrefix:       fmt.Sprintf("%s/%d", base.Compressed(), basePrefixLen),
		BasePrefixLength:     basePrefixLen,
		TargetPrefixLength:   targetPrefixLen,
		Subnets:              subnets,
		TotalPossibleSubnets: total.String(),
		GeneratedCount:       count,
		Truncated:            big.NewInt(int64(count)).Cmp(total) < 0,
	}, nil
}

// generationCount resolves min(limit, total) under the safety ceiling.
func (p *Planner) generationCount(total *big.Int, limit int) int {
	count := p.maxSubnets
	if limit > 0 && limit < count {
		count = limit
	}
	if total.IsInt64() && total.Int64() < int64(count) {
		count = int(total.Int64())
	}
	return count
}

func newSubnetRecord(words ipv6.Word128, plen int) SubnetRecord {
	network := words.Network(plen)
	last := words.LastAddress(plen)
	return SubnetRecord{
		Network:          fmt.Sprintf("%s/%d", network.Compressed(), plen),
		PrefixLength:     plen,
		FirstAddress:     network.Compressed(),
		LastAddress:      last.Compressed(),
		BroadcastAddress: last.Compressed(),
		HostCount:        ipv6.HostCount(plen).String(),
		HostCountPow2:    fmt.Sprintf("2^%d", ipv6.BitLen-plen),
	}
}
