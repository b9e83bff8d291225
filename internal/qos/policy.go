// Package qos implements endpoint QoS compatibility checking and
// BEST_AVAILABLE policy resolution.
package qos

import "fmt"

// Reliability is the QoS reliability policy.
type Reliability int

const (
	ReliabilitySystemDefault Reliability = iota
	ReliabilityReliable
	ReliabilityBestEffort
	ReliabilityUnknown
	ReliabilityBestAvailable
)

func (r Reliability) String() string {
	switch r {
	case ReliabilitySystemDefault:
		return "SYSTEM_DEFAULT"
	case ReliabilityReliable:
		return "RELIABLE"
	case ReliabilityBestEffort:
		return "BEST_EFFORT"
	case ReliabilityUnknown:
		return "UNKNOWN"
	case ReliabilityBestAvailable:
		return "BEST_AVAILABLE"
	default:
		return fmt.Sprintf("Reliability(%d)", int(r))
	}
}

// Durability is the QoS durability policy.
type Durability int

const (
	DurabilitySystemDefault Durability = iota
	DurabilityTransientLocal
	DurabilityVolatile
	DurabilityUnknown
	DurabilityBestAvailable
)

func (d Durability) String() string {
	switch d {
	case DurabilitySystemDefault:
		return "SYSTEM_DEFAULT"
	case DurabilityTransientLocal:
		return "TRANSIENT_LOCAL"
	case DurabilityVolatile:
		return "VOLATILE"
	case DurabilityUnknown:
		return "UNKNOWN"
	case DurabilityBestAvailable:
		return "BEST_AVAILABLE"
	default:
		return fmt.Sprintf("Durability(%d)", int(d))
	}
}

// Liveliness is the QoS liveliness policy.
type Liveliness int

const (
	LivelinessSystemDefault Liveliness = iota
	LivelinessAutomatic
	LivelinessManualByTopic
	LivelinessUnknown
	LivelinessBestAvailable
)

func (l Liveliness) String() string {
	switch l {
	case LivelinessSystemDefault:
		return "SYSTEM_DEFAULT"
	case LivelinessAutomatic:
		return "AUTOMATIC"
	case LivelinessManualByTopic:
		return "MANUAL_BY_TOPIC"
	case LivelinessUnknown:
		return "UNKNOWN"
	case LivelinessBestAvailable:
		return "BEST_AVAILABLE"
	default:
		return fmt.Sprintf("Liveliness(%d)", int(l))
	}
}

// HistoryKind is the QoS history policy.
type HistoryKind int

const (
	HistoryKeepLast HistoryKind = iota
	HistoryKeepAll
	HistorySystemDefault
	HistoryUnknown
)

// Duration mirrors a DDS duration: whole seconds plus nanoseconds in
// [0, 1e9). A zero-valued Duration is not a sentinel by itself — see
// Kind below.
type Duration struct {
	Sec  int64
	Nsec uint32
}

// DurationKind distinguishes a concrete Duration from the DEFAULT and
// BEST_AVAILABLE sentinels, since a Duration struct alone cannot carry
// "unset" the way spec.md's DEFAULT/BEST_AVAILABLE sentinels require.
type DurationKind int

const (
	// DurationDefault means "use the middleware's default for this field".
	DurationDefault DurationKind = iota
	// DurationSet means Value holds a concrete, caller-specified duration.
	DurationSet
	// DurationBestAvailable is the BEST_AVAILABLE resolution sentinel.
	DurationBestAvailable
)

// DurationPolicy is a deadline or liveliness-lease-duration field.
type DurationPolicy struct {
	Kind  DurationKind
	Value Duration
}

// Default returns a DEFAULT-sentinel duration policy.
func Default() DurationPolicy {
	return DurationPolicy{Kind: DurationDefault}
}

// BestAvailableDuration returns a BEST_AVAILABLE-sentinel duration policy.
func BestAvailableDuration() DurationPolicy {
	return DurationPolicy{Kind: DurationBestAvailable}
}

// Concrete returns a concrete duration policy set to d.
func Concrete(d Duration) DurationPolicy {
	return DurationPolicy{Kind: DurationSet, Value: d}
}

// IsDefault reports whether p is the DEFAULT sentinel.
func (p DurationPolicy) IsDefault() bool {
	return p.Kind == DurationDefault
}

// IsBestAvailable reports whether p is the BEST_AVAILABLE sentinel.
func (p DurationPolicy) IsBestAvailable() bool {
	return p.Kind == DurationBestAvailable
}

// Less reports whether p represents a strictly smaller duration than
// other. Both must be DurationSet; callers check Kind first.
func (p DurationPolicy) Less(other DurationPolicy) bool {
	if p.Value.Sec != other.Value.Sec {
		return p.Value.Sec < other.Value.Sec
	}
	return p.Value.Nsec < other.Value.Nsec
}

// Max returns whichever of a, b is the larger concrete duration.
func Max(a, b Duration) Duration {
	if a.Sec != b.Sec {
		if a.Sec > b.Sec {
			return a
		}
		return b
	}
	if a.Nsec > b.Nsec {
		return a
	}
	return b
}

// Min returns whichever of a, b is the smaller concrete duration.
func Min(a, b Duration) Duration {
	if a.Sec != b.Sec {
		if a.Sec < b.Sec {
			return a
		}
		return b
	}
	if a.Nsec < b.Nsec {
		return a
	}
	return b
}

// Profile is the fixed-shape QoS policy bundle carried by every
// EntityInfo and negotiated by this package.
type Profile struct {
	Reliability             Reliability
	Durability              Durability
	Liveliness              Liveliness
	Deadline                DurationPolicy
	LivelinessLeaseDuration DurationPolicy
	HistoryKind             HistoryKind
	HistoryDepth            int32
	Lifespan                DurationPolicy
}

// HasBestAvailable reports whether any policy field in p is still the
// BEST_AVAILABLE sentinel and therefore requires resolution before the
// profile may be handed to the wire layer.
func (p Profile) HasBestAvailable() bool {
	return p.Reliability == ReliabilityBestAvailable ||
		p.Durability == DurabilityBestAvailable ||
		p.Liveliness == LivelinessBestAvailable ||
		p.Deadline.IsBestAvailable() ||
		p.LivelinessLeaseDuration.IsBestAvailable()
}
