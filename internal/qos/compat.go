package qos

import "strings"

// Verdict is the outcome of a compatibility check between a publisher
// and a subscriber profile.
type Verdict int

const (
	VerdictOK Verdict = iota
	VerdictWarning
	VerdictError
)

func (v Verdict) String() string {
	switch v {
	case VerdictOK:
		return "OK"
	case VerdictWarning:
		return "WARNING"
	case VerdictError:
		return "ERROR"
	default:
		return "UNKNOWN_VERDICT"
	}
}

// reasonSink collects human-readable diagnosis fragments. A nil sink
// means the caller doesn't want the text, mirroring spec.md's optional
// reason buffer without needing the C API's null-pointer-with-size
// error path (see SPEC_FULL.md's qos section).
type reasonSink struct {
	sb *strings.Builder
}

func (s reasonSink) add(reason string) {
	if s.sb == nil {
		return
	}
	if s.sb.Len() > 0 {
		s.sb.WriteByte(';')
	}
	s.sb.WriteString(reason)
	s.sb.WriteByte(';')
}

// CheckCompatible diagnoses compatibility between a publisher and a
// subscriber QoS profile. If reason is non-nil, human-readable
// fragments are appended to it, each terminated with ';'. The decision
// table below is fixed: ERROR rows are unconditional, WARNING rows
// apply only when no ERROR has been recorded yet.
func CheckCompatible(pub, sub Profile, reason *strings.Builder) Verdict {
	sink := reasonSink{sb: reason}
	verdict := VerdictOK

	// Reliability: best-effort publisher can't feed a reliable subscriber.
	if pub.Reliability == ReliabilityBestEffort && sub.Reliability == ReliabilityReliable {
		sink.add("Best effort publisher and reliable subscription")
		verdict = VerdictError
	} else if (isUnresolved(int(pub.Reliability), int(ReliabilitySystemDefault), int(ReliabilityUnknown)) ||
		isUnresolved(int(sub.Reliability), int(ReliabilitySystemDefault), int(ReliabilityUnknown))) &&
		pub.Reliability != sub.Reliability {
		verdict = warnIfOK(verdict, &sink, "Reliability policy of publisher or subscription is not known, compatibility unknown")
	}

	// Durability: volatile publisher can't satisfy a transient-local subscriber.
	if pub.Durability == DurabilityVolatile && sub.Durability == DurabilityTransientLocal {
		sink.add("Volatile publisher and transient local subscription")
		verdict = VerdictError
	} else if (isUnresolved(int(pub.Durability), int(DurabilitySystemDefault), int(DurabilityUnknown)) ||
		isUnresolved(int(sub.Durability), int(DurabilitySystemDefault), int(DurabilityUnknown))) &&
		pub.Durability != sub.Durability {
		verdict = warnIfOK(verdict, &sink, "Durability policy of publisher or subscription is not known, compatibility unknown")
	}

	// Deadline: DEFAULT publisher can't satisfy a concrete subscriber request;
	// both concrete requires sub >= pub.
	switch {
	case pub.Deadline.IsDefault() && !sub.Deadline.IsDefault() && !sub.Deadline.IsBestAvailable():
		sink.add("Subscription requested a deadline but publisher offers none")
		verdict = VerdictError
	case pub.Deadline.Kind == DurationSet && sub.Deadline.Kind == DurationSet &&
		sub.Deadline.Less(pub.Deadline):
		sink.add("Subscription deadline is less than publisher's offered deadline")
		verdict = VerdictError
	}

	// Liveliness: automatic publisher can't satisfy a manual-by-topic subscriber.
	if pub.Liveliness == LivelinessAutomatic && sub.Liveliness == LivelinessManualByTopic {
		sink.add("Publisher's liveliness is automatic and subscription requires manual by topic")
		verdict = VerdictError
	} else if (isUnresolved(int(pub.Liveliness), int(LivelinessSystemDefault), int(LivelinessUnknown)) ||
		isUnresolved(int(sub.Liveliness), int(LivelinessSystemDefault), int(LivelinessUnknown))) &&
		pub.Liveliness != sub.Liveliness {
		verdict = warnIfOK(verdict, &sink, "Liveliness policy of publisher or subscription is not known, compatibility unknown")
	}

	// Lease duration: same DEFAULT/ordering rules as deadline.
	switch {
	case pub.LivelinessLeaseDuration.IsDefault() && !sub.LivelinessLeaseDuration.IsDefault() && !sub.LivelinessLeaseDuration.IsBestAvailable():
		sink.add("Subscription requested a liveliness lease duration but publisher offers none")
		verdict = VerdictError
	case pub.LivelinessLeaseDuration.Kind == DurationSet && sub.LivelinessLeaseDuration.Kind == DurationSet &&
		sub.LivelinessLeaseDuration.Less(pub.LivelinessLeaseDuration):
		sink.add("Subscription's liveliness lease duration is less than publisher's")
		verdict = VerdictError
	}

	return verdict
}

// warnIfOK records a WARNING reason and bumps verdict to WARNING, but
// only when verdict is still OK — an ERROR already recorded by an
// earlier row must never be downgraded.
func warnIfOK(verdict Verdict, sink *reasonSink, reason string) Verdict {
	if verdict != VerdictOK {
		return verdict
	}
	sink.add(reason)
	return VerdictWarning
}

// isUnresolved reports whether v is the SYSTEM_DEFAULT or UNKNOWN
// variant of its policy enum, i.e. a value whose eventual resolution
// is not yet known to this side of the negotiation.
func isUnresolved(v, sysDefault, unknown int) bool {
	return v == sysDefault || v == unknown
}
