package qos

import "context"

// PublisherInfo is the subset of a peer publisher's announced QoS that
// subscription-side BEST_AVAILABLE resolution needs.
type PublisherInfo struct {
	QoS Profile
}

// SubscriberInfo is the subset of a peer subscriber's announced QoS
// that publisher-side BEST_AVAILABLE resolution needs.
type SubscriberInfo struct {
	QoS Profile
}

// ResolveSubscription replaces every BEST_AVAILABLE policy in sub with
// a concrete value chosen conservatively against the given publishers:
// it picks whichever policy every publisher can satisfy, so the
// subscription is guaranteed to connect. An empty peers slice resolves
// every BEST_AVAILABLE field to its most conservative value, the same
// as if every (nonexistent) publisher policy were DEFAULT/weakest
// (spec.md §9, Open Question (a)).
func ResolveSubscription(peers []PublisherInfo, sub *Profile) {
	if sub.Reliability == ReliabilityBestAvailable {
		sub.Reliability = ReliabilityBestEffort
		if allPublishers(peers, func(p PublisherInfo) bool { return p.QoS.Reliability == ReliabilityReliable }) {
			sub.Reliability = ReliabilityReliable
		}
	}
	if sub.Durability == DurabilityBestAvailable {
		sub.Durability = DurabilityVolatile
		if allPublishers(peers, func(p PublisherInfo) bool { return p.QoS.Durability == DurabilityTransientLocal }) {
			sub.Durability = DurabilityTransientLocal
		}
	}
	if sub.Liveliness == LivelinessBestAvailable {
		sub.Liveliness = LivelinessAutomatic
		if allPublishers(peers, func(p PublisherInfo) bool { return p.QoS.Liveliness == LivelinessManualByTopic }) {
			sub.Liveliness = LivelinessManualByTopic
		}
	}
	if sub.Deadline.IsBestAvailable() {
		sub.Deadline = resolveDurationAgainstAll(peers, func(p PublisherInfo) DurationPolicy { return p.QoS.Deadline }, Max)
	}
	if sub.LivelinessLeaseDuration.IsBestAvailable() {
		sub.LivelinessLeaseDuration = resolveDurationAgainstAll(peers, func(p PublisherInfo) DurationPolicy { return p.QoS.LivelinessLeaseDuration }, Max)
	}
}

// ResolvePublisher replaces every BEST_AVAILABLE policy in pub with a
// concrete value. Reliability and durability resolve unconditionally
// to the highest service level (a publisher can always offer more than
// a subscriber asked for); liveliness, deadline and lease resolve
// against the tightest observed subscriber request, since the
// publisher must meet the strictest demand among its subscribers.
func ResolvePublisher(subs []SubscriberInfo, pub *Profile) {
	if pub.Reliability == ReliabilityBestAvailable {
		pub.Reliability = ReliabilityReliable
	}
	if pub.Durability == DurabilityBestAvailable {
		pub.Durability = DurabilityTransientLocal
	}
	if pub.Liveliness == LivelinessBestAvailable {
		pub.Liveliness = LivelinessAutomatic
		for _, s := range subs {
			if s.QoS.Liveliness == LivelinessManualByTopic {
				pub.Liveliness = LivelinessManualByTopic
				break
			}
		}
	}
	if pub.Deadline.IsBestAvailable() {
		pub.Deadline = resolveDurationAgainstAnyConcrete(subs, func(s SubscriberInfo) DurationPolicy { return s.QoS.Deadline }, Min)
	}
	if pub.LivelinessLeaseDuration.IsBestAvailable() {
		pub.LivelinessLeaseDuration = resolveDurationAgainstAnyConcrete(subs, func(s SubscriberInfo) DurationPolicy { return s.QoS.LivelinessLeaseDuration }, Min)
	}
}

// allPublishers reports whether pred holds for every publisher. An
// empty peers slice reports false, so ResolveSubscription keeps its
// conservative choice when no publisher is known.
func allPublishers(peers []PublisherInfo, pred func(PublisherInfo) bool) bool {
	if len(peers) == 0 {
		return false
	}
	for _, p := range peers {
		if !pred(p) {
			return false
		}
	}
	return true
}

// resolveDurationAgainstAll implements "DEFAULT iff all peers are
// DEFAULT, else the combine of concrete peer durations" — used by
// subscription-side deadline/lease resolution. An empty peer slice is
// vacuously "all DEFAULT".
func resolveDurationAgainstAll(peers []PublisherInfo, get func(PublisherInfo) DurationPolicy, combine func(a, b Duration) Duration) DurationPolicy {
	allDefault := true
	var acc Duration
	haveAcc := false
	for _, p := range peers {
		d := get(p)
		if !d.IsDefault() {
			allDefault = false
		}
		if d.Kind == DurationSet {
			if !haveAcc {
				acc = d.Value
				haveAcc = true
			} else {
				acc = combine(acc, d.Value)
			}
		}
	}
	if allDefault {
		return Default()
	}
	if !haveAcc {
		return Default()
	}
	return Concrete(acc)
}

// resolveDurationAgainstAnyConcrete implements the publisher-side rule:
// DEFAULT iff all subscribers are DEFAULT, else the combine (minimum)
// of concrete subscriber requests.
func resolveDurationAgainstAnyConcrete(subs []SubscriberInfo, get func(SubscriberInfo) DurationPolicy, combine func(a, b Duration) Duration) DurationPolicy {
	allDefault := true
	var acc Duration
	haveAcc := false
	for _, s := range subs {
		d := get(s)
		if !d.IsDefault() {
			allDefault = false
		}
		if d.Kind == DurationSet {
			if !haveAcc {
				acc = d.Value
				haveAcc = true
			} else {
				acc = combine(acc, d.Value)
			}
		}
	}
	if allDefault {
		return Default()
	}
	if !haveAcc {
		return Default()
	}
	return Concrete(acc)
}

// ServicesDefaultProfile is the well-known QoS profile used to resolve
// BEST_AVAILABLE fields on service/client endpoints, which never
// consult peer endpoints.
var ServicesDefaultProfile = Profile{
	Reliability:             ReliabilityReliable,
	Durability:              DurabilityVolatile,
	Liveliness:              LivelinessAutomatic,
	Deadline:                Default(),
	LivelinessLeaseDuration: Default(),
	HistoryKind:             HistoryKeepLast,
	HistoryDepth:            10,
	Lifespan:                Default(),
}

// ResolveServiceProfile replaces every BEST_AVAILABLE field in profile
// unconditionally with the corresponding field of
// ServicesDefaultProfile. Peer endpoints are never consulted.
func ResolveServiceProfile(profile *Profile) {
	d := ServicesDefaultProfile
	if profile.Reliability == ReliabilityBestAvailable {
		profile.Reliability = d.Reliability
	}
	if profile.Durability == DurabilityBestAvailable {
		profile.Durability = d.Durability
	}
	if profile.Liveliness == LivelinessBestAvailable {
		profile.Liveliness = d.Liveliness
	}
	if profile.Deadline.IsBestAvailable() {
		profile.Deadline = d.Deadline
	}
	if profile.LivelinessLeaseDuration.IsBestAvailable() {
		profile.LivelinessLeaseDuration = d.LivelinessLeaseDuration
	}
}

// EndpointEnumerator enumerates peer endpoints announced for a topic.
// It is supplied by the hosting middleware (e.g. backed by a
// graphcache.Cache) and is the only way this package learns about
// concrete peers; it never inspects a cache directly.
type EndpointEnumerator func(ctx context.Context, topic string, noMangle bool) ([]Profile, error)

// ResolveTopic resolves every BEST_AVAILABLE field in profile against
// the peer endpoints enumerate reports for topic. If profile carries
// no BEST_AVAILABLE sentinel the call is a no-op and enumerate is never
// invoked. forSubscription selects ResolveSubscription vs
// ResolvePublisher semantics.
func ResolveTopic(ctx context.Context, topic string, profile *Profile, forSubscription bool, enumerate EndpointEnumerator) error {
	if !profile.HasBestAvailable() {
		return nil
	}
	peers, err := enumerate(ctx, topic, false)
	if err != nil {
		return err
	}
	if forSubscription {
		pubs := make([]PublisherInfo, len(peers))
		for i, p := range peers {
			pubs[i] = PublisherInfo{QoS: p}
		}
		ResolveSubscription(pubs, profile)
		return nil
	}
	subs := make([]SubscriberInfo, len(peers))
	for i, p := range peers {
		subs[i] = SubscriberInfo{QoS: p}
	}
	ResolvePublisher(subs, profile)
	return nil
}
