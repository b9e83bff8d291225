package qos

import (
	"context"
	"testing"
)

// Scenario 4 from spec.md §8: two publishers, both RELIABLE
// TRANSIENT_LOCAL, deadlines {5,0} and {7,0}; subscriber profile
// requests BEST_AVAILABLE reliability/durability/deadline.
func TestResolveSubscriptionScenario4(t *testing.T) {
	peers := []PublisherInfo{
		{QoS: Profile{Reliability: ReliabilityReliable, Durability: DurabilityTransientLocal, Deadline: Concrete(Duration{Sec: 5})}},
		{QoS: Profile{Reliability: ReliabilityReliable, Durability: DurabilityTransientLocal, Deadline: Concrete(Duration{Sec: 7})}},
	}
	sub := Profile{
		Reliability: ReliabilityBestAvailable,
		Durability:  DurabilityBestAvailable,
		Deadline:    BestAvailableDuration(),
	}

	ResolveSubscription(peers, &sub)

	if sub.Reliability != ReliabilityReliable {
		t.Errorf("reliability = %v, want RELIABLE", sub.Reliability)
	}
	if sub.Durability != DurabilityTransientLocal {
		t.Errorf("durability = %v, want TRANSIENT_LOCAL", sub.Durability)
	}
	if sub.Deadline.Kind != DurationSet || sub.Deadline.Value != (Duration{Sec: 7}) {
		t.Errorf("deadline = %+v, want {7,0}", sub.Deadline)
	}
}

// Scenario 5 from spec.md §8: two subscribers with deadlines {5,0} and
// {7,0}, liveliness AUTOMATIC; publisher profile requests
// BEST_AVAILABLE reliability/liveliness/deadline.
func TestResolvePublisherScenario5(t *testing.T) {
	subs := []SubscriberInfo{
		{QoS: Profile{Liveliness: LivelinessAutomatic, Deadline: Concrete(Duration{Sec: 5})}},
		{QoS: Profile{Liveliness: LivelinessAutomatic, Deadline: Concrete(Duration{Sec: 7})}},
	}
	pub := Profile{
		Reliability: ReliabilityBestAvailable,
		Liveliness:  LivelinessBestAvailable,
		Deadline:    BestAvailableDuration(),
	}

	ResolvePublisher(subs, &pub)

	if pub.Reliability != ReliabilityReliable {
		t.Errorf("reliability = %v, want RELIABLE", pub.Reliability)
	}
	if pub.Liveliness != LivelinessAutomatic {
		t.Errorf("liveliness = %v, want AUTOMATIC", pub.Liveliness)
	}
	if pub.Deadline.Kind != DurationSet || pub.Deadline.Value != (Duration{Sec: 5}) {
		t.Errorf("deadline = %+v, want {5,0}", pub.Deadline)
	}
}

func TestResolveSubscriptionEmptyPeersIsConservative(t *testing.T) {
	sub := Profile{
		Reliability:             ReliabilityBestAvailable,
		Durability:              DurabilityBestAvailable,
		Liveliness:               LivelinessBestAvailable,
		Deadline:                BestAvailableDuration(),
		LivelinessLeaseDuration: BestAvailableDuration(),
	}

	ResolveSubscription(nil, &sub)

	if sub.Reliability != ReliabilityBestEffort {
		t.Errorf("reliability = %v, want BEST_EFFORT", sub.Reliability)
	}
	if sub.Durability != DurabilityVolatile {
		t.Errorf("durability = %v, want VOLATILE", sub.Durability)
	}
	if sub.Liveliness != LivelinessAutomatic {
		t.Errorf("liveliness = %v, want AUTOMATIC", sub.Liveliness)
	}
	if !sub.Deadline.IsDefault() {
		t.Errorf("deadline = %+v, want DEFAULT", sub.Deadline)
	}
	if !sub.LivelinessLeaseDuration.IsDefault() {
		t.Errorf("lease = %+v, want DEFAULT", sub.LivelinessLeaseDuration)
	}
}

func TestResolvePublisherEmptySubsIsConservative(t *testing.T) {
	pub := Profile{
		Reliability: ReliabilityBestAvailable,
		Durability:  DurabilityBestAvailable,
		Liveliness:  LivelinessBestAvailable,
		Deadline:    BestAvailableDuration(),
	}

	ResolvePublisher(nil, &pub)

	if pub.Reliability != ReliabilityReliable {
		t.Errorf("reliability = %v, want RELIABLE (unconditional)", pub.Reliability)
	}
	if pub.Durability != DurabilityTransientLocal {
		t.Errorf("durability = %v, want TRANSIENT_LOCAL (unconditional)", pub.Durability)
	}
	if pub.Liveliness != LivelinessAutomatic {
		t.Errorf("liveliness = %v, want AUTOMATIC", pub.Liveliness)
	}
	if !pub.Deadline.IsDefault() {
		t.Errorf("deadline = %+v, want DEFAULT", pub.Deadline)
	}
}

// Q3: resolve_subscription(P, sub) then pairwise check_compatible(p, sub)
// for every p in P yields no ERROR.
func TestQ3SubscriptionResolutionIsAlwaysCompatible(t *testing.T) {
	peerProfiles := []Profile{
		{Reliability: ReliabilityReliable, Durability: DurabilityTransientLocal, Liveliness: LivelinessManualByTopic, Deadline: Concrete(Duration{Sec: 3}), LivelinessLeaseDuration: Concrete(Duration{Sec: 2})},
		{Reliability: ReliabilityBestEffort, Durability: DurabilityVolatile, Liveliness: LivelinessAutomatic, Deadline: Default(), LivelinessLeaseDuration: Default()},
		{Reliability: ReliabilityReliable, Durability: DurabilityVolatile, Liveliness: LivelinessAutomatic, Deadline: Concrete(Duration{Sec: 9}), LivelinessLeaseDuration: Default()},
	}
	peers := make([]PublisherInfo, len(peerProfiles))
	for i, p := range peerProfiles {
		peers[i] = PublisherInfo{QoS: p}
	}

	sub := Profile{
		Reliability:             ReliabilityBestAvailable,
		Durability:              DurabilityBestAvailable,
		Liveliness:              LivelinessBestAvailable,
		Deadline:                BestAvailableDuration(),
		LivelinessLeaseDuration: BestAvailableDuration(),
	}
	ResolveSubscription(peers, &sub)

	for i, p := range peerProfiles {
		if verdict := CheckCompatible(p, sub, nil); verdict == VerdictError {
			t.Errorf("peer %d: resolved subscription incompatible with publisher %+v", i, p)
		}
	}
}

// Q4: resolve_publisher(S, pub) then pairwise check_compatible(pub, s)
// for every s in S yields no ERROR.
func TestQ4PublisherResolutionIsAlwaysCompatible(t *testing.T) {
	subProfiles := []Profile{
		{Reliability: ReliabilityReliable, Durability: DurabilityTransientLocal, Liveliness: LivelinessManualByTopic, Deadline: Concrete(Duration{Sec: 3}), LivelinessLeaseDuration: Concrete(Duration{Sec: 2})},
		{Reliability: ReliabilityBestEffort, Durability: DurabilityVolatile, Liveliness: LivelinessAutomatic, Deadline: Default(), LivelinessLeaseDuration: Default()},
		{Reliability: ReliabilityReliable, Durability: DurabilityVolatile, Liveliness: LivelinessAutomatic, Deadline: Concrete(Duration{Sec: 9}), LivelinessLeaseDuration: Default()},
	}
	subs := make([]SubscriberInfo, len(subProfiles))
	for i, s := range subProfiles {
		subs[i] = SubscriberInfo{QoS: s}
	}

	pub := Profile{
		Reliability:             ReliabilityBestAvailable,
		Durability:              DurabilityBestAvailable,
		Liveliness:              LivelinessBestAvailable,
		Deadline:                BestAvailableDuration(),
		LivelinessLeaseDuration: BestAvailableDuration(),
	}
	ResolvePublisher(subs, &pub)

	for i, s := range subProfiles {
		if verdict := CheckCompatible(pub, s, nil); verdict == VerdictError {
			t.Errorf("sub %d: resolved publisher incompatible with subscriber %+v", i, s)
		}
	}
}

func TestResolveServiceProfileIgnoresPeers(t *testing.T) {
	p := Profile{
		Reliability: ReliabilityBestAvailable,
		Durability:  DurabilityBestAvailable,
		Liveliness:  LivelinessBestAvailable,
		Deadline:    BestAvailableDuration(),
	}
	ResolveServiceProfile(&p)

	if p.Reliability != ServicesDefaultProfile.Reliability {
		t.Errorf("reliability not replaced with services default")
	}
	if p.HasBestAvailable() {
		t.Errorf("expected no BEST_AVAILABLE fields remaining")
	}
}

func TestResolveTopicNoOpWithoutBestAvailable(t *testing.T) {
	called := false
	profile := Profile{Reliability: ReliabilityReliable}
	err := ResolveTopic(context.Background(), "/chatter", &profile, true, func(ctx context.Context, topic string, noMangle bool) ([]Profile, error) {
		called = true
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Errorf("enumerator should not be called when profile has no BEST_AVAILABLE field")
	}
}

func TestResolveTopicCallsEnumeratorWhenNeeded(t *testing.T) {
	profile := Profile{Reliability: ReliabilityBestAvailable}
	err := ResolveTopic(context.Background(), "/chatter", &profile, true, func(ctx context.Context, topic string, noMangle bool) ([]Profile, error) {
		return []Profile{{Reliability: ReliabilityReliable}}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Reliability != ReliabilityReliable {
		t.Errorf("expected reliability resolved to RELIABLE, got %v", profile.Reliability)
	}
}
