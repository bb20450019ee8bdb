package host

import "testing"

func TestLogValueRecordsDebugEvent(t *testing.T) {
	h := newTestHost(nil)
	if _, err := h.LogValue("hello", FromU32(7)); err != nil {
		t.Fatal(err)
	}
	if h.events.Len() != 1 {
		t.Fatalf("events.Len() = %d, want 1", h.events.Len())
	}
	ev := h.events.All()[0]
	if ev.Debug == nil || ev.Debug.Msg != "hello" {
		t.Fatalf("recorded event = %+v, want Debug.Msg=hello", ev)
	}
}

func TestLogFmtRecordsDebugEventWithAllArgs(t *testing.T) {
	h := newTestHost(nil)
	if _, err := h.LogFmt("count={} name={}", []RawVal{FromU32(3), FromU32(4)}); err != nil {
		t.Fatal(err)
	}
	ev := h.events.All()[0]
	if ev.Debug == nil || ev.Debug.Msg != "count={} name={}" || len(ev.Debug.Args) != 2 {
		t.Fatalf("recorded event = %+v, want Debug with 2 args", ev)
	}
}

// SystemEvent carries no contract ID: it is a host-originated event, not
// one scoped to whichever contract is currently running.
func TestSystemEventRecordsEventWithoutContractFrame(t *testing.T) {
	h := newTestHost(nil)
	if _, err := h.SystemEvent([]RawVal{FromU32(1)}, FromU32(2)); err != nil {
		t.Fatal(err)
	}
	ev := h.events.All()[0]
	if ev.Contract == nil || ev.Contract.Type != EventTypeSystem {
		t.Fatalf("recorded event = %+v, want a System-typed contract event", ev)
	}
}

func TestSystemEventEnforcesTopicLimits(t *testing.T) {
	h := newTestHost(nil)
	tooManyTopics := make([]RawVal, ContractEventTopicsLimit+1)
	for i := range tooManyTopics {
		tooManyTopics[i] = FromU32(uint32(i))
	}
	if _, err := h.SystemEvent(tooManyTopics, Void); err == nil {
		t.Fatal("expected error exceeding the topic count limit")
	}
}

func TestContractEventRequiresActiveContractFrame(t *testing.T) {
	h := newTestHost(nil)
	if _, err := h.ContractEvent(nil, Void); err == nil {
		t.Fatal("expected error raising a contract event with no contract frame active")
	}
}

func TestContractEventEnforcesTopicLimits(t *testing.T) {
	cid := [32]byte{1}
	h := newTestHost(nil)
	if _, err := h.pushFrame(Frame{Kind: FrameTestContract, ContractID: cid}); err != nil {
		t.Fatal(err)
	}

	tooManyTopics := make([]RawVal, ContractEventTopicsLimit+1)
	for i := range tooManyTopics {
		tooManyTopics[i] = FromU32(uint32(i))
	}
	if _, err := h.ContractEvent(tooManyTopics, Void); err == nil {
		t.Fatal("expected error exceeding the topic count limit")
	}

	okTopics := []RawVal{FromU32(1), FromU32(2)}
	if _, err := h.ContractEvent(okTopics, FromU32(42)); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, ev := range h.events.All() {
		if ev.Contract != nil && ev.Contract.ContractID == cid {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a recorded contract event scoped to the current contract")
	}
}

func TestContractEventEnforcesTopicBytesLengthLimit(t *testing.T) {
	cid := [32]byte{2}
	h := newTestHost(nil)
	if _, err := h.pushFrame(Frame{Kind: FrameTestContract, ContractID: cid}); err != nil {
		t.Fatal(err)
	}

	longBytes := make([]byte, TopicBytesLengthLimit+1)
	topic, err := h.NewBytesObject(longBytes)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.ContractEvent([]RawVal{topic}, Void); err == nil {
		t.Fatal("expected error exceeding the per-topic byte length limit")
	}
}
