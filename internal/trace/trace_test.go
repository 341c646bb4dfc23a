package trace

import (
	"sync"
	"testing"
)

type captureSink struct {
	mu      sync.Mutex
	records []Record
}

func (c *captureSink) Trace(component, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, Record{Component: component, Message: message})
}

func TestLogAppendAndRecords(t *testing.T) {
	log := NewLog(nil)

	log.Append("file", "allow by default")
	log.Appendf("dir", "deny via %s: %s", "ignoreDirs", "node_modules")

	records := log.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Component != "file" {
		t.Errorf("expected component file, got %s", records[0].Component)
	}
	if records[1].Message != "deny via ignoreDirs: node_modules" {
		t.Errorf("unexpected message: %s", records[1].Message)
	}
	if log.Len() != 2 {
		t.Errorf("expected Len 2, got %d", log.Len())
	}
}

func TestLogRecordsReturnsCopy(t *testing.T) {
	log := NewLog(nil)
	log.Append("file", "first")

	records := log.Records()
	records[0].Message = "mutated"

	if log.Records()[0].Message != "first" {
		t.Error("Records must return a copy, not the backing slice")
	}
}

func TestLogReset(t *testing.T) {
	log := NewLog(nil)
	log.Append("file", "one")
	log.Reset()

	if log.Len() != 0 {
		t.Errorf("expected empty log after Reset, got %d records", log.Len())
	}
}

func TestLogForwardsToSink(t *testing.T) {
	sink := &captureSink{}
	log := NewLog(sink)

	log.Append("dir", "allow via allowPaths: /docs")

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 forwarded record, got %d", len(sink.records))
	}
	if sink.records[0].Component != "dir" {
		t.Errorf("unexpected component: %s", sink.records[0].Component)
	}
}

func TestLogConcurrentAppends(t *testing.T) {
	log := NewLog(&captureSink{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				log.Append("file", "concurrent append")
			}
		}()
	}
	wg.Wait()

	if log.Len() != 1000 {
		t.Errorf("expected 1000 records, got %d", log.Len())
	}
}

func TestRecordString(t *testing.T) {
	r := Record{Component: "file", Message: "allow by default"}
	if r.String() != "[file] allow by default" {
		t.Errorf("unexpected format: %s", r.String())
	}
}

func TestMultiSink(t *testing.T) {
	first := &captureSink{}
	second := &captureSink{}

	sink := MultiSink(first, nil, second)
	sink.Trace("scan", "skip /x: permission denied")

	if len(first.records) != 1 || len(second.records) != 1 {
		t.Errorf("expected both sinks to receive the record, got %d and %d",
			len(first.records), len(second.records))
	}

	if MultiSink() != nil {
		t.Error("MultiSink with no sinks should be nil")
	}
	if MultiSink(nil) != nil {
		t.Error("MultiSink with only nil sinks should be nil")
	}
}
