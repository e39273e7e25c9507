package cms

import (
	"context"
	"fmt"
	"sync"
)

// FakeCall records one CreateAssetCopy invocation on a FakeCreator.
type FakeCall struct {
	TemplateID string
	ParentID   string
	Name       string
}

// FakeCreator is an in-memory AssetCreator for tests and dry wiring. It
// hands out sequential ids and can be scripted to fail for specific names.
// Safe for concurrent use.
type FakeCreator struct {
	mu     sync.Mutex
	next   int
	calls  []FakeCall
	FailOn map[string]error // name -> error returned instead of creating
}

var _ AssetCreator = (*FakeCreator)(nil)

// NewFakeCreator returns an empty FakeCreator.
func NewFakeCreator() *FakeCreator {
	return &FakeCreator{FailOn: make(map[string]error)}
}

// CreateAssetCopy records the call and returns a fresh id, or the scripted
// error for the name.
func (f *FakeCreator) CreateAssetCopy(_ context.Context, templateID, parentID, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, FakeCall{TemplateID: templateID, ParentID: parentID, Name: name})
	if err, ok := f.FailOn[name]; ok {
		return "", err
	}
	f.next++
	return fmt.Sprintf("remote-%04d", f.next), nil
}

// Calls returns a copy of the recorded calls.
func (f *FakeCreator) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FakeCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times CreateAssetCopy was invoked.
func (f *FakeCreator) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
