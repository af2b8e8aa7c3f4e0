package kadmin

import (
	"sync"

	"github.com/twmb/franz-go/pkg/kmsg"
)

// fakeSender is a RequestSender that hands every sent request's handler
// to the test, to be invoked on demand instead of from real broker I/O.
type fakeSender struct {
	mu      sync.Mutex
	sent    []kmsg.Request
	pending []func(kmsg.Response, error)
}

func (s *fakeSender) Send(req kmsg.Request, handler func(kmsg.Response, error)) error {
	s.mu.Lock()
	s.sent = append(s.sent, req)
	s.pending = append(s.pending, handler)
	s.mu.Unlock()
	return nil
}

// respondLatest invokes the handler for the most recently sent request.
func (s *fakeSender) respondLatest(resp kmsg.Response, err error) {
	s.mu.Lock()
	h := s.pending[len(s.pending)-1]
	s.mu.Unlock()
	h(resp, err)
}

func (s *fakeSender) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

// newTestClient wires a Client to a ClusterView with a single broker (id
// 9, serving as controller) already up, so happy-path tests don't need
// to exercise WAIT_BROKER/WAIT_CONTROLLER themselves.
func newTestClient(t testingT) (*Client, *fakeSender, *ClusterView) {
	view := NewClusterView()
	sender := &fakeSender{}
	view.SetBroker(9, "localhost:9092", sender)
	view.SetController(9)

	cl := NewClient(view)
	t.Cleanup(cl.Close)
	return cl, sender, view
}

// testingT is the subset of *testing.T newTestClient needs, so it can be
// called from table-driven subtests via t.Run's *testing.T directly.
type testingT interface {
	Cleanup(func())
}
