package formats

// Stub is the minimal descriptor produced by an auxiliary manifest parser.
type Stub struct {
	ID  string
	URL string
}

// StubSet is an insertion-ordered mapping from format id to Stub. Setting an
// id that is already present replaces its value but keeps its position.
type StubSet struct {
	order []string
	stubs map[string]Stub
}

func NewStubSet() *StubSet {
	return &StubSet{stubs: make(map[string]Stub)}
}

func (s *StubSet) Set(stub Stub) {
	if _, ok := s.stubs[stub.ID]; !ok {
		s.order = append(s.order, stub.ID)
	}
	s.stubs[stub.ID] = stub
}

func (s *StubSet) Get(id string) (Stub, bool) {
	if s == nil {
		return Stub{}, false
	}
	stub, ok := s.stubs[id]
	return stub, ok
}

func (s *StubSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Stubs returns the stubs in first-insertion order.
func (s *StubSet) Stubs() []Stub {
	if s == nil {
		return nil
	}
	out := make([]Stub, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.stubs[id])
	}
	return out
}
