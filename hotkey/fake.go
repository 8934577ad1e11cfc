package hotkey

type FakeHotkey struct {
	edges chan Edge
}

func NewFake() *FakeHotkey {
	return &FakeHotkey{edges: make(chan Edge, 8)}
}

func (f *FakeHotkey) Register() error    { return nil }
func (f *FakeHotkey) Unregister()        {}
func (f *FakeHotkey) Edges() <-chan Edge { return f.edges }

func (f *FakeHotkey) SimKeydown() { f.edges <- Activate }
func (f *FakeHotkey) SimKeyup()   { f.edges <- Deactivate }
