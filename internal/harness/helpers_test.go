package harness

import (
	"bytes"
	"context"
	"errors"

	"github.com/roach88/addoncheck/internal/addon"
	"github.com/roach88/addoncheck/internal/testutil"
)

// fakeModule multiplies its operands, optionally skewed or failing per export.
type fakeModule struct {
	skew   int64
	fail   map[string]error
	calls  []string
	closed bool
}

func (m *fakeModule) Exports() []string { return []string{"multiply"} }

func (m *fakeModule) Call(ctx context.Context, export string, args ...int64) (int64, error) {
	m.calls = append(m.calls, export)
	if err, ok := m.fail[export]; ok {
		return 0, err
	}
	if export != "multiply" {
		return 0, &addon.InvocationError{Export: export, Reason: "export not found"}
	}
	return args[0]*args[1] + m.skew, nil
}

func (m *fakeModule) Close(ctx context.Context) error {
	m.closed = true
	return nil
}

// fakeLoader hands out mod, or fails with err.
type fakeLoader struct {
	mod   *fakeModule
	err   error
	paths []string
}

func (l *fakeLoader) Load(ctx context.Context, path string) (addon.Module, error) {
	l.paths = append(l.paths, path)
	if l.err != nil {
		return nil, l.err
	}
	return l.mod, nil
}

type transcript struct {
	out bytes.Buffer
	err bytes.Buffer
}

func (tr *transcript) console() Console {
	return Console{Out: &tr.out, Err: &tr.err}
}

const fixturePath = "fixtures/addon.wasm"

func newTestHarness(loader addon.Loader, tr *transcript, opts ...Option) *Harness {
	opts = append([]Option{WithRunIDs(testutil.NewSequentialRunIDs())}, opts...)
	return New(loader, tr.console(), opts...)
}

var errBoom = errors.New("boom")
