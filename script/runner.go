package script

import (
	"fmt"
	"sort"

	"github.com/wippyai/refptr/errors"
	"github.com/wippyai/refptr/ptr"
	"github.com/wippyai/refptr/text"
)

// Runner executes scenario steps against named pointers. A name refers to
// either a strong or a weak pointer; operations that take a source resolve
// its kind dynamically, so clone of a strong name yields a strong pointer
// and clone of a weak name yields a weak one.
type Runner struct {
	strongs map[string]*ptr.Strong[text.Buffer]
	weaks   map[string]*ptr.Weak[text.Buffer]
}

// NewRunner creates a runner with no pointers defined.
func NewRunner() *Runner {
	return &Runner{
		strongs: make(map[string]*ptr.Strong[text.Buffer]),
		weaks:   make(map[string]*ptr.Weak[text.Buffer]),
	}
}

// Run validates the scenario, executes every step in order, and releases
// whatever pointers remain afterwards. The first failing step aborts the run;
// remaining pointers are still released.
func (r *Runner) Run(s *Script) error {
	if err := s.Validate(); err != nil {
		return err
	}
	defer r.Close()
	for i := range s.Steps {
		if err := r.Exec(s.Name, i+1, &s.Steps[i]); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every remaining pointer, owners first so observers can see
// expiry before they detach.
func (r *Runner) Close() {
	for _, s := range r.strongs {
		s.Release()
	}
	for _, w := range r.weaks {
		w.Release()
	}
	r.strongs = make(map[string]*ptr.Strong[text.Buffer])
	r.weaks = make(map[string]*ptr.Weak[text.Buffer])
}

// Exec performs a single validated step. step is 1-based and only used for
// error context.
func (r *Runner) Exec(script string, step int, st *Step) error {
	switch st.Op {
	case "new":
		return r.execNew(script, step, st)
	case "weak":
		return r.execWeak(script, step, st)
	case "clone", "move":
		return r.execConstruct(script, step, st)
	case "assign", "move-assign":
		return r.execAssign(script, step, st)
	case "downgrade":
		return r.execDowngrade(script, step, st)
	case "lock":
		return r.execLock(script, step, st)
	case "reset":
		return r.execReset(script, step, st)
	case "release":
		return r.execRelease(script, step, st)
	case "expect":
		return r.execExpect(script, step, st)
	default:
		return errors.InvalidOp(script, step, st.Op)
	}
}

func (r *Runner) defined(name string) bool {
	_, s := r.strongs[name]
	_, w := r.weaks[name]
	return s || w
}

func (r *Runner) execNew(script string, step int, st *Step) error {
	if r.defined(st.Ptr) {
		return errors.DuplicatePointer(script, step, st.Op, st.Ptr)
	}
	s := ptr.NewStrong(bufferFor(st.Value))
	r.strongs[st.Ptr] = &s
	return nil
}

func (r *Runner) execWeak(script string, step int, st *Step) error {
	if r.defined(st.Ptr) {
		return errors.DuplicatePointer(script, step, st.Op, st.Ptr)
	}
	w := ptr.NewWeak(bufferFor(st.Value))
	r.weaks[st.Ptr] = &w
	return nil
}

func (r *Runner) execConstruct(script string, step int, st *Step) error {
	if r.defined(st.Ptr) {
		return errors.DuplicatePointer(script, step, st.Op, st.Ptr)
	}
	if src, ok := r.strongs[st.From]; ok {
		var s ptr.Strong[text.Buffer]
		if st.Op == "move" {
			s = src.Move()
		} else {
			s = src.Clone()
		}
		r.strongs[st.Ptr] = &s
		return nil
	}
	if src, ok := r.weaks[st.From]; ok {
		var w ptr.Weak[text.Buffer]
		if st.Op == "move" {
			w = src.Move()
		} else {
			w = src.Clone()
		}
		r.weaks[st.Ptr] = &w
		return nil
	}
	return errors.UnknownPointer(script, step, st.Op, st.From)
}

func (r *Runner) execAssign(script string, step int, st *Step) error {
	if dst, ok := r.strongs[st.Ptr]; ok {
		src, ok := r.strongs[st.From]
		if !ok {
			return errors.UnknownPointer(script, step, st.Op, st.From)
		}
		if st.Op == "move-assign" {
			dst.Take(src)
		} else {
			dst.Set(src)
		}
		return nil
	}
	if dst, ok := r.weaks[st.Ptr]; ok {
		src, ok := r.weaks[st.From]
		if !ok {
			return errors.UnknownPointer(script, step, st.Op, st.From)
		}
		if st.Op == "move-assign" {
			dst.Take(src)
		} else {
			dst.Set(src)
		}
		return nil
	}
	return errors.UnknownPointer(script, step, st.Op, st.Ptr)
}

func (r *Runner) execDowngrade(script string, step int, st *Step) error {
	if r.defined(st.Ptr) {
		return errors.DuplicatePointer(script, step, st.Op, st.Ptr)
	}
	src, ok := r.strongs[st.From]
	if !ok {
		return errors.UnknownPointer(script, step, st.Op, st.From)
	}
	w := src.Downgrade()
	r.weaks[st.Ptr] = &w
	return nil
}

func (r *Runner) execLock(script string, step int, st *Step) error {
	if r.defined(st.Ptr) {
		return errors.DuplicatePointer(script, step, st.Op, st.Ptr)
	}
	src, ok := r.weaks[st.From]
	if !ok {
		return errors.UnknownPointer(script, step, st.Op, st.From)
	}
	s := src.Lock()
	r.strongs[st.Ptr] = &s
	return nil
}

func (r *Runner) execReset(script string, step int, st *Step) error {
	s, ok := r.strongs[st.Ptr]
	if !ok {
		return errors.UnknownPointer(script, step, st.Op, st.Ptr)
	}
	s.Reset(bufferFor(st.Value))
	return nil
}

func (r *Runner) execRelease(script string, step int, st *Step) error {
	if s, ok := r.strongs[st.Ptr]; ok {
		s.Release()
		return nil
	}
	if w, ok := r.weaks[st.Ptr]; ok {
		w.Release()
		return nil
	}
	return errors.UnknownPointer(script, step, st.Op, st.Ptr)
}

func (r *Runner) execExpect(script string, step int, st *Step) error {
	if s, ok := r.strongs[st.Ptr]; ok {
		return r.expectStrong(script, step, st, s)
	}
	if w, ok := r.weaks[st.Ptr]; ok {
		return r.expectWeak(script, step, st, w)
	}
	return errors.UnknownPointer(script, step, st.Op, st.Ptr)
}

func (r *Runner) expectStrong(script string, step int, st *Step, s *ptr.Strong[text.Buffer]) error {
	if st.Expired != nil {
		return errors.InvalidData(script, step, "expired applies to weak pointers")
	}
	if st.Empty != nil && s.Empty() != *st.Empty {
		return errors.Expectation(script, step,
			fmt.Sprintf("pointer %q: empty=%v, want %v", st.Ptr, s.Empty(), *st.Empty))
	}
	if st.Equals != nil {
		buf := s.Get()
		if buf == nil {
			return errors.Expectation(script, step,
				fmt.Sprintf("pointer %q is empty, want %q", st.Ptr, *st.Equals))
		}
		if buf.String() != *st.Equals {
			return errors.Expectation(script, step,
				fmt.Sprintf("pointer %q: value %q, want %q", st.Ptr, buf.String(), *st.Equals))
		}
	}
	return nil
}

func (r *Runner) expectWeak(script string, step int, st *Step, w *ptr.Weak[text.Buffer]) error {
	if st.Expired != nil && w.IsExpired() != *st.Expired {
		return errors.Expectation(script, step,
			fmt.Sprintf("pointer %q: expired=%v, want %v", st.Ptr, w.IsExpired(), *st.Expired))
	}
	if st.Empty != nil && w.Empty() != *st.Empty {
		return errors.Expectation(script, step,
			fmt.Sprintf("pointer %q: empty=%v, want %v", st.Ptr, w.Empty(), *st.Empty))
	}
	if st.Equals != nil {
		locked := w.Lock()
		defer locked.Release()
		buf := locked.Get()
		if buf == nil {
			return errors.Expectation(script, step,
				fmt.Sprintf("pointer %q is expired, want %q", st.Ptr, *st.Equals))
		}
		if buf.String() != *st.Equals {
			return errors.Expectation(script, step,
				fmt.Sprintf("pointer %q: value %q, want %q", st.Ptr, buf.String(), *st.Equals))
		}
	}
	return nil
}

func bufferFor(v *string) *text.Buffer {
	if v == nil {
		return nil
	}
	return text.New(*v)
}

// State is a snapshot of one named pointer, for display and debugging.
type State struct {
	Name    string
	Kind    string // "strong" or "weak"
	Value   string // buffer content, when reachable
	Shared  uint
	Weak    uint
	Empty   bool
	Expired bool
}

// States returns a snapshot of every named pointer, sorted by name.
func (r *Runner) States() []State {
	out := make([]State, 0, len(r.strongs)+len(r.weaks))
	for name, s := range r.strongs {
		st := State{Name: name, Kind: "strong", Empty: s.Empty()}
		if buf := s.Get(); buf != nil {
			st.Value = buf.String()
		}
		st.Shared, st.Weak, _ = s.Counts()
		out = append(out, st)
	}
	for name, w := range r.weaks {
		st := State{Name: name, Kind: "weak", Empty: w.Empty(), Expired: w.IsExpired()}
		if !w.IsExpired() {
			locked := w.Lock()
			if buf := locked.Get(); buf != nil {
				st.Value = buf.String()
			}
			locked.Release()
		}
		st.Shared, st.Weak, _ = w.Counts()
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
