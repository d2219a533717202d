package asyncloop

// A Registry maps string identifiers to active unique loops, guaranteeing
// at most one live [Loop] per identifier: registering under an occupied
// identifier cancels the occupant first (a supersession, not a queue — the
// newest call always wins).
//
// Entries are removed when their loop settles by any path, so a settled
// loop never lingers in the mapping.
//
// A Registry must not be shared by more than one [Executor].
type Registry struct {
	executor *Executor
	loops    map[string]*Loop
}

// NewRegistry creates an empty [Registry] bound to e.
func NewRegistry(e *Executor) *Registry {
	return &Registry{executor: e}
}

// Unique returns a scoped starter bound to id.
func (r *Registry) Unique(id string) UniqueLoop {
	return UniqueLoop{registry: r, id: id}
}

// Active returns the live [Loop] registered under id, or nil.
func (r *Registry) Active(id string) *Loop {
	return r.loops[id]
}

// Len returns the number of live loops in the registry.
func (r *Registry) Len() int {
	return len(r.loops)
}

func (r *Registry) register(l *Loop) {
	if old := r.loops[l.id]; old != nil {
		r.executor.Logger.Debug().
			Str("id", l.id).
			Log("unique loop superseded")

		old.Cancel("Overriting unique task `" + l.id + "` with a newer one.")
	}

	if r.loops == nil {
		r.loops = make(map[string]*Loop)
	}
	r.loops[l.id] = l
}

func (r *Registry) evict(l *Loop) {
	if r.loops[l.id] == l {
		delete(r.loops, l.id)
	}
}

// A UniqueLoop starts loops under one registry identifier.
type UniqueLoop struct {
	registry *Registry
	id       string
}

// Until cancels any loop currently registered under the identifier, then
// constructs, registers and starts a new [Loop], returning its [Future].
// The superseded loop's Future rejects with a [KindCancel] *[Reason].
func (u UniqueLoop) Until(handle LoopFunc, iterations int) *Future {
	r := u.registry

	l := NewLoop(r.executor, handle, iterations)
	l.registry = r
	l.id = u.id

	r.register(l)

	return l.Start()
}
