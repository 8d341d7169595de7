package logging

import "sync"

// Entry is a single recorded log call.
type Entry struct {
	Level  Level
	Msg    string
	Fields map[string]any
}

// Recorder is an in-memory Logger, mostly useful in tests that assert on
// emitted events.
type Recorder struct {
	mu      *sync.Mutex
	entries *[]Entry
	tags    []any
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{mu: &sync.Mutex{}, entries: &[]Entry{}}
}

func (r *Recorder) Debug(msg string, kv ...any) { r.record(LevelDebug, msg, kv) }
func (r *Recorder) Info(msg string, kv ...any)  { r.record(LevelInfo, msg, kv) }
func (r *Recorder) Warn(msg string, kv ...any)  { r.record(LevelWarn, msg, kv) }
func (r *Recorder) Error(msg string, kv ...any) { r.record(LevelError, msg, kv) }

// With returns a recorder sharing the same entry log with extra tags.
func (r *Recorder) With(kv ...any) Logger {
	tags := make([]any, 0, len(r.tags)+len(kv))
	tags = append(tags, r.tags...)
	tags = append(tags, kv...)
	return &Recorder{mu: r.mu, entries: r.entries, tags: tags}
}

func (r *Recorder) record(lvl Level, msg string, kv []any) {
	fields := make(map[string]any, (len(kv)+len(r.tags))/2)
	for _, tags := range [][]any{r.tags, kv} {
		for i := 0; i+1 < len(tags); i += 2 {
			key, ok := tags[i].(string)
			if !ok {
				continue
			}
			fields[key] = tags[i+1]
		}
	}

	r.mu.Lock()
	*r.entries = append(*r.entries, Entry{Level: lvl, Msg: msg, Fields: fields})
	r.mu.Unlock()
}

// Entries returns a snapshot of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(*r.entries))
	copy(out, *r.entries)
	return out
}

// ByLevel returns the recorded entries at lvl.
func (r *Recorder) ByLevel(lvl Level) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Level == lvl {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops all recorded entries.
func (r *Recorder) Reset() {
	r.mu.Lock()
	*r.entries = (*r.entries)[:0]
	r.mu.Unlock()
}
