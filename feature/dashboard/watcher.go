package dashboard

import "slices"

// Message types exchanged over the websocket.
const (
	MessageSnapshot  = "snapshot"
	MessageError     = "error"
	MessageDirectory = "directory"
)

// ServerMessage is pushed to the browser.
type ServerMessage struct {
	Type     string    `json:"type"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// ClientMessage is received from the browser. Type "directory" switches the
// watched directory to Path.
type ClientMessage struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// watcher tracks one connection's directory and suppresses repeated
// snapshots whose file listing did not change.
type watcher struct {
	dir     string
	scan    func(string) (Snapshot, error)
	last    []File
	lastErr string
	primed  bool
}

func newWatcher(dir string) *watcher {
	return &watcher{dir: dir, scan: Scan}
}

// switchTo changes the watched directory and forgets the previous listing.
func (w *watcher) switchTo(dir string) {
	w.dir = dir
	w.primed = false
}

// poll scans the directory. It reports false when the result equals the
// previously sent one and force is not set.
func (w *watcher) poll(force bool) (ServerMessage, bool) {
	snap, err := w.scan(w.dir)
	if err != nil {
		msg := ServerMessage{Type: MessageError, Error: err.Error()}
		changed := !w.primed || w.lastErr != msg.Error
		w.last, w.lastErr, w.primed = nil, msg.Error, true
		return msg, changed || force
	}

	changed := !w.primed || w.lastErr != "" || !slices.EqualFunc(w.last, snap.Files, sameFile)
	w.last, w.lastErr, w.primed = snap.Files, "", true
	return ServerMessage{Type: MessageSnapshot, Snapshot: &snap}, changed || force
}

func sameFile(a, b File) bool {
	return a.Name == b.Name && a.Kind == b.Kind && a.Size == b.Size && a.Modified.Equal(b.Modified)
}
