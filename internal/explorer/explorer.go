// Package explorer runs the background directory scanner and the filesystem
// watcher that keep the directory buffer in sync with the disk.
package explorer

import (
	"xplr/internal/log"
	"xplr/internal/node"
)

// Request asks for a scan of Dir under the given pipeline config, restoring
// focus to LastFocus when it survives.
type Request struct {
	Dir       string
	Config    node.ExplorerConfig
	LastFocus string
}

// Result is one finished scan. Err is set when the directory could not be
// read; Dir always names the requested directory.
type Result struct {
	Dir    string
	Buffer node.DirectoryBuffer
	Err    error
}

// Explorer is a single-flight scan worker with one pending slot: while a
// scan is in flight, newer requests overwrite the waiting one, so bursts of
// Explore requests collapse into at most one trailing rescan.
type Explorer struct {
	requests chan Request
	results  chan Result
	stop     chan struct{}
}

// New starts the worker.
func New() *Explorer {
	e := &Explorer{
		requests: make(chan Request, 1),
		results:  make(chan Result, 8),
		stop:     make(chan struct{}),
	}
	go e.run()
	return e
}

// Explore submits a request without blocking. A queued request that has not
// started yet is replaced.
func (e *Explorer) Explore(req Request) {
	for {
		select {
		case e.requests <- req:
			return
		default:
			select {
			case stale := <-e.requests:
				log.Debugf("explorer: dropping queued scan of %s", stale.Dir)
			default:
			}
		}
	}
}

// Results delivers finished scans to the main loop.
func (e *Explorer) Results() <-chan Result {
	return e.results
}

// Close stops the worker. Pending results may still be drained afterwards.
func (e *Explorer) Close() {
	close(e.stop)
}

func (e *Explorer) run() {
	for {
		select {
		case <-e.stop:
			return
		case req := <-e.requests:
			buf, err := node.Explore(req.Dir, req.Config, req.LastFocus)
			if err != nil {
				log.Errorf("explorer: scan of %s failed: %v", req.Dir, err)
			}
			select {
			case e.results <- Result{Dir: req.Dir, Buffer: buf, Err: err}:
			case <-e.stop:
				return
			}
		}
	}
}
