// Package report turns command results into the rows every output format
// shares.
package report

import (
	"strings"

	"github.com/arthur-debert/dotty/pkg/errors"
	"github.com/arthur-debert/dotty/pkg/types"
)

// Row states that are not entry states
const (
	StateMoved         = "moved"
	StateAlreadyLinked = "already-linked"
	StateRestored      = "restored"
	StateFailed        = "failed"
)

// Report is a format-independent view of a command result
type Report struct {
	Command string   `json:"command"`
	Rows    []Row    `json:"entries"`
	Notes   []string `json:"notes,omitempty"`
	Failed  int      `json:"failed"`
}

// Row is one managed path
type Row struct {
	Path   string `json:"path"`
	State  string `json:"state"`
	Detail string `json:"detail,omitempty"`
	Code   string `json:"code,omitempty"`
}

// IsFailure reports whether the row carries an error
func (r Row) IsFailure() bool {
	return r.State == StateFailed
}

// For builds the report for a known result type. ok is false for anything
// else.
func For(result interface{}) (rep *Report, ok bool) {
	switch v := result.(type) {
	case *types.AddResult:
		return fromAdd(v), true
	case *types.RestoreResult:
		return fromRestore(v), true
	case *types.StatusResult:
		return fromStatus(v), true
	default:
		return nil, false
	}
}

func fromAdd(res *types.AddResult) *Report {
	rep := &Report{Command: "add"}
	for _, e := range res.Entries {
		path := e.Relative
		if path == "" {
			path = e.Path
		}
		row := Row{Path: path}
		switch {
		case e.Err != nil:
			row = failedRow(path, e.Err)
			rep.Failed++
		case e.Outcome == types.OutcomeAlreadyLinked:
			row.State = StateAlreadyLinked
		default:
			row.State = StateMoved
		}
		if e.Err == nil && e.Kind == types.LeafRepoUnit {
			row.Detail = "submodule"
		}
		rep.Rows = append(rep.Rows, row)
	}
	if res.CommitMessage != "" {
		rep.Notes = append(rep.Notes, "committed: "+firstLine(res.CommitMessage))
	} else {
		rep.Notes = append(rep.Notes, "nothing committed")
	}
	return rep
}

func fromRestore(res *types.RestoreResult) *Report {
	rep := &Report{Command: "restore"}
	for _, e := range res.Entries {
		if e.Err != nil {
			rep.Rows = append(rep.Rows, failedRow(e.Relative, e.Err))
			rep.Failed++
			continue
		}
		state := string(types.EntryCopied)
		if res.AsSymlink {
			state = string(types.EntryLinked)
		}
		rep.Rows = append(rep.Rows, Row{Path: e.Relative, State: state, Detail: e.Original})
	}
	if !res.FromManifest {
		rep.Notes = append(rep.Notes, "no manifest found, restored the store contents")
	}
	if res.ScratchKept {
		rep.Notes = append(rep.Notes, "displaced files kept in "+res.ScratchPath)
	}
	return rep
}

func fromStatus(res *types.StatusResult) *Report {
	rep := &Report{Command: "status"}
	for _, e := range res.Entries {
		row := Row{Path: e.Relative, State: string(e.State), Detail: e.Target}
		switch e.State {
		case types.EntryConflict, types.EntryForeignLink, types.EntryStoreMissing, types.EntryInvalid:
			rep.Failed++
		}
		rep.Rows = append(rep.Rows, row)
	}
	rep.Notes = append(rep.Notes, "repository: "+res.Repository, "root: "+res.Root)
	if !res.FromManifest {
		rep.Notes = append(rep.Notes, "no manifest found, listing the store contents")
	}
	return rep
}

func failedRow(path string, err error) Row {
	row := Row{Path: path, State: StateFailed, Detail: err.Error()}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		row.Code = string(code)
	}
	return row
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
