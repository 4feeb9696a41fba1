package organizer

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"sorter/internal/archive"
	"sorter/internal/category"
	"sorter/internal/config"
	"sorter/internal/failure"
	"sorter/internal/fileutil"
	"sorter/internal/logging"
	"sorter/internal/textutil"
)

const component = "organizer"

// Organizer sorts the files of a directory tree into category folders.
type Organizer struct {
	extensions []string
	locale     string
	base       *slog.Logger
	logger     *slog.Logger
}

// NewOrganizer builds an organizer from the organize section of cfg.
func NewOrganizer(cfg *config.Config, logger *slog.Logger) *Organizer {
	extensions := category.DefaultExtensions
	locale := ""
	if cfg != nil {
		extensions = cfg.Organize.Extensions
		locale = cfg.Organize.Locale
	}
	return &Organizer{
		extensions: append([]string(nil), extensions...),
		locale:     locale,
		base:       logger,
		logger:     logging.NewComponentLogger(logger, component),
	}
}

// pending is a renamed file waiting for its category move.
type pending struct {
	from    string
	current string
}

// queue holds renamed files grouped by extension in first-seen order.
// Each current path appears once; a later file renamed onto a claimed
// path takes over that slot.
type queue struct {
	slots   []pending
	keys    []string
	byKey   map[string][]int
	claimed map[string]int
}

func newQueue() *queue {
	return &queue{byKey: make(map[string][]int), claimed: make(map[string]int)}
}

// overwritten reports whether path was replaced by an earlier rename.
func (q *queue) overwritten(path string) bool {
	_, ok := q.claimed[path]
	return ok
}

func (q *queue) add(key string, file pending) {
	if slot, ok := q.claimed[file.current]; ok {
		q.slots[slot] = file
		return
	}
	if _, ok := q.byKey[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.claimed[file.current] = len(q.slots)
	q.byKey[key] = append(q.byKey[key], len(q.slots))
	q.slots = append(q.slots, file)
}

// pass carries the state of one Run.
type pass struct {
	root    string
	logger  *slog.Logger
	report  *Report
	created map[string]struct{}
}

// Run organizes root. The first filesystem or archive failure aborts the
// pass; the report returned alongside the error covers the work done so far.
func (o *Organizer) Run(ctx context.Context, root string) (Report, error) {
	root = filepath.Clean(root)
	runID, _ := logging.RunIDFromContext(ctx)
	report := Report{RunID: runID, Root: root, StartedAt: time.Now()}
	logger := logging.WithContext(ctx, o.logger).With(logging.String(logging.FieldRoot, root))

	entries, err := Discover(root, o.extensions)
	if err != nil {
		return report, err
	}
	report.Discovered = len(entries)
	logger.Info("organizing pass started", logging.Int("files", len(entries)))

	p := &pass{root: root, logger: logger, report: &report, created: make(map[string]struct{})}
	expander := archive.NewExpander(root, o.locale, o.base)
	queued := newQueue()

	for _, entry := range entries {
		if category.IsArchive(entry.Ext) {
			record, err := expander.Expand(ctx, entry.Path)
			if err != nil {
				return p.finish(err)
			}
			report.Archives = append(report.Archives, record)
			continue
		}
		if queued.overwritten(entry.Path) {
			logger.Debug("file replaced by renamed sibling", logging.String("path", entry.Path))
			continue
		}

		renamed, err := o.rename(entry, p)
		if err != nil {
			return p.finish(err)
		}

		queued.add(entry.Ext, pending{from: entry.Path, current: renamed})
	}

	for _, ext := range queued.keys {
		folder := category.Resolve(ext)
		for _, slot := range queued.byKey[ext] {
			if err := p.place(folder, queued.slots[slot]); err != nil {
				return p.finish(err)
			}
		}
	}

	report, err = p.finish(nil)
	logger.Info("organizing pass completed",
		logging.Int("moved", len(report.Moves)),
		logging.Int("renamed", report.Renamed),
		logging.Int("unchanged", report.Unchanged),
		logging.Int("archives", len(report.Archives)),
		logging.Duration("duration", report.Duration()),
		logging.String(logging.FieldEventType, "organize_completed"),
	)
	return report, err
}

// rename gives entry its normalized name inside its current directory.
func (o *Organizer) rename(entry FileEntry, p *pass) (string, error) {
	stem := textutil.NormalizeStem(entry.Stem, o.locale)
	if stem == "" {
		stem = "_"
	}
	target := filepath.Join(entry.Dir, stem+"."+entry.Ext)
	if target == entry.Path {
		return target, nil
	}
	if err := fileutil.Move(entry.Path, target); err != nil {
		return "", failure.Wrap(failure.ErrFilesystem, component, "rename", entry.Path, err)
	}
	p.report.Renamed++
	p.logger.Debug("file renamed",
		logging.String("from", entry.Path),
		logging.String("to", target),
	)
	return target, nil
}

// place moves file into the category folder under root, creating the folder
// on first use.
func (p *pass) place(folder category.Category, file pending) error {
	dir := filepath.Join(p.root, string(folder))
	if _, seen := p.created[dir]; !seen {
		created, err := fileutil.EnsureDir(dir)
		if err != nil {
			return failure.Wrap(failure.ErrFilesystem, component, "create category folder", dir, err)
		}
		p.created[dir] = struct{}{}
		if created {
			p.logger.Debug("category folder created", logging.String("dir", dir))
		}
	}

	target := filepath.Join(dir, filepath.Base(file.current))
	if target == file.current {
		p.report.Unchanged++
		return nil
	}
	if err := fileutil.Move(file.current, target); err != nil {
		return failure.Wrap(failure.ErrFilesystem, component, "move", file.current, err)
	}
	p.report.Moves = append(p.report.Moves, Move{From: file.from, To: target, Category: folder})
	p.logger.Debug("file moved",
		logging.String("from", file.current),
		logging.String("to", target),
		logging.String("category", string(folder)),
	)
	return nil
}

func (p *pass) finish(err error) (Report, error) {
	p.report.FinishedAt = time.Now()
	return *p.report, err
}
