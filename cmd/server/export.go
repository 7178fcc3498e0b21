package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sparc/pkg/calendar"
	"sparc/pkg/entry/repositoryImp"
	"sparc/pkg/entry/serviceImp"
	"sparc/pkg/export"
	"sparc/pkg/history"
	"sparc/pkg/listview"
)

type exportFlags struct {
	uid    string
	format string
	rng    string
	tasks  []string
	search string
	sort   string
	dir    string
	out    string
}

// newExportCmd writes one user's entries through the same derivation the
// history table uses.
func newExportCmd(a *app) *cobra.Command {
	f := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's entries as csv, xlsx or html",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.export(cmd.Context(), f, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&f.uid, "uid", "", "user id (required)")
	cmd.Flags().StringVar(&f.format, "format", "csv", "csv, xlsx or html")
	cmd.Flags().StringVar(&f.rng, "range", "all", "today, week or all")
	cmd.Flags().StringSliceVar(&f.tasks, "task", nil, "only these tasks (repeatable)")
	cmd.Flags().StringVar(&f.search, "q", "", "comment or other-task search")
	cmd.Flags().StringVar(&f.sort, "sort", string(listview.SortOccurredOn), "occurredOn, task or minutes")
	cmd.Flags().StringVar(&f.dir, "dir", string(listview.Desc), "asc or desc")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file; - for stdout (default sparc-entries-<date>.<ext>)")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}

func (a *app) export(ctx context.Context, f *exportFlags, stdout io.Writer) error {
	format, err := export.ParseFormat(f.format)
	if err != nil {
		return err
	}
	db, err := a.openDB()
	if err != nil {
		return err
	}
	store := serviceImp.New(repositoryImp.New(db),
		serviceImp.WithLocation(a.loc),
		serviceImp.WithLogger(a.log.Named("entry")))

	toasts := &history.Toasts{}
	p := history.New(history.Options{
		Store:    store,
		Notifier: toasts,
		Location: a.loc,
		UID:      f.uid,
		Debounce: a.cfg.SearchDebounce,
		Logger:   a.log.Named("history"),
	})
	defer p.Close()

	if err := p.Refresh(ctx); err != nil {
		return err
	}
	view := listview.ParseParams(url.Values{"task": f.tasks, "sort": {f.sort}, "dir": {f.dir}})
	if len(view.SelectedTasks) != len(f.tasks) {
		return fmt.Errorf("unknown task in %v", f.tasks)
	}
	p.SetDateRange(calendar.ParseRange(f.rng, calendar.RangeAll))
	for _, t := range view.SelectedTasks.Sorted() {
		p.ToggleTask(t)
	}
	p.TypeSearch(f.search)
	p.FlushSearch()
	p.SetSort(view.SortField)
	p.SetSortDirection(view.SortDirection)

	var w io.Writer = stdout
	path := f.out
	if path == "" {
		path = export.Filename(format, time.Now().In(a.loc))
	}
	if path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	if err := p.Export(ctx, format, w); err != nil {
		return err
	}
	if path != "-" {
		a.log.Info("export written", zap.String("path", path), zap.Int("rows", len(p.Visible())))
		fmt.Fprintln(stdout, path)
	}
	return nil
}
