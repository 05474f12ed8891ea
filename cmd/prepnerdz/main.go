package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/prepnerdz/prepnerdz-api/internal/client"
	"github.com/prepnerdz/prepnerdz-api/internal/models"
	"github.com/prepnerdz/prepnerdz-api/internal/panel"
	"github.com/prepnerdz/prepnerdz-api/pkg/config"
	"github.com/prepnerdz/prepnerdz-api/pkg/logger"
)

type options struct {
	category string
	query    string
	branch   string
	semester string
	pages    int
	toggle   []string
	list     bool
	show     string
}

func main() {
	flags := pflag.NewFlagSet("prepnerdz", pflag.ExitOnError)
	flags.String("backend-url", "", "resource API base URL, e.g. http://localhost:8080/api/v1")
	flags.String("auth-token", "", "session token sent as the token cookie")
	flags.String("env", "", "development or production logging")

	var opts options
	flags.StringVarP(&opts.category, "category", "c", "best-notes", "category key")
	flags.StringVarP(&opts.query, "query", "q", "", "search text")
	flags.StringVarP(&opts.branch, "branch", "b", "", "branch code ("+fmt.Sprint(panel.Branches)+")")
	flags.StringVarP(&opts.semester, "semester", "s", "", "semester number 1-8")
	flags.IntVarP(&opts.pages, "pages", "p", 1, "result pages to fetch")
	flags.StringSliceVar(&opts.toggle, "toggle", nil, "resource ids whose bookmark to toggle")
	flags.BoolVar(&opts.list, "list", false, "list category keys and exit")
	flags.StringVar(&opts.show, "show", "", "print one resource in full and exit")
	_ = flags.Parse(os.Args[1:])

	if opts.list {
		printCategories(os.Stdout)
		return
	}

	cfg, err := config.LoadWithFlags(flags)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, logr, os.Stdout); err != nil {
		logr.Error("prepnerdz failed", zap.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, logr *zap.Logger, out io.Writer) error {
	api, err := client.New(cfg.Client, logr)
	if err != nil {
		return err
	}

	if opts.show != "" {
		res, err := api.Resource(ctx, opts.show)
		if err != nil {
			return err
		}
		printResource(out, res)
		return nil
	}

	p := panel.New(api, panel.NewLogNotifier(logr), logr)
	if err := p.Mount(ctx); err != nil {
		return err
	}

	resolution, err := p.Activate(ctx, opts.category)
	if err != nil {
		return err
	}
	supported, ok := resolution.(panel.Supported)
	if !ok {
		fmt.Fprintln(out, panel.UnsupportedMessage)
		return nil
	}
	fmt.Fprintf(out, "%s\n%s\n\n", supported.Config.Title, supported.Config.Description)

	snap := p.Results()
	if opts.query != "" || opts.branch != "" || opts.semester != "" {
		p.SetQuery(opts.query)
		p.SetBranch(opts.branch)
		p.SetSemester(opts.semester)
		if snap, err = p.Search(ctx); err != nil {
			return err
		}
	}
	for page := 1; page < opts.pages && snap.HasMore; page++ {
		if snap, err = p.LoadMore(ctx); err != nil {
			return err
		}
	}

	for _, id := range opts.toggle {
		bookmarked, err := p.ToggleBookmark(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "bookmark %s: %t\n", id, bookmarked)
	}

	printResults(out, snap, p.Bookmarks())
	return nil
}

func printCategories(out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, c := range panel.Categories() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Key, c.Type, c.Title)
	}
	w.Flush()
}

func printResults(out io.Writer, snap panel.Snapshot, bookmarks *panel.Bookmarks) {
	if len(snap.Results) == 0 {
		fmt.Fprintln(out, "No resources found.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tTITLE\tSUBJECT\tSIZE\tUPLOADER\tID")
	for _, r := range snap.Results {
		mark := " "
		if bookmarks.IsBookmarked(r.ID) {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", mark, r.Title, subjectName(r), panel.FormatFileSize(r.FileSize), uploader(r), r.ID)
	}
	w.Flush()
	fmt.Fprintf(out, "\nshowing %d of %d", len(snap.Results), snap.Total)
	if snap.HasMore {
		fmt.Fprint(out, " (more available)")
	}
	fmt.Fprintln(out)
}

func printResource(out io.Writer, r *models.Resource) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Title\t%s\n", r.Title)
	fmt.Fprintf(w, "Type\t%s\n", r.Type)
	if r.Description != "" {
		fmt.Fprintf(w, "Description\t%s\n", r.Description)
	}
	if r.Year != "" || r.Month != "" {
		fmt.Fprintf(w, "Date\t%s\n", strings.TrimSpace(r.Month+" "+r.Year))
	}
	if r.Subject != nil {
		fmt.Fprintf(w, "Subject\t%s (%s)\n", r.Subject.SubjectName, r.Subject.SubjectCode)
		if sem := r.Subject.Semester; sem != nil {
			branch := "-"
			if sem.Branch != nil {
				branch = sem.Branch.BranchName
			}
			fmt.Fprintf(w, "Semester\t%d\n", sem.SemNumber)
			fmt.Fprintf(w, "Branch\t%s\n", branch)
		}
	}
	fmt.Fprintf(w, "File\t%s\n", r.FileURL)
	fmt.Fprintf(w, "Format\t%s\n", r.FileType)
	fmt.Fprintf(w, "Size\t%s\n", panel.FormatFileSize(r.FileSize))
	fmt.Fprintf(w, "Uploaded by\t%s\n", uploader(*r))
	fmt.Fprintf(w, "ID\t%s\n", r.ID)
	w.Flush()
}

func subjectName(r models.Resource) string {
	if r.Subject == nil {
		return "-"
	}
	return r.Subject.SubjectName
}

func uploader(r models.Resource) string {
	if r.UploadedBy == nil {
		return "-"
	}
	return r.UploadedBy.Username
}
