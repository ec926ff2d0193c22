package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"expenses/internal/cli"
	"expenses/internal/config"
	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/report"
	"expenses/internal/services"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage marks argument problems. The flag set has already printed them.
var errUsage = errors.New("usage")

type app struct {
	svc    *services.LedgerService
	cfg    *config.Config
	logger *log.Logger
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"add":     {"record a transaction", runAdd},
	"months":  {"list months with transactions, most recent first", runMonths},
	"summary": {"show a month's transactions and category breakdown", runSummary},
	"delete":  {"delete a transaction by id", runDelete},
	"export":  {"export a month to csv or xlsx", runExport},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ledger", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file (default ./ledger.yaml if present)")
	envFile := fs.String("env", ".env", "dotenv file loaded before configuration")
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		fs.Usage()
		return exitUsage
	}

	if err := cli.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	cfg, err := cli.LoadAndValidateConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	logger := cli.SetupLogger(cfg, stderr)
	logger.DebugContext(ctx, "Starting command", "command", name, log.FieldBackend, cfg.Backend)

	svc, cleanup, err := cli.InitLedger(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Failed to close store", log.FieldError, err)
		}
	}()

	a := &app{svc: svc, cfg: cfg, logger: logger, stdout: stdout, stderr: stderr}
	if err := cmd.run(ctx, a, fs.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	return exitOK
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "usage: ledger [flags] <command> [command flags]")
	fmt.Fprintln(w, "\ncommands:")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-8s %s\n", n, commands[n].summary)
	}
	fmt.Fprintln(w, "\nflags:")
	fs.PrintDefaults()
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("ledger "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func runAdd(ctx context.Context, a *app, args []string) error {
	fs := a.flags("add")
	date := fs.String("date", time.Now().Format(core.DateLayout), "transaction date, YYYY-MM-DD")
	category := fs.String("category", "", "one of "+strings.Join(categoryNames(), ", "))
	amount := fs.String("amount", "", "decimal amount, e.g. 12.50")
	desc := fs.String("desc", "", "optional description")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	id, err := a.svc.AddTransaction(ctx, core.TransactionInput{
		Date:        *date,
		Category:    *category,
		Amount:      *amount,
		Description: *desc,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Added transaction %d\n", id)
	return nil
}

func runMonths(ctx context.Context, a *app, args []string) error {
	fs := a.flags("months")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	months, err := a.svc.ListMonths(ctx)
	if err != nil {
		return err
	}
	selected, ok := a.svc.SelectedMonth()
	return report.RenderMonths(a.stdout, months, selected, ok)
}

func runSummary(ctx context.Context, a *app, args []string) error {
	fs := a.flags("summary")
	month := fs.String("month", "", "month to show, YYYY-MM (default: most recent)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	r, ok, err := a.monthReport(ctx, *month)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.stdout, "No transactions yet.")
		return nil
	}
	return report.RenderText(a.stdout, r)
}

func runDelete(ctx context.Context, a *app, args []string) error {
	fs := a.flags("delete")
	id := fs.Int64("id", 0, "id of the transaction to delete")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *id == 0 {
		fmt.Fprintln(a.stderr, "delete: -id is required")
		fs.Usage()
		return errUsage
	}

	if err := a.svc.DeleteTransaction(ctx, *id); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Deleted transaction %d\n", *id)
	return nil
}

func runExport(ctx context.Context, a *app, args []string) error {
	fs := a.flags("export")
	month := fs.String("month", "", "month to export, YYYY-MM (default: most recent)")
	format := fs.String("format", string(report.FormatCSV), "csv or xlsx")
	out := fs.String("out", "", "output file (default: <export_dir>/ledger_<month>.<format>)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	f, err := report.ParseFormat(*format)
	if err != nil {
		return err
	}

	r, ok, err := a.monthReport(ctx, *month)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("nothing to export: the ledger is empty")
	}

	path, err := report.WriteFile(a.cfg.ExportDir, *out, f, r)
	if err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "Month exported",
		log.NewFields().WithOperation(log.OpExport).WithMonth(r.Month).WithPath(path).ToSlice()...)
	fmt.Fprintf(a.stdout, "Exported %s to %s\n", r.Month, path)
	return nil
}

// monthReport resolves an explicit YYYY-MM or, when empty, the selected
// month. ok is false when no month was given and the ledger is empty.
func (a *app) monthReport(ctx context.Context, month string) (core.MonthReport, bool, error) {
	if month == "" {
		return a.svc.CurrentReport(ctx)
	}

	m, err := core.ParseMonthKey(month)
	if err != nil {
		return core.MonthReport{}, false, err
	}
	r, err := a.svc.GetMonthSummary(ctx, m)
	if err != nil {
		return core.MonthReport{}, false, err
	}
	return r, true, nil
}

func categoryNames() []string {
	cats := core.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return names
}
