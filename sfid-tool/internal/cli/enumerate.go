package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	pkglog "github.com/weiawesome/wes-io-live/pkg/log"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/config"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/enumerator"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/scheduler"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/sfid"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/sink"
)

// enumFlags are shared by the enumeration commands.
type enumFlags struct {
	start        int64
	seq          int64
	to18         bool
	displayOnly  bool
	outfile      string
	untilStopped bool
}

func (f *enumFlags) register(cmd *cobra.Command, withStart bool) {
	fl := cmd.Flags()
	if withStart {
		fl.Int64Var(&f.start, "start", 0, fmt.Sprintf("starting record number (0..%d)", sfid.MaxRecordNumber))
	}
	fl.Int64Var(&f.seq, "seq", 0, "number of ids to generate; positive counts up, negative counts down")
	fl.Int("threads", config.DefaultWorkers, "worker count; 1 gives strictly ordered output")
	fl.Int("queue-size", scheduler.DefaultQueueSize, "work queue capacity for parallel runs")
	fl.BoolVar(&f.to18, "to18", false, "output 18-char ids (default 15-char)")
	fl.BoolVar(&f.displayOnly, "displayonly", false, "print ids to stdout instead of writing a file")
	fl.StringVar(&f.outfile, "outfile", "", "output file (default <stem>-<timestamp>-<run>.txt in the output dir)")
	fl.String("output-dir", ".", "directory for generated output file names")
	fl.BoolVar(&f.untilStopped, "until-stopped", false, "ignore the --seq count and run until the range bound or interrupt")
}

// steps validates --seq against --until-stopped.
func (f *enumFlags) steps() (int64, error) {
	if f.seq == 0 && !f.untilStopped {
		return 0, usageError(ErrZeroSeq)
	}
	return f.seq, nil
}

func (a *app) enumFromValueCmd() *cobra.Command {
	var f enumFlags

	cmd := &cobra.Command{
		Use:     "enum-from-value [id]",
		Aliases: []string{"efv"},
		Short:   "Enumerate ids from an explicit record number, reusing the id's prefix",
		Args:    a.idArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.parseID(args)
			if err != nil {
				return err
			}
			steps, err := f.steps()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("start") {
				return usageError(ErrMissingStart)
			}
			if f.start < 0 {
				return usageError(&sfid.FieldError{
					Field:  "start",
					Value:  fmt.Sprint(f.start),
					Err:    sfid.ErrRange,
					Detail: fmt.Sprintf("must be between 0 and %d", sfid.MaxRecordNumber),
				})
			}
			req, err := enumerator.FromValue(id, uint64(f.start), steps)
			if err != nil {
				return usageError(err)
			}
			return a.enumerate(cmd.Context(), req, f)
		},
	}

	f.register(cmd, true)
	return cmd
}

func (a *app) enumFromCurrentCmd() *cobra.Command {
	var f enumFlags

	cmd := &cobra.Command{
		Use:     "enum-from-current [id]",
		Aliases: []string{"efc"},
		Short:   "Enumerate ids starting at the id's own record number",
		Args:    a.idArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.parseID(args)
			if err != nil {
				return err
			}
			steps, err := f.steps()
			if err != nil {
				return err
			}
			return a.enumerate(cmd.Context(), enumerator.FromCurrent(id, steps), f)
		},
	}

	f.register(cmd, false)
	return cmd
}

// enumerate completes req from flags and config, opens the sink and runs
// the scheduler. In file mode nothing is printed to stdout.
func (a *app) enumerate(ctx context.Context, req enumerator.Request, f enumFlags) error {
	req.Workers = a.cfg.Enum.Workers
	req.As18 = f.to18
	req.Unbounded = f.untilStopped

	l := pkglog.Ctx(ctx)

	var (
		out    sink.Sink
		target = "stdout"
	)
	if f.displayOnly {
		out = sink.NewStream(a.stdout)
	} else {
		name := sink.DefaultFilename(a.cfg.Output.Stem, a.now(), a.runID)
		path := sink.ResolvePath(a.cfg.Output.Dir, f.outfile, name)
		file, err := sink.CreateFile(path)
		if err != nil {
			return outputError(err)
		}
		out = file
		target = path
	}

	s := scheduler.New(
		scheduler.WithQueueSize(a.cfg.Enum.QueueSize),
		scheduler.WithProgress(func(p scheduler.Progress) {
			l.Debug().
				Uint64(pkglog.FieldWritten, p.Written).
				Uint64(pkglog.FieldSkipped, p.Skipped).
				Uint64("expected", p.Expected).
				Bool("done", p.Done).
				Msg("progress")
		}, a.cfg.Enum.ProgressInterval),
	)

	res, err := s.Run(ctx, req, out)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		l.Warn().
			Str(pkglog.FieldOutput, target).
			Uint64(pkglog.FieldWritten, res.Written).
			Msg("enumeration interrupted, partial output kept")
		return err
	case errors.Is(err, scheduler.ErrInvalidWorkers), errors.Is(err, scheduler.ErrMissingTemplate):
		return usageError(err)
	default:
		return outputError(err)
	}

	l.Info().
		Str(pkglog.FieldOutput, target).
		Uint64(pkglog.FieldWritten, res.Written).
		Uint64(pkglog.FieldSkipped, res.Skipped).
		Msg("ids written")
	return nil
}
