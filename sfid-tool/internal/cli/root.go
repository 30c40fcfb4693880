// Package cli implements the sfid command tree: decoding a Salesforce id,
// enumerating neighbouring ids to a file or stdout, and the analysis helpers
// around them.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	pkglog "github.com/weiawesome/wes-io-live/pkg/log"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/config"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/sfid"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/sink"
)

const serviceName = "sfid-tool"

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
)

// app carries the per-invocation state shared by all commands.
type app struct {
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	// persistent flags
	configFile string
	idFlag     string

	cfg    *config.Config
	logger zerolog.Logger
	runID  ulid.ULID
}

// NewRootCmd builds the command tree writing results to stdout and logs and
// errors to stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, now: time.Now}
	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sfid",
		Short: "Decode, checksum and enumerate Salesforce record ids",
		Long: `sfid works with 15 and 18 character Salesforce record ids.

An id is object prefix (3) + instance (3) + reserved (1) + record number
(8 base62 digits). The 18 character form appends a 3 character checksum
derived from the case of the first 15.

Enumeration walks the record number up or down from a start value and writes
one id per line, to a file by default or to stdout with --displayonly.
With --threads 1 the output is strictly ordered.

Configuration is read from sfid.yaml (./config or .), SFID_* environment
variables and flags, in increasing priority.`,
		Example: `  # Decode the record number (prints the integer only)
  sfid decode 001Vc00000PHoN1IAL

  # Enumerate 10 ids upward from an explicit value into the default file
  sfid efv 001Vc00000PHoN1IAL --start 366897425 --seq 10

  # Print 5 ids downward from the id's own value, 18 char form
  sfid efc 001Vc00000PHoN1 --seq -5 --displayonly --to18

  # Strict order, custom file
  sfid efc 001Vc00000PHoN1IAL --seq 100 --threads 1 --outfile out.txt`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: sfid.yaml in ./config or .)")
	pf.StringVarP(&a.idFlag, "id", "i", "", "Salesforce id (15 or 18 chars), instead of the positional argument")
	pf.Bool("strict", false, "reject 18-char ids whose checksum does not match")
	pf.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	pf.Bool("log-pretty", false, "human readable logs")

	root.AddCommand(
		a.decodeCmd(),
		a.enumFromValueCmd(),
		a.enumFromCurrentCmd(),
		a.analyzeCmd(),
		a.to18Cmd(),
		a.runProfileCmd(),
		a.versionCmd(),
	)
	return root
}

// setup loads configuration, initialises the global logger and installs the
// run-scoped logger in the command context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return usageError(err)
	}
	a.cfg = cfg

	logCfg := pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: serviceName,
		Output:      a.stderr,
	}
	pkglog.Init(logCfg)
	a.logger = pkglog.New(logCfg)

	runID, err := sink.NewRunID(a.now())
	if err != nil {
		return err
	}
	a.runID = runID

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = pkglog.WithRun(pkglog.WithLogger(ctx, a.logger), runID.String(), cmd.Name())
	cmd.SetContext(ctx)
	return nil
}

// idArgs accepts the id either positionally or through --id, not both.
func (a *app) idArgs(_ *cobra.Command, args []string) error {
	switch {
	case len(args) > 1:
		return usageError(fmt.Errorf("expected a single id, got %d arguments", len(args)))
	case len(args) == 1 && a.idFlag != "":
		return usageError(fmt.Errorf("id given both as argument and --id"))
	case len(args) == 0 && a.idFlag == "":
		return usageError(ErrMissingID)
	}
	return nil
}

// parseID parses the command's id honouring the strict-checksum setting.
// Failures are usage errors that name the failing field.
func (a *app) parseID(args []string) (sfid.ID, error) {
	raw := a.idFlag
	if len(args) == 1 {
		raw = args[0]
	}
	id, err := sfid.ParseWith(raw, a.cfg.Parse.StrictChecksum)
	if err != nil {
		return sfid.ID{}, usageError(err)
	}
	a.logger.Debug().
		Str(pkglog.FieldID, id.ID15()).
		Uint64(pkglog.FieldRecordNumber, id.RecordNumber()).
		Msg("id parsed")
	return id, nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(a.stdout, "sfid %s (%s)\n", Version, Commit)
			return err
		},
	}
}

// Execute runs the command tree against the process's stdio and returns the
// exit code.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}
