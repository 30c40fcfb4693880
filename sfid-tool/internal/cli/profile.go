package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	pkglog "github.com/weiawesome/wes-io-live/pkg/log"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/config"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/enumerator"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/scheduler"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/sfid"
)

func (a *app) runProfileCmd() *cobra.Command {
	var (
		f    enumFlags
		list bool
	)

	cmd := &cobra.Command{
		Use:   "run <profile>",
		Short: "Run a named enumeration preset from the config file",
		Long: `run executes one of the presets listed under "profiles" in sfid.yaml:

  profiles:
    - name: accounts
      base_id: 001Vc00000PHoN1IAL
      count: 1000
      direction: down
      to18: true
      outfile: accounts.txt

--displayonly, --outfile, --threads and --to18 override the preset.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return a.listProfiles()
			}
			if len(args) != 1 {
				return usageError(fmt.Errorf("expected a profile name"))
			}

			p, err := a.cfg.Profile(args[0])
			if err != nil {
				return usageError(err)
			}
			id, err := sfid.ParseWith(p.BaseID, a.cfg.Parse.StrictChecksum)
			if err != nil {
				return usageError(fmt.Errorf("profile %s: base_id: %w", p.Name, err))
			}

			if !cmd.Flags().Changed("to18") {
				f.to18 = p.To18
			}
			if f.outfile == "" {
				f.outfile = p.Outfile
			}

			ctx := cmd.Context()
			l := pkglog.Ctx(ctx).With().Str(pkglog.FieldProfile, p.Name).Logger()
			ctx = pkglog.WithLogger(ctx, l)

			return a.enumerate(ctx, enumerator.FromCurrent(id, p.Steps()), f)
		},
	}

	fl := cmd.Flags()
	fl.BoolVar(&list, "list", false, "list configured profiles")
	fl.Int("threads", config.DefaultWorkers, "worker count; 1 gives strictly ordered output")
	fl.Int("queue-size", scheduler.DefaultQueueSize, "work queue capacity for parallel runs")
	fl.BoolVar(&f.to18, "to18", false, "output 18-char ids")
	fl.BoolVar(&f.displayOnly, "displayonly", false, "print ids to stdout instead of writing a file")
	fl.StringVar(&f.outfile, "outfile", "", "output file, overriding the profile's")
	fl.String("output-dir", ".", "directory for generated output file names")
	return cmd
}

func (a *app) listProfiles() error {
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tBASE ID\tCOUNT\tDIRECTION\t18")
	for _, p := range a.cfg.Profiles {
		dir := p.Direction
		if dir == "" {
			dir = "up"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%t\n", p.Name, p.BaseID, p.Count, dir, p.To18)
	}
	return tw.Flush()
}
