package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/shaiso/tickvault/internal/client"
)

// NewRealtimeCmd создаёт группу команд для работы с real-time данными.
func NewRealtimeCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "realtime",
		Short: "Collect and query real-time market data",
	}

	cmd.AddCommand(
		newCreateTickDBCmd(clientFn, outputFn),
		newCreateAggDBCmd(clientFn, outputFn),
		newDBConfigCmd(clientFn, outputFn),
		newDropDBCmd(clientFn, outputFn),
		newCollectCmd(clientFn, outputFn),
		newActiveCmd(clientFn, outputFn),
		newCancelCmd(clientFn, outputFn),
		newGetCmd(clientFn, outputFn),
	)

	return cmd
}

// statusHeaders и statusRows — единый табличный вид StatusResponse.
var statusHeaders = []string{"STATUS", "MSG"}

func statusRows(s *client.StatusResponse) [][]string {
	return [][]string{{s.Status, s.Msg}}
}

func newCreateTickDBCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	var universes []string
	var conids []int
	var vendor string
	var fields []string
	var primaryExchange bool

	cmd := &cobra.Command{
		Use:   "create-tick-db CODE",
		Short: "Create a new database for collecting real-time tick data",
		Long: `Create a new database for collecting real-time tick data.

The market data requirements you specify when you create a new database
are applied each time you collect data for that database.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			status, err := c.CreateTickDB(cmd.Context(), client.CreateTickDBRequest{
				Code:            args[0],
				Universes:       universes,
				Conids:          conids,
				Vendor:          vendor,
				Fields:          fields,
				PrimaryExchange: primaryExchange,
			})
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Tick database created: %s", args[0]))
			out.Print(statusHeaders, statusRows(status), status)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&universes, "universes", "u", nil, "Include these universes")
	cmd.Flags().IntSliceVarP(&conids, "conids", "i", nil, "Include these conids")
	cmd.Flags().StringVarP(&vendor, "vendor", "v", "", "The vendor to collect data from (default 'ib')")
	cmd.Flags().StringSliceVarP(&fields, "fields", "f", nil, "Collect these fields (default fields are 'last' and 'volume')")
	cmd.Flags().BoolVarP(&primaryExchange, "primary-exchange", "p", false, "Limit to data from the primary exchange")

	return cmd
}

func newCreateAggDBCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	var fromCode string
	var barSize string
	var closeFields, openFields, highFields, lowFields, meanFields []string

	cmd := &cobra.Command{
		Use:   "create-agg-db CODE",
		Short: "Create an aggregate database from a tick database",
		Long: `Create an aggregate database from a tick database.

Aggregate databases provide rolled-up views of the underlying tick data,
aggregated to a desired frequency (such as 1-minute bars).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			// --close/--open/--high/--low/--mean → спецификация агрегации,
			// пустые методы не сериализуются
			aggFields := map[string][]string{}
			for method, f := range map[string][]string{
				"close": closeFields,
				"open":  openFields,
				"high":  highFields,
				"low":   lowFields,
				"mean":  meanFields,
			} {
				if len(f) > 0 {
					aggFields[method] = f
				}
			}
			if len(aggFields) == 0 {
				aggFields = nil
			}

			status, err := c.CreateAggDB(cmd.Context(), client.CreateAggDBRequest{
				Code:       args[0],
				TickDBCode: fromCode,
				BarSize:    barSize,
				Fields:     aggFields,
			})
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Aggregate database created: %s", args[0]))
			out.Print(statusHeaders, statusRows(status), status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&fromCode, "from", "f", "", "The code of the tick database to aggregate (required)")
	cmd.Flags().StringVarP(&barSize, "bar-size", "z", "", "The time frequency to aggregate to, e.g. 10s, 1m, 2h or 1d (required)")
	cmd.Flags().StringSliceVarP(&closeFields, "close", "c", nil, "Include closing tick for these fields")
	cmd.Flags().StringSliceVarP(&openFields, "open", "o", nil, "Include opening tick for these fields")
	cmd.Flags().StringSliceVarP(&highFields, "high", "g", nil, "Include high tick for these fields")
	cmd.Flags().StringSliceVarP(&lowFields, "low", "l", nil, "Include low tick for these fields")
	cmd.Flags().StringSliceVarP(&meanFields, "mean", "m", nil, "Include mean tick for these fields")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("bar-size")

	return cmd
}

func newDBConfigCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "config CODE",
		Short: "Return the configuration for a tick database or aggregate database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			cfg, err := c.GetDBConfig(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out.Print([]string{"KEY", "VALUE"}, MapRows(cfg), cfg)
			return nil
		},
	}
}

func newDropDBCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	var confirm string
	var cascade bool

	cmd := &cobra.Command{
		Use:   "drop-db CODE",
		Short: "Delete a tick database or aggregate database",
		Long: `Delete a tick database or aggregate database.

Deleting a tick database deletes its configuration and data. Deleting an
aggregate database does not delete the tick database from which it is
derived.

Deleting databases is irreversible.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			status, err := c.DropDB(cmd.Context(), args[0], confirm, cascade)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Database dropped: %s", args[0]))
			out.Print(statusHeaders, statusRows(status), status)
			return nil
		},
	}

	cmd.Flags().StringVar(&confirm, "confirm-by-typing-db-code-again", "",
		"Enter the db code again to confirm you want to drop the database, its config, and all its data (required)")
	cmd.Flags().BoolVar(&cascade, "cascade",
		false, "Also delete associated aggregate databases, if any. Only applicable when deleting a tick database")
	cmd.MarkFlagRequired("confirm-by-typing-db-code-again")

	return cmd
}

func newCollectCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	var conids []int
	var universes []string
	var fields []string
	var until string
	var snapshot bool
	var wait bool

	cmd := &cobra.Command{
		Use:   "collect CODE...",
		Short: "Collect real-time market data and save it to a tick database",
		Long: `Collect real-time market data and save it to a tick database.

A single snapshot of market data or a continuous stream of market data
can be collected, depending on the --snapshot flag.

Streaming real-time data is collected until cancelled, or can be
scheduled for cancellation using the --until flag.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			status, err := c.Collect(cmd.Context(), client.CollectRequest{
				Codes:     args,
				Conids:    conids,
				Universes: universes,
				Fields:    fields,
				Until:     until,
				Snapshot:  snapshot,
				Wait:      wait,
			})
			if err != nil {
				return err
			}

			out.Success("Market data collection started")
			out.Print(statusHeaders, statusRows(status), status)
			return nil
		},
	}

	cmd.Flags().IntSliceVarP(&conids, "conids", "i", nil, "Collect market data for these conids, overriding db config")
	cmd.Flags().StringSliceVarP(&universes, "universes", "u", nil, "Collect market data for these universes, overriding db config")
	cmd.Flags().StringSliceVarP(&fields, "fields", "f", nil, "Limit to these fields, overriding db config")
	cmd.Flags().StringVar(&until, "until", "", "Schedule data collection to end at this time: a datetime (YYYY-MM-DD HH:MM:SS), a time (HH:MM:SS) or a duration (e.g. 2h or 30m). If not provided, market data is collected until cancelled")
	cmd.Flags().BoolVarP(&snapshot, "snapshot", "s", false, "Collect a snapshot of market data (default is to collect a continuous stream)")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Wait for the market data snapshot to complete before returning. Requires --snapshot")

	return cmd
}

func newActiveCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	var detail bool

	cmd := &cobra.Command{
		Use:   "active",
		Short: "Return the number of tickers currently being collected, by vendor and database",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			active, err := c.ActiveCollections(cmd.Context(), detail)
			if err != nil {
				return err
			}

			vendors := make([]string, 0, len(active))
			for vendor := range active {
				vendors = append(vendors, vendor)
			}
			sort.Strings(vendors)

			rows := [][]string{}
			for _, vendor := range vendors {
				codes := make([]string, 0, len(active[vendor]))
				for code := range active[vendor] {
					codes = append(codes, code)
				}
				sort.Strings(codes)
				for _, code := range codes {
					rows = append(rows, []string{vendor, code, FormatValue(active[vendor][code])})
				}
			}

			out.Print([]string{"VENDOR", "DATABASE", "TICKERS"}, rows, active)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&detail, "detail", "d", false, "Return lists of tickers (default is to return counts of tickers)")

	return cmd
}

func newCancelCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	var conids []int
	var universes []string
	var cancelAll bool

	cmd := &cobra.Command{
		Use:   "cancel [CODE...]",
		Short: "Cancel market data collection",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			status, err := c.CancelCollections(cmd.Context(), client.CancelRequest{
				Codes:     args,
				Conids:    conids,
				Universes: universes,
				CancelAll: cancelAll,
			})
			if err != nil {
				return err
			}

			out.Success("Market data collection cancelled")
			out.Print(statusHeaders, statusRows(status), status)
			return nil
		},
	}

	cmd.Flags().IntSliceVarP(&conids, "conids", "i", nil, "Cancel market data for these conids, overriding db config")
	cmd.Flags().StringSliceVarP(&universes, "universes", "u", nil, "Cancel market data for these universes, overriding db config")
	cmd.Flags().BoolVarP(&cancelAll, "all", "a", false, "Cancel all market data collection")

	return cmd
}

func newGetCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	var startDate, endDate string
	var universes, excludeUniverses []string
	var conids, excludeConids []int
	var fields []string
	var outfile string

	cmd := &cobra.Command{
		Use:   "get CODE",
		Short: "Query market data from a tick database or aggregate database and download to file",
		Long: `Query market data from a tick database or aggregate database and
download to file.

Output is CSV by default; pass --json to download JSON instead. Data is
written to --outfile, or to stdout if no outfile is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			params := client.MarketDataParams{
				Code:             args[0],
				StartDate:        startDate,
				EndDate:          endDate,
				Universes:        universes,
				Conids:           conids,
				ExcludeUniverses: excludeUniverses,
				ExcludeConids:    excludeConids,
				Fields:           fields,
				JSON:             out.JSONMode(),
			}

			var w io.Writer = os.Stdout
			if outfile != "" {
				f, err := os.Create(outfile)
				if err != nil {
					return fmt.Errorf("failed to create outfile: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := c.DownloadMarketData(cmd.Context(), params, w); err != nil {
				return err
			}

			if outfile != "" {
				out.Success(fmt.Sprintf("Market data written to %s", outfile))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&startDate, "start-date", "s", "", "Limit to market data on or after this datetime. Can be a date (YYYY-MM-DD), a datetime with optional timezone, or a time with optional timezone; a time without date means the nearest past occurrence of that time")
	cmd.Flags().StringVarP(&endDate, "end-date", "e", "", "Limit to market data on or before this datetime")
	cmd.Flags().StringSliceVarP(&universes, "universes", "u", nil, "Limit to these universes")
	cmd.Flags().IntSliceVarP(&conids, "conids", "i", nil, "Limit to these conids")
	cmd.Flags().StringSliceVar(&excludeUniverses, "exclude-universes", nil, "Exclude these universes")
	cmd.Flags().IntSliceVar(&excludeConids, "exclude-conids", nil, "Exclude these conids")
	cmd.Flags().StringSliceVarP(&fields, "fields", "f", nil, "Only return these fields")
	cmd.Flags().StringVarP(&outfile, "outfile", "o", "", "Filename to write the data to (default is stdout)")

	return cmd
}
