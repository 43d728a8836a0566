package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaiso/tickvault/internal/client"
)

// NewDBCmd создаёт группу команд администрирования баз.
func NewDBCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage databases",
	}

	cmd.AddCommand(
		newDBListCmd(clientFn, outputFn),
		newS3ConfigCmd(clientFn, outputFn),
		newS3PushCmd(clientFn, outputFn),
		newS3PullCmd(clientFn, outputFn),
		newOptimizeCmd(clientFn, outputFn),
	)

	return cmd
}

func newDBListCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	var services []string
	var codes []string
	var detail bool
	var expand bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List databases",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			databases, err := c.ListDatabases(cmd.Context(), client.ListDatabasesParams{
				Services: services,
				Codes:    codes,
				Detail:   detail,
				Expand:   expand,
			})
			if err != nil {
				return err
			}

			out.Print([]string{"KEY", "VALUE"}, MapRows(databases), databases)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&services, "services", "s", nil, "Limit to these services")
	cmd.Flags().StringSliceVarP(&codes, "codes", "c", nil, "Limit to these codes")
	cmd.Flags().BoolVarP(&detail, "detail", "d", false, "Return database statistics (default is a flat list of database names)")
	cmd.Flags().BoolVar(&expand, "expand", false, "Expand sharded databases to include individual shards")

	return cmd
}

func newS3ConfigCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	var accessKeyID, secretAccessKey, bucket, region string

	cmd := &cobra.Command{
		Use:   "s3config",
		Short: "Set or show Amazon S3 configuration for pushing and pulling databases",
		Long: `Set or show Amazon S3 configuration for pushing and pulling databases
to and from S3.

With no flags the current configuration is shown; with any flag set the
configuration is updated. Credentials are encrypted at rest and never
leave the deployment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			// Любой заданный флаг — запись конфигурации, иначе чтение
			if accessKeyID != "" || secretAccessKey != "" || bucket != "" || region != "" {
				status, err := c.SetS3Config(cmd.Context(), client.S3ConfigRequest{
					AccessKeyID:     accessKeyID,
					SecretAccessKey: secretAccessKey,
					Bucket:          bucket,
					Region:          region,
				})
				if err != nil {
					return err
				}

				out.Success("S3 configuration updated")
				out.Print(statusHeaders, statusRows(status), status)
				return nil
			}

			cfg, err := c.GetS3Config(cmd.Context())
			if err != nil {
				return err
			}

			out.Print([]string{"KEY", "VALUE"}, MapRows(cfg), cfg)
			return nil
		},
	}

	cmd.Flags().StringVar(&accessKeyID, "access-key-id", "", "AWS access key ID")
	cmd.Flags().StringVar(&secretAccessKey, "secret-access-key", "", "AWS secret access key")
	cmd.Flags().StringVar(&bucket, "bucket", "", "The S3 bucket name to push to/pull from")
	cmd.Flags().StringVar(&region, "region", "", "The AWS region in which to create the bucket (default us-east-1). Ignored if the bucket already exists")

	return cmd
}

func newS3PushCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	var services []string
	var codes []string

	cmd := &cobra.Command{
		Use:   "s3push",
		Short: "Push databases to Amazon S3",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			status, err := c.S3PushDatabases(cmd.Context(), services, codes)
			if err != nil {
				return err
			}

			out.Success("S3 push started")
			out.Print(statusHeaders, statusRows(status), status)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&services, "services", "s", nil, "Limit to these services")
	cmd.Flags().StringSliceVarP(&codes, "codes", "c", nil, "Limit to these codes")

	return cmd
}

func newS3PullCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	var services []string
	var codes []string
	var force bool

	cmd := &cobra.Command{
		Use:   "s3pull",
		Short: "Pull databases from Amazon S3",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			status, err := c.S3PullDatabases(cmd.Context(), services, codes, force)
			if err != nil {
				return err
			}

			out.Success("S3 pull started")
			out.Print(statusHeaders, statusRows(status), status)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&services, "services", "s", nil, "Limit to these services")
	cmd.Flags().StringSliceVarP(&codes, "codes", "c", nil, "Limit to these codes")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing database if one exists (default is to fail if one exists)")

	return cmd
}

func newOptimizeCmd(clientFn func() (*client.Client, error), outputFn func() *Output) *cobra.Command {
	var services []string
	var codes []string

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Optimize databases to improve performance",
		Long: `Optimize databases to improve performance.

This runs the VACUUM command, which defragments the database and
reclaims disk space.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			status, err := c.OptimizeDatabases(cmd.Context(), services, codes)
			if err != nil {
				return err
			}

			out.Success("Database optimization started")
			out.Print(statusHeaders, statusRows(status), status)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&services, "services", "s", nil, "Limit to these services")
	cmd.Flags().StringSliceVarP(&codes, "codes", "c", nil, "Limit to these codes")

	return cmd
}
