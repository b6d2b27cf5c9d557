// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scc-digitalhub/edge-addons-sdk/sdk/services/artifact"
	"github.com/scc-digitalhub/edge-addons-sdk/sdk/services/submission"
	"github.com/scc-digitalhub/edge-addons-sdk/sdk/utils"
)

var (
	envName    string
	configFile string
	verbose    bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "edgeaddons: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edgeaddons",
		Short: "Submit extensions to the Microsoft Edge Add-ons store",
		Long: `edgeaddons uploads an extension package to the Edge Add-ons API, waits for it to be processed
and publishes the draft submission. Credentials come from EDGE_* environment variables,
the ~/.edgeaddons.ini profile selected with --env, or a YAML/JSON file given with --config.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			utils.SetVerbose(verbose)
			if err := utils.RegisterIniCfgWithViper(envName); err != nil {
				return err
			}
			if configFile != "" {
				return utils.LoadConfigFile(configFile)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&envName, "env", "e", "", "INI profile to use")
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML or JSON config file")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")
	cmd.AddCommand(
		newSubmitCmd(),
		newUploadCmd(),
		newPublishCmd(),
		newStatusCmd(),
		newWaitCmd(),
		newSaveCmd(),
	)
	return cmd
}

func newService(ctx context.Context) (*submission.SubmissionService, error) {
	return submission.NewSubmissionService(ctx, utils.BuildConfig())
}

func newArtifactService() *artifact.ArtifactService {
	return artifact.NewArtifactService(nil, utils.BuildConfig())
}

func newSubmitCmd() *cobra.Command {
	var notes string
	var strict bool
	cmd := &cobra.Command{
		Use:   "submit <package>",
		Short: "Upload a package, wait for processing and publish it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			id, err := svc.Submit(cmd.Context(), submission.SubmitRequest{
				FilePath:          args[0],
				Notes:             notes,
				FailOnPollTimeout: strict,
			})
			if err != nil {
				return err
			}
			if id != "" {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes for the certification team")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail if the upload is still in progress after all polls")
	return cmd
}

func newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <package>",
		Short: "Upload a package (local path, s3:// or http(s):// URL) and print the operation id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			a, err := newArtifactService().Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer a.Close()
			id, err := svc.Upload(cmd.Context(), submission.UploadRequest{Body: a, Size: a.Size})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newPublishCmd() *cobra.Command {
	var notes string
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the draft submission and print the operation id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			id, err := svc.Publish(cmd.Context(), submission.PublishRequest{Notes: notes})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes for the certification team")
	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <operation-id>",
		Short: "Print the status of a publish operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			op, err := svc.GetPublishStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(op, "", "    ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newWaitCmd() *cobra.Command {
	var retries int
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "wait <operation-id>",
		Short: "Poll an upload operation until it completes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.WaitForUpload(cmd.Context(), submission.WaitRequest{
				OperationID:  args[0],
				RetryCount:   retries,
				PollInterval: interval,
			})
			if err != nil {
				return err
			}
			if res.Outcome == submission.OutcomeTimedOut {
				return fmt.Errorf("%w: %d polls", submission.ErrPollTimeout, res.Attempts)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	cmd.Flags().IntVar(&retries, "retries", 0, "Number of status polls (default from config)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Pause after an in progress answer (default from config)")
	return cmd
}

func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Store the current settings as the --env profile in ~/.edgeaddons.ini",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return utils.SaveIniProfile(envName)
		},
	}
}
