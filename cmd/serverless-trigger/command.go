// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package main

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/DataDog/datadog-serverless-trigger/pkg/config"
	"github.com/DataDog/datadog-serverless-trigger/pkg/serverless/trigger"
	"github.com/DataDog/datadog-serverless-trigger/pkg/serverless/trigger/itemdecoder"
	"github.com/DataDog/datadog-serverless-trigger/pkg/util/log"
	"github.com/DataDog/datadog-serverless-trigger/pkg/version"
)

const (
	// loggerName is the name of the trigger CLI logger
	loggerName log.LoggerName = "TRIGGER"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// cliParams are the flags shared by every command.
type cliParams struct {
	confPath     string
	functionName string
	requestID    string
}

func newRootCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	params := &cliParams{}

	rootCmd := &cobra.Command{
		Use:   "serverless-trigger [command]",
		Short: "Classify and normalize serverless invocation payloads.",
		Long: `
serverless-trigger reads a function invocation payload, finds which service
triggered it and prints the normalized trigger record as JSON.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&params.confPath, "cfgpath", "c", "", "path to the YAML configuration file")

	classifyCmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Print the source type of a payload",
		Long:  `Reads the payload from file, or stdin when no file is given, and prints its source type.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := setup(params); err != nil {
				return err
			}
			raw, err := readPayload(stdin, args)
			if err != nil {
				return err
			}
			var payload interface{}
			if err := json.Unmarshal(raw, &payload); err != nil {
				log.Debugf("Payload is not JSON: %v", err)
				payload = nil
			}
			st := trigger.Classify(payload, trigger.InvocationContext{FunctionName: params.functionName})
			return writeJSON(stdout, map[string]string{"source_type": string(st)})
		},
	}

	buildCmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Print the trigger record of a payload",
		Long:  `Reads the payload from file, or stdin when no file is given, and prints the trigger record built from it.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := setup(params)
			if err != nil {
				return err
			}
			raw, err := readPayload(stdin, args)
			if err != nil {
				return err
			}
			builder := trigger.NewBuilder(
				trigger.NewNormalizer(tc.MetadataOnly, tc.MaxPayloadSize),
				trigger.WithItemDecoder(itemdecoder.New()),
			)
			e, err := builder.Build(raw, trigger.InvocationContext{
				FunctionName: params.functionName,
				RequestID:    params.requestID,
			})
			if err != nil {
				return err
			}
			return writeJSON(stdout, e)
		},
	}
	buildCmd.Flags().StringVarP(&params.functionName, "function-name", "f", "function", "name of the invoked function")
	buildCmd.Flags().StringVar(&params.requestID, "request-id", "", "request ID of the invocation")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  ``,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(stdout, version.String())
		},
	}

	rootCmd.AddCommand(classifyCmd, buildCmd, versionCmd)
	return rootCmd
}

// setup loads the configuration and installs the logger on stderr, keeping
// stdout for command output.
func setup(params *cliParams) (config.TriggerConfig, error) {
	if err := config.LoadFile(config.Datadog, params.confPath); err != nil {
		return config.TriggerConfig{}, err
	}
	tc, err := config.Load(config.Datadog)
	if err != nil {
		return config.TriggerConfig{}, errors.Wrap(err, "invalid configuration")
	}
	if err := log.SetupLoggerToWriter(os.Stderr, loggerName, tc.LogLevel, tc.LogFormatJSON); err != nil {
		return config.TriggerConfig{}, errors.Wrap(err, "unable to setup logger")
	}
	return tc, nil
}

func readPayload(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 {
		raw, err := io.ReadAll(stdin)
		return raw, errors.Wrap(err, "unable to read payload from stdin")
	}
	raw, err := os.ReadFile(args[0])
	return raw, errors.Wrapf(err, "unable to read payload from %s", args[0])
}

func writeJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "unable to serialize output")
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
