// Command xcdecode decodes a framed change-log file against the two XML
// schema documents carried in its own META frame and prints the decoded
// fields of every change in its CHANGE_SET frames.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/protocolbuffers/protoscope"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oss-tools/xcdecode"
	"github.com/oss-tools/xcdecode/internal/changeset"
	"github.com/oss-tools/xcdecode/internal/config"
	"github.com/oss-tools/xcdecode/internal/frame"
	"github.com/oss-tools/xcdecode/internal/metapack"
)

var (
	flagWorkers   int
	flagLogLevel  string
	flagConfig    string
	flagDebugWire bool
)

func main() {
	root := &cobra.Command{
		Use:   "xcdecode",
		Short: "Decode a schema-directed binary change-log",
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to an optional YAML config file")

	decodeCmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode every change in a framed change-log file",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}
	decodeCmd.Flags().IntVar(&flagWorkers, "workers", 0, "worker pool size (default: hardware parallelism)")
	decodeCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	decodeCmd.Flags().BoolVar(&flagDebugWire, "debug-wire", false, "dump each change's raw wire bytes via protoscope before decoding")
	root.AddCommand(decodeCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDecode(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("xcdecode: opening %s: %w", args[0], err)
	}
	defer f.Close()

	fr := frame.NewReader(f)

	var (
		sch        *xcdecode.Schema
		classNames []string
		payloads   [][]byte
	)

	for {
		fm, err := fr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		switch fm.Kind {
		case frame.KindMeta:
			if sch != nil {
				logger.Warn("ignoring additional META frame")
				continue
			}
			schemaA, schemaB, err := metapack.Extract(fm.Body)
			if err != nil {
				return err
			}
			docA, err := xcdecode.ParseSchemaDocument(schemaA)
			if err != nil {
				return fmt.Errorf("xcdecode: parsing schema A: %w", err)
			}
			docB, err := xcdecode.ParseSchemaDocument(schemaB)
			if err != nil {
				return fmt.Errorf("xcdecode: parsing schema B: %w", err)
			}
			sch = xcdecode.NewSchema(docA, docB)
			logger.Info("loaded schema pair")

		case frame.KindChangeSet:
			if sch == nil {
				return fmt.Errorf("xcdecode: CHANGE_SET frame before META frame")
			}
			changes, err := changeset.Read(fm.Body, fm.Compressed)
			if err != nil {
				return err
			}
			for _, c := range changes {
				if flagDebugWire {
					dumpWire(c.Payload)
				}
				classNames = append(classNames, c.ClassName)
				payloads = append(payloads, c.Payload)
			}

		default:
			logger.Warn("skipping unknown frame kind", zap.Uint8("kind", uint8(fm.Kind)))
		}
	}

	if sch == nil {
		return fmt.Errorf("xcdecode: no META frame found in %s", args[0])
	}

	dispatcher := xcdecode.NewDispatcher(sch, cfg.Workers, logger)
	results, err := dispatcher.DecodeBatch(context.Background(), classNames, payloads)
	if err != nil {
		return err
	}

	for i, r := range results {
		if r.Err != nil {
			logger.Error("change failed to decode",
				zap.Int("index", i),
				zap.String("class", classNames[i]),
				zap.Error(r.Err),
			)
			continue
		}
		fmt.Printf("--- change %d (%s) ---\n", i, classNames[i])
		xcdecode.DumpFields(os.Stdout, r.Fields, 0)
	}

	return nil
}

// dumpWire prints payload's raw wire-format bytes to stderr using
// protoscope's disassembler, for change-by-change debugging without a
// descriptor.
func dumpWire(payload []byte) {
	text, err := protoscope.Write(payload, protoscope.WriterOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "# protoscope: %v\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, text)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("xcdecode: log level %q: %w", level, err)
	}
	return cfg.Build()
}
