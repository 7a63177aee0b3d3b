package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/gdcc/exporter-dcatap/internal/pkg/application"
	"github.com/gdcc/exporter-dcatap/internal/pkg/application/dcatap"
	"github.com/gdcc/exporter-dcatap/internal/pkg/infrastructure/serializers"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func Run(ctx context.Context, args []string, in io.Reader, out, stderr io.Writer) error {
	c := RootCommand(in, out, stderr)
	c.SetArgs(args)
	return c.ExecuteContext(ctx)
}

func RootCommand(in io.Reader, out, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dcatap",
		Short:         "Export Dataverse dataset metadata as DCAT-AP",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.SetOut(out)
	cmd.SetErr(stderr)

	cmd.AddCommand(NewCmdExport(in, out, stderr))
	cmd.AddCommand(NewCmdFormats(out))

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	return cmd
}

func newLogger(cmd *cobra.Command, stderr io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(stderr).Level(level).With().Timestamp().Logger()
}

func NewCmdExport(in io.Reader, out, stderr io.Writer) *cobra.Command {
	var format, profile, baseURL string

	cmd := &cobra.Command{
		Use:   "export [file|-]",
		Short: "Export the dataset json in file, or on stdin, as DCAT-AP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}

			ctx := logging.NewContextWithLogger(cmd.Context(), newLogger(cmd, stderr))
			return doExport(ctx, in, out, source, format, profile, baseURL)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(serializers.RDFXML), "Output format (RDF/XML, TURTLE, JSON-LD or N-QUADS)")
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "A yaml profile with vocabulary settings")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Base url of the Dataverse installation, used for file access urls")

	return cmd
}

func doExport(ctx context.Context, in io.Reader, out io.Writer, source, formatName, profile, baseURL string) error {
	log := logging.GetFromContext(ctx)

	format, err := serializers.ParseFormat(formatName)
	if err != nil {
		return err
	}

	vocabulary := dcatap.DefaultVocabulary()
	if profile != "" {
		f, err := os.Open(profile)
		if err != nil {
			return fmt.Errorf("cannot open profile: %w", err)
		}
		defer f.Close()

		vocabulary, err = dcatap.LoadVocabulary(f)
		if err != nil {
			return fmt.Errorf("cannot load profile: %w", err)
		}
	}

	if baseURL != "" {
		vocabulary = vocabulary.WithFileAccessBaseURL(baseURL)
	}

	var data []byte
	if source == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return fmt.Errorf("cannot read dataset: %w", err)
	}

	log.Debug().Str("source", source).Str("format", format.String()).Msgf("exporting %d bytes of dataset json", len(data))

	exporter, err := application.NewExporter(dcatap.NewMapper(vocabulary), format, nil)
	if err != nil {
		return err
	}

	return exporter.ExportDataset(ctx, application.DatasetJSON(data), out)
}

func NewCmdFormats(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported output formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMEDIA TYPE\tEXTENSION\tDESCRIPTION")
			for _, f := range serializers.Formats() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, f.MediaType, f.Extension, f.Description)
			}
			return w.Flush()
		},
	}
}
