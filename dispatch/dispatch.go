// Package dispatch implements the output dispatcher (spec §2 component
// 7): the sole boundary that validates CLI input, builds the profile
// and runs the query pipeline, and picks an encoder by format tag.
package dispatch

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/edaniels/golog"
	"github.com/urfave/cli/v2"

	"go.viam.com/potree-profile/attrs"
	"go.viam.com/potree-profile/encode"
	"go.viam.com/potree-profile/filter"
	"go.viam.com/potree-profile/polyline"
	"go.viam.com/potree-profile/potree"
	"go.viam.com/potree-profile/potreeerr"
	"go.viam.com/potree-profile/profile"
	"go.viam.com/potree-profile/query"
)

const (
	flagCoordinates      = "coordinates"
	flagWidth            = "width"
	flagMinLevel         = "min-level"
	flagMaxLevel         = "max-level"
	flagOutput           = "o"
	flagStdout           = "stdout"
	flagOutputFormat     = "output-format"
	flagOutputAttributes = "output-attributes"

	formatPotree = "POTREE"
	formatLAS    = "LAS"
	formatCSV    = "CSV"
)

// Run is the sole error-formatting boundary (spec §7): it delegates to
// run for the actual work, and on failure prints the error to
// c.App.ErrWriter and returns a cli.Exit so urfave/cli sets a nonzero
// exit code, the same fmt.Fprintln-to-ErrWriter-plus-nonzero-exit
// convention cli/viam/main.go's svcMethod == "" branch uses.
func Run(c *cli.Context, logger golog.Logger) error {
	if err := run(c, logger); err != nil {
		fmt.Fprintln(c.App.ErrWriter, err.Error())
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

func run(c *cli.Context, logger golog.Logger) error {
	outPath := c.Path(flagOutput)
	toStdout := c.Bool(flagStdout)
	if (outPath == "") == !toStdout {
		return potreeerr.NewInvalidArgument("exactly one of -o or --stdout must be set")
	}

	datasetRoot := c.Args().First()
	if datasetRoot == "" {
		return potreeerr.NewInvalidArgument("missing dataset root argument")
	}

	verts, err := polyline.Parse(c.String(flagCoordinates))
	if err != nil {
		return err
	}

	store, err := potree.NewDirStore(datasetRoot, logger)
	if err != nil {
		return err
	}
	meta := store.Meta()

	segments, err := profile.Build(verts, c.Float64(flagWidth), meta.Bounds)
	if err != nil {
		return err
	}

	ctx := context.Background()
	root, err := store.Root(ctx)
	if err != nil {
		return err
	}

	results, err := query.PointsInProfile(ctx, root, segments, c.Int(flagMinLevel), c.Int(flagMaxLevel), logger)
	if err != nil {
		return err
	}

	schema := attrs.Resolve(explicitTags(c.StringSlice(flagOutputAttributes)), meta.Schema, logger)

	sink, closeSink, err := openSink(outPath, toStdout)
	if err != nil {
		return err
	}
	defer closeSink()

	summary, err := writeOutput(c.String(flagOutputFormat), sink, results, schema, meta, logger)
	if err != nil {
		return err
	}

	logger.Infow("wrote profile output",
		"format", c.String(flagOutputFormat),
		"pointsAccepted", summary.PointsAccepted,
		"pointsProcessed", summary.PointsProcessed,
		"nodesProcessed", summary.NodesProcessed,
	)
	return nil
}

func explicitTags(raw []string) []attrs.Tag {
	if len(raw) == 0 {
		return nil
	}
	tags := make([]attrs.Tag, len(raw))
	for i, r := range raw {
		tags[i] = attrs.Tag(strings.ToUpper(r))
	}
	return tags
}

// openSink resolves the byte sink per spec §9's ownership note: a file
// sink is owned here and closed on return; the stdout sink is
// borrowed and left open for the process. setBinaryStdout puts stdout
// into binary mode where the platform requires it.
func openSink(outPath string, toStdout bool) (*os.File, func(), error) {
	if toStdout {
		if err := setBinaryStdout(); err != nil {
			return nil, nil, potreeerr.NewEncodeError(err, "switching stdout to binary mode")
		}
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, potreeerr.NewEncodeError(err, "creating output file %q", outPath)
	}
	return f, func() { f.Close() }, nil
}

func writeOutput(format string, sink *os.File, results []filter.Result, schema attrs.Schema, meta potree.DatasetMeta, logger golog.Logger) (encode.Summary, error) {
	switch strings.ToUpper(format) {
	case "", formatPotree:
		return encode.WritePotree(sink, results, schema)
	case formatLAS:
		return encode.WriteLAS(sink, results, meta)
	case formatCSV:
		return encode.WriteCSV(sink, results, logger)
	default:
		return encode.Summary{}, potreeerr.NewInvalidArgument("unknown output format %q", format)
	}
}
