package dispatch

import (
	"bytes"
	"flag"
	"testing"

	"github.com/edaniels/golog"
	"github.com/urfave/cli/v2"
	"go.viam.com/test"
)

func newContext(t *testing.T, args []string, o string, toStdout bool, coordinates string, width float64) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", 0)
	set.String(flagOutput, o, "")
	set.Bool(flagStdout, toStdout, "")
	set.String(flagCoordinates, coordinates, "")
	set.Float64(flagWidth, width, "")
	set.Int(flagMinLevel, 0, "")
	set.Int(flagMaxLevel, 1<<31-1, "")
	set.String(flagOutputFormat, "POTREE", "")
	set.Var(&cli.StringSlice{}, flagOutputAttributes, "")
	test.That(t, set.Parse(args), test.ShouldBeNil)

	var errBuf bytes.Buffer
	app := &cli.App{ErrWriter: &errBuf}
	return cli.NewContext(app, set, nil)
}

func TestRunRejectsNeitherOutputNorStdout(t *testing.T) {
	c := newContext(t, []string{"some-dataset-root"}, "", false, "{-1,0},{1,0}", 2.0)
	err := Run(c, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRunRejectsBothOutputAndStdout(t *testing.T) {
	c := newContext(t, []string{"some-dataset-root"}, "/tmp/out.bin", true, "{-1,0},{1,0}", 2.0)
	err := Run(c, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRunRejectsMissingDatasetRoot(t *testing.T) {
	c := newContext(t, nil, "", true, "{-1,0},{1,0}", 2.0)
	err := Run(c, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRunPropagatesStorageErrorForNonexistentRoot(t *testing.T) {
	c := newContext(t, []string{"/nonexistent/dataset/root"}, "", true, "{-1,0},{1,0}", 2.0)
	err := Run(c, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRunRejectsMalformedPolyline(t *testing.T) {
	c := newContext(t, []string{"some-dataset-root"}, "", true, "not-a-polyline", 2.0)
	err := Run(c, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}
