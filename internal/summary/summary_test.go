package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "output_file\tdate\trule\tversion\tinput-file(s)\tstatus\tplan"

func row(fields ...string) string {
	return strings.Join(fields, "\t")
}

func TestParse(t *testing.T) {
	t.Run("one row with two inputs yields two pairs sharing the target", func(t *testing.T) {
		in := strings.Join([]string{
			header,
			row("results/out.txt", "Mon Jan 1", "merge", "1.0", "data/a.txt,data/b.txt", "updated", "no update"),
		}, "\n")

		pairs, err := Parse(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, pairs, 2)

		assert.Equal(t, "data/a.txt", pairs[0].Source.Node)
		assert.Equal(t, "data/b.txt", pairs[1].Source.Node)
		for _, p := range pairs {
			assert.Equal(t, "results/out.txt", p.Target.Node)
			assert.Equal(t, "merge", p.Target.Rule)
			assert.Equal(t, "1.0", p.Target.Version)
			assert.Equal(t, "updated", p.Target.Status)
			assert.Equal(t, "Mon Jan 1", p.Target.Date)
			assert.Equal(t, "no update", p.Target.Plan)
		}
	})

	t.Run("source descriptors carry blank metadata", func(t *testing.T) {
		in := strings.Join([]string{
			header,
			row("b/y", "d", "r", "v", "a/x", "updated", "update pending"),
		}, "\n")

		pairs, err := Parse(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, pairs, 1)

		src := pairs[0].Source
		assert.Equal(t, Descriptor{Node: "a/x"}, src)
	})

	t.Run("removed temp file rows are dropped", func(t *testing.T) {
		in := strings.Join([]string{
			header,
			row("tmp/scratch.txt", "d", "r", "v", "a/x", StatusRemovedTempFile, "no update"),
			row("b/y", "d", "r", "v", "a/x", "updated", "no update"),
		}, "\n")

		pairs, err := Parse(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.Equal(t, "b/y", pairs[0].Target.Node)
	})

	t.Run("inputs are trimmed and empty entries skipped", func(t *testing.T) {
		in := strings.Join([]string{
			header,
			row("b/y", "d", "r", "v", "a/x, a/z,", "updated", "no update"),
		}, "\n")

		pairs, err := Parse(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, pairs, 2)
		assert.Equal(t, "a/x", pairs[0].Source.Node)
		assert.Equal(t, "a/z", pairs[1].Source.Node)
	})

	t.Run("row with no inputs yields no pairs", func(t *testing.T) {
		in := strings.Join([]string{
			header,
			row("b/y", "d", "r", "v", "", "updated", "no update"),
		}, "\n")

		pairs, err := Parse(strings.NewReader(in))
		require.NoError(t, err)
		assert.Empty(t, pairs)
	})

	t.Run("empty input is not an error", func(t *testing.T) {
		pairs, err := Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, pairs)
	})

	t.Run("missing required column is fatal", func(t *testing.T) {
		in := strings.Join([]string{
			"output_file\tdate\trule\tversion\tinput-file(s)\tstatus", // no plan
			row("b/y", "d", "r", "v", "a/x", "updated"),
		}, "\n")

		_, err := Parse(strings.NewReader(in))
		require.Error(t, err)
		assert.ErrorContains(t, err, `missing required column "plan"`)
	})

	t.Run("short row is fatal", func(t *testing.T) {
		in := strings.Join([]string{
			header,
			row("b/y", "d", "r"),
		}, "\n")

		_, err := Parse(strings.NewReader(in))
		require.Error(t, err)
		assert.ErrorContains(t, err, "fields, expected")
	})
}
