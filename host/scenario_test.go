package host_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/347online/lox/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/txtar"
)

// scenarios holds one txtar archive per end-to-end case: an "input.lox"
// file and the stdout it must produce. Each is run against its own Host
// concurrently via errgroup, the way opal-lang-opal's fixture-driven
// integration tests fan out over a suite.
var scenarios = []string{
	`
-- input.lox --
print 1 + 2;
-- stdout --
3
`,
	`
-- input.lox --
var a = "hi";
print a + " there";
-- stdout --
hi there
`,
	`
-- input.lox --
var a = 1;
{
  var a = 2;
  print a;
}
print a;
-- stdout --
2
1
`,
	`
-- input.lox --
fun makeCounter() {
  var i = 0;
  fun count() {
    i = i + 1;
    return i;
  }
  return count;
}
var counter = makeCounter();
print counter();
print counter();
print counter();
-- stdout --
1
2
3
`,
	`
-- input.lox --
for (var i = 0; i < 3; i = i + 1) {
  print i;
}
-- stdout --
0
1
2
`,
}

func TestScenariosRunConcurrently(t *testing.T) {
	g, _ := errgroup.WithContext(context.Background())

	for i, raw := range scenarios {
		i, raw := i, raw
		g.Go(func() error {
			archive := txtar.Parse([]byte(raw))

			var input, wantStdout string
			for _, f := range archive.Files {
				switch f.Name {
				case "input.lox":
					input = string(f.Data)
				case "stdout":
					wantStdout = string(f.Data)
				}
			}
			require.NotEmpty(t, input, "scenario %d missing input.lox", i)

			var out, errOut bytes.Buffer
			h := host.New(&out, &errOut, nil)
			state := h.Run(input)

			if state.HadSyntaxError() || state.HadRuntimeError() {
				t.Errorf("scenario %d: unexpected diagnostics: %s", i, errOut.String())
				return nil
			}
			assert.Equal(t, wantStdout, out.String(), "scenario %d", i)
			return nil
		})
	}

	require.NoError(t, g.Wait())
}
