package amrcli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"oss.terrastruct.com/xos"

	"oss.terrastruct.com/amrviz/amrcli"
	"oss.terrastruct.com/amrviz/amrtex"
	"oss.terrastruct.com/amrviz/lib/log"
	"oss.terrastruct.com/amrviz/lib/version"
	"oss.terrastruct.com/amrviz/lib/xmain"
)

const sirAMR = `{"header": {"name": "SIR Model"}, "model": {"states": [{"id": "S"}, {"id": "I"}, {"id": "R"}], "transitions": [{"id": "inf", "input": ["S", "I"], "output": ["I", "I"]}, {"id": "rec", "input": ["I"], "output": ["R"]}]}}`

const sirTeX = `% SIR
$\frac{dS}{dt} = -\beta S I$

\frac{dI}{dt} = \beta S I - \gamma I
\frac{dR}{dt} = \gamma I
`

type skema struct {
	status int
	body   string

	mu  sync.Mutex
	got [][]string
}

func (s *skema) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/ping" {
		w.WriteHeader(s.status)
		io.WriteString(w, "The MathML Parsing Service is running.\n")
		return
	}
	var mathml []string
	err := json.NewDecoder(r.Body).Decode(&mathml)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.got = append(s.got, mathml)
	s.mu.Unlock()
	w.WriteHeader(s.status)
	io.WriteString(w, s.body)
}

func (s *skema) calls() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.got
}

func newSkema(t *testing.T, status int, body string) (*skema, string) {
	s := &skema{status: status, body: body}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return s, srv.URL
}

func TestCLI(t *testing.T) {
	t.Parallel()

	tca := []struct {
		name string
		run  func(t *testing.T, ctx context.Context, dir string)
	}{
		{
			name: "version",
			run: func(t *testing.T, ctx context.Context, dir string) {
				stdout, _, err := runTestMain(t, ctx, "", "version")
				assert.Nil(t, err)
				assert.Equal(t, version.Version+"\n", stdout)
			},
		},
		{
			name: "help",
			run: func(t *testing.T, ctx context.Context, dir string) {
				stdout, _, err := runTestMain(t, ctx, "")
				assert.Nil(t, err)
				assert.Contains(t, stdout, "Usage:")
				assert.Contains(t, stdout, "--skema-url")
				assert.Contains(t, stdout, "$AMRVIZ_LAYOUT")
				assert.NotContains(t, stdout, "--spring-seed")
			},
		},
		{
			name: "layout",
			run: func(t *testing.T, ctx context.Context, dir string) {
				stdout, _, err := runTestMain(t, ctx, "", "layout")
				assert.Nil(t, err)
				for _, name := range []string{"shell", "circular", "bipartite", "spring"} {
					assert.Contains(t, stdout, name+" (bundled)")
				}

				stdout, _, err = runTestMain(t, ctx, "", "layout", "SPRING")
				assert.Nil(t, err)
				assert.True(t, strings.HasPrefix(stdout, "spring (bundled):\n\n"), stdout)

				_, _, err = runTestMain(t, ctx, "", "layout", "dagre")
				assertUsage(t, err, `"dagre" is not bundled`)
			},
		},
		{
			name: "tex_to_json",
			run: func(t *testing.T, ctx context.Context, dir string) {
				s, url := newSkema(t, http.StatusOK, sirAMR)
				writeFile(t, dir, "sir.tex", sirTeX)

				_, stderr, err := runTestMain(t, ctx, "", "--skema-url", url, filepath.Join(dir, "sir.tex"), filepath.Join(dir, "sir.json"))
				assert.Nil(t, err)
				assert.NotContains(t, stderr, "is not in the model")

				calls := s.calls()
				if assert.Len(t, calls, 1) {
					assert.Len(t, calls[0], 3)
					for _, m := range calls[0] {
						assert.True(t, strings.HasPrefix(m, `<math xmlns="`+amrtex.Namespace+`"`), m)
					}
					assert.Contains(t, calls[0][0], "<mi>β</mi>")
				}
				assert.JSONEq(t, sirAMR, readFile(t, dir, "sir.json"))
			},
		},
		{
			name: "json_tables",
			run: func(t *testing.T, ctx context.Context, dir string) {
				writeFile(t, dir, "sir.json", sirAMR)

				_, _, err := runTestMain(t, ctx, "", "--json-tables", filepath.Join(dir, "sir.json"), filepath.Join(dir, "tables.json"))
				assert.Nil(t, err)

				var tables struct {
					Nodes []map[string]interface{} `json:"nodes"`
					Edges []map[string]interface{} `json:"edges"`
				}
				err = json.Unmarshal([]byte(readFile(t, dir, "tables.json")), &tables)
				assert.Nil(t, err)
				assert.Len(t, tables.Nodes, 5)
				assert.Len(t, tables.Edges, 6)
			},
		},
		{
			name: "model_skips_skema",
			run: func(t *testing.T, ctx context.Context, dir string) {
				s, url := newSkema(t, http.StatusOK, sirAMR)
				writeFile(t, dir, "sir.json", sirAMR)

				_, _, err := runTestMain(t, ctx, "", "--skema-url", url, filepath.Join(dir, "sir.json"), filepath.Join(dir, "sir.svg"))
				assert.Nil(t, err)
				assert.Empty(t, s.calls())
				assert.Contains(t, readFile(t, dir, "sir.svg"), "<svg")
			},
		},
		{
			name: "default_png",
			run: func(t *testing.T, ctx context.Context, dir string) {
				writeFile(t, dir, "sir.json", sirAMR)

				_, stderr, err := runTestMain(t, ctx, "", "--layout", "circular", filepath.Join(dir, "sir.json"))
				assert.Nil(t, err)
				assert.Contains(t, stderr, "successfully compiled")

				f, err := os.Open(filepath.Join(dir, "sir.png"))
				if !assert.Nil(t, err) {
					return
				}
				defer f.Close()
				cfg, err := png.DecodeConfig(f)
				assert.Nil(t, err)
				assert.Equal(t, 1200, cfg.Width)
				assert.Equal(t, 1200, cfg.Height)
			},
		},
		{
			name: "dot_and_d2",
			run: func(t *testing.T, ctx context.Context, dir string) {
				writeFile(t, dir, "sir.json", sirAMR)

				_, _, err := runTestMain(t, ctx, "", filepath.Join(dir, "sir.json"), filepath.Join(dir, "sir.dot"))
				assert.Nil(t, err)
				dot := readFile(t, dir, "sir.dot")
				assert.Contains(t, dot, `"S" -> "inf"`)
				assert.Contains(t, dot, `"rec" -> "R"`)

				_, _, err = runTestMain(t, ctx, "", "--layout=spring", "--spring-seed=7", filepath.Join(dir, "sir.json"), filepath.Join(dir, "sir.d2"))
				assert.Nil(t, err)
				d2 := readFile(t, dir, "sir.d2")
				assert.True(t, strings.HasPrefix(d2, "direction: right\n"), d2)
				assert.Contains(t, d2, "inf -> I: O")
			},
		},
		{
			name: "html",
			run: func(t *testing.T, ctx context.Context, dir string) {
				_, url := newSkema(t, http.StatusOK, sirAMR)
				writeFile(t, dir, "sir.tex", sirTeX)

				_, _, err := runTestMain(t, ctx, "", "--skema-url", url, filepath.Join(dir, "sir.tex"), filepath.Join(dir, "sir.html"))
				assert.Nil(t, err)
				page := readFile(t, dir, "sir.html")
				assert.Contains(t, page, "<html")
				assert.Contains(t, page, "Equation 3")
				assert.Contains(t, page, "data:image/svg+xml;base64,")
			},
		},
		{
			name: "stdin_stdout",
			run: func(t *testing.T, ctx context.Context, dir string) {
				_, url := newSkema(t, http.StatusOK, sirAMR)

				stdout, _, err := runTestMain(t, ctx, sirTeX, "--skema-url", url, "-")
				assert.Nil(t, err)
				assert.Contains(t, stdout, "<svg")
			},
		},
		{
			name: "mathml",
			run: func(t *testing.T, ctx context.Context, dir string) {
				s, url := newSkema(t, http.StatusOK, sirAMR)
				writeFile(t, dir, "sir.tex", sirTeX)

				stdout, _, err := runTestMain(t, ctx, "", "--skema-url", url, "mathml", filepath.Join(dir, "sir.tex"))
				assert.Nil(t, err)
				assert.Empty(t, s.calls())
				lines := strings.Split(strings.TrimSpace(stdout), "\n")
				assert.Len(t, lines, 3)
				assert.Contains(t, lines[2], "<mi>γ</mi>")

				_, _, err = runTestMain(t, ctx, "", filepath.Join(dir, "sir.tex"), filepath.Join(dir, "sir.mml"))
				assert.Nil(t, err)
				assert.Equal(t, stdout, readFile(t, dir, "sir.mml"))
			},
		},
		{
			name: "skema_rejects",
			run: func(t *testing.T, ctx context.Context, dir string) {
				_, url := newSkema(t, http.StatusInternalServerError, "Internal Server Error")
				writeFile(t, dir, "sir.tex", sirTeX)

				_, stderr, err := runTestMain(t, ctx, "", "--skema-url", url, filepath.Join(dir, "sir.tex"), filepath.Join(dir, "sir.dot"))
				assert.Nil(t, err)
				assert.Contains(t, stderr, "SKEMA returned no model")
				assert.Contains(t, readFile(t, dir, "sir.dot"), "digraph")
			},
		},
		{
			name: "missing_state",
			run: func(t *testing.T, ctx context.Context, dir string) {
				_, url := newSkema(t, http.StatusOK, sirAMR)
				writeFile(t, dir, "seir.tex", sirTeX+`\frac{dE}{dt} = \beta S I`)

				_, stderr, err := runTestMain(t, ctx, "", "--skema-url", url, filepath.Join(dir, "seir.tex"), filepath.Join(dir, "seir.dot"))
				assert.Nil(t, err)
				assert.Contains(t, stderr, `equation 4: state "E" is not in the model`)
			},
		},
		{
			name: "ping",
			run: func(t *testing.T, ctx context.Context, dir string) {
				_, url := newSkema(t, http.StatusOK, "")

				stdout, _, err := runTestMain(t, ctx, "", "--skema-url", url, "ping")
				assert.Nil(t, err)
				assert.Equal(t, "The MathML Parsing Service is running.\n", stdout)

				_, url = newSkema(t, http.StatusBadGateway, "")
				_, _, err = runTestMain(t, ctx, "", "--skema-url", url, "ping")
				assert.Error(t, err)
			},
		},
		{
			name: "malformed_equation",
			run: func(t *testing.T, ctx context.Context, dir string) {
				writeFile(t, dir, "bad.tex", `\frac{a}`)

				_, _, err := runTestMain(t, ctx, "", filepath.Join(dir, "bad.tex"), filepath.Join(dir, "bad.svg"))
				assert.True(t, errors.Is(err, amrtex.ErrMalformedEquation), "%v", err)
				_, err = os.Stat(filepath.Join(dir, "bad.svg"))
				assert.True(t, os.IsNotExist(err))
			},
		},
		{
			name: "usage_errors",
			run: func(t *testing.T, ctx context.Context, dir string) {
				_, _, err := runTestMain(t, ctx, "", "in.tex", "out.gif")
				assertUsage(t, err, "unsupported output")

				_, _, err = runTestMain(t, ctx, "", "--color=sometimes", "in.tex")
				assertUsage(t, err, "--color")

				_, _, err = runTestMain(t, ctx, "", "--model-format=sbml", "in.tex")
				assertUsage(t, err, "unknown model format")

				_, _, err = runTestMain(t, ctx, "", "--layout=dagre", "in.tex")
				assertUsage(t, err, "not bundled")

				_, _, err = runTestMain(t, ctx, "", "-w", "-")
				assertUsage(t, err, "stdin")

				_, _, err = runTestMain(t, ctx, "", "a", "b", "c")
				assertUsage(t, err, "too many arguments")
			},
		},
	}

	for _, tc := range tca {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := log.WithTB(context.Background(), t, nil)
			tc.run(t, ctx, t.TempDir())
		})
	}
}

type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error { return nil }

func runTestMain(tb testing.TB, ctx context.Context, stdin string, args ...string) (string, string, error) {
	tb.Helper()
	stdout := nopCloser{&bytes.Buffer{}}
	stderr := nopCloser{&bytes.Buffer{}}
	ms := xmain.NewTestState(xos.NewEnv(nil), strings.NewReader(stdin), stdout, stderr, args...)
	err := amrcli.Run(ctx, ms)
	return stdout.String(), stderr.String(), err
}

func assertUsage(tb testing.TB, err error, msg string) {
	tb.Helper()
	var uerr xmain.UsageError
	if assert.True(tb, errors.As(err, &uerr), "expected usage error, got %v", err) {
		assert.Contains(tb, uerr.Error(), msg)
	}
}

func writeFile(tb testing.TB, dir, fp, data string) {
	tb.Helper()
	err := os.WriteFile(filepath.Join(dir, fp), []byte(data), 0644)
	assert.Nil(tb, err)
}

func readFile(tb testing.TB, dir, fp string) string {
	tb.Helper()
	b, err := os.ReadFile(filepath.Join(dir, fp))
	assert.Nil(tb, err)
	return string(b)
}
