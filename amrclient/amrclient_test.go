package amrclient_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/amrviz/amrclient"
	"oss.terrastruct.com/amrviz/amrmodel"
	"oss.terrastruct.com/amrviz/lib/log"
)

const sirAMR = `{"model": {"states": [{"id": "S"}, {"id": "I"}, {"id": "R"}], "transitions": [{"id": "inf", "input": ["S", "I"], "output": ["I", "I"]}, {"id": "rec", "input": ["I"], "output": ["R"]}]}}`

type skema struct {
	t      *testing.T
	status int
	body   string
	got    []string
}

func (s *skema) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/ping":
		assert.Equal(s.t, http.MethodGet, r.Method)
		w.WriteHeader(s.status)
		io.WriteString(w, "The MathML Parsing Service is running.")
	case "/mathml/acset", "/mathml/amr":
		assert.Equal(s.t, http.MethodPut, r.Method)
		assert.Equal(s.t, "application/json", r.Header.Get("Content-Type"))
		err := json.NewDecoder(r.Body).Decode(&s.got)
		assert.Nil(s.t, err)
		w.WriteHeader(s.status)
		io.WriteString(w, s.body)
	default:
		http.NotFound(w, r)
	}
}

func newServer(t *testing.T, status int, body string) (*skema, *amrclient.Client) {
	s := &skema{t: t, status: status, body: body}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return s, amrclient.New(srv.URL+"/", amrclient.WithHTTPClient(srv.Client()))
}

func TestPing(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	_, c := newServer(t, http.StatusOK, "")
	got, err := c.Ping(ctx)
	assert.Nil(t, err)
	assert.Equal(t, "The MathML Parsing Service is running.", got)

	_, c = newServer(t, http.StatusServiceUnavailable, "")
	_, err = c.Ping(ctx)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Code 503")
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	s, c := newServer(t, http.StatusOK, sirAMR)
	mml := []string{"<math><mi>S</mi></math>", "<math><mi>I</mi></math>"}

	doc, err := c.Convert(ctx, mml, amrmodel.FormatAuto)
	assert.Nil(t, err)
	assert.Equal(t, mml, s.got)
	assert.Equal(t, amrmodel.FormatAMR, doc.Format)
	assert.Len(t, doc.AMR.Model.States, 3)
	assert.JSONEq(t, sirAMR, string(doc.Raw))
}

func TestConvertLogsResponse(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := log.Human(context.Background(), &buf, false)
	_, c := newServer(t, http.StatusOK, sirAMR)
	_, err := c.Convert(ctx, []string{"<math/>"}, amrmodel.FormatAuto)
	assert.Nil(t, err)
	assert.Contains(t, buf.String(), c.BaseURL+c.Endpoint+": Code 200")
	assert.Contains(t, buf.String(), "transitions")
}

func TestConvertEndpoint(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	s := &skema{t: t, status: http.StatusOK, body: sirAMR}
	srv := httptest.NewServer(s)
	defer srv.Close()

	c := amrclient.New(srv.URL, amrclient.WithEndpoint("mathml/amr"), amrclient.WithTimeout(time.Minute))
	assert.Equal(t, "/mathml/amr", c.Endpoint)
	assert.Equal(t, time.Minute, c.HTTP.Timeout)

	doc, err := c.Convert(ctx, []string{"<math/>"}, amrmodel.FormatAMR)
	assert.Nil(t, err)
	assert.False(t, doc.Empty())
}

func TestConvertRejected(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	_, c := newServer(t, http.StatusBadRequest, "Parse error")
	doc, err := c.Convert(ctx, []string{"<math><mi>x</math>"}, amrmodel.FormatAuto)
	assert.Nil(t, err)
	assert.True(t, doc.Empty())
	assert.Equal(t, "{}", string(doc.Raw))
}

func TestConvertErrors(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)

	_, c := newServer(t, http.StatusOK, sirAMR)
	_, err := c.Convert(ctx, nil, amrmodel.FormatAuto)
	assert.True(t, errors.Is(err, amrclient.ErrNoEquations))

	_, c = newServer(t, http.StatusOK, "<html>oops</html>")
	_, err = c.Convert(ctx, []string{"<math/>"}, amrmodel.FormatAuto)
	assert.True(t, errors.Is(err, amrmodel.ErrInvalidSchema), "got %v", err)

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c = amrclient.New(url)
	_, err = c.Convert(ctx, []string{"<math/>"}, amrmodel.FormatAuto)
	assert.True(t, errors.Is(err, amrclient.ErrNetwork), "got %v", err)
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	c := amrclient.New("")
	assert.Equal(t, amrclient.DefaultBaseURL, c.BaseURL)
	assert.Equal(t, amrclient.DefaultEndpoint, c.Endpoint)
}

func TestTimeoutWithoutHTTPClient(t *testing.T) {
	t.Parallel()

	c := amrclient.New("", amrclient.WithHTTPClient(nil), amrclient.WithTimeout(time.Second))
	if assert.NotNil(t, c.HTTP) {
		assert.Equal(t, time.Second, c.HTTP.Timeout)
	}

	c = amrclient.New("", amrclient.WithHTTPClient(nil))
	assert.NotNil(t, c.HTTP)
}
